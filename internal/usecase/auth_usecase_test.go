package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangku/internal/domain/entity"
	"barangku/pkg/errors"
)

type fakeFirebaseAuth struct {
	mu         sync.Mutex
	resetLinks []string
}

func (f *fakeFirebaseAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	return "uid-" + displayName, nil
}

func (f *fakeFirebaseAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	return "uid-tester", nil
}

func (f *fakeFirebaseAuth) SignInWithEmailPassword(email, password string) (string, error) {
	return "id-token", nil
}

func (f *fakeFirebaseAuth) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	return nil
}

func (f *fakeFirebaseAuth) PasswordResetLink(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLinks = append(f.resetLinks, email)
	return "https://reset.example.com/" + email, nil
}

func (f *fakeFirebaseAuth) linkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resetLinks)
}

func newAuthFixture() (*AuthUseCase, *fakeFirebaseAuth, *fakeUserRepo) {
	firebaseAuth := &fakeFirebaseAuth{}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"uid-tester": {ID: "uid-tester", Email: "tester@example.com", Username: "tester"},
	}}
	return NewAuthUseCase(userRepo, firebaseAuth, allowAllLimiter{}), firebaseAuth, userRepo
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "longenough", Username: "x"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.Register(ctx, RegisterInput{Email: "a@b.co", Password: "short", Username: "x"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "tester@example.com",
		Password: "longenough",
		Username: "tester2",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestPasswordResetAlwaysReportsSuccess(t *testing.T) {
	uc, firebaseAuth, _ := newAuthFixture()
	ctx := context.Background()

	// Known address: link generated in the background.
	require.NoError(t, uc.RequestPasswordReset(ctx, "tester@example.com"))
	assert.Eventually(t, func() bool { return firebaseAuth.linkCount() == 1 }, time.Second, 10*time.Millisecond)

	// Unknown address: same success, no link generated.
	require.NoError(t, uc.RequestPasswordReset(ctx, "nobody@example.com"))
	assert.Never(t, func() bool { return firebaseAuth.linkCount() > 1 }, 200*time.Millisecond, 20*time.Millisecond)
}

func TestPasswordResetHonorsResendCooldown(t *testing.T) {
	firebaseAuth := &fakeFirebaseAuth{}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{}}
	uc := NewAuthUseCase(userRepo, firebaseAuth, denyLimiter{})

	err := uc.RequestPasswordReset(context.Background(), "tester@example.com")
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestPasswordResetRejectsMalformedEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()

	err := uc.RequestPasswordReset(context.Background(), "not an email")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdatePasswordEnforcesMinimumLength(t *testing.T) {
	uc, _, _ := newAuthFixture()

	err := uc.UpdatePassword(context.Background(), "uid-tester", "short")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	assert.NoError(t, uc.UpdatePassword(context.Background(), "uid-tester", "longenough"))
}
