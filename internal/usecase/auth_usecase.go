package usecase

import (
	"context"
	"regexp"
	"time"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
	"barangku/pkg/logger"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
	rateLimiter  RateLimiter
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient, rateLimiter RateLimiter) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
		rateLimiter:  rateLimiter,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !emailPattern.MatchString(input.Email) {
		return nil, errors.BadRequest("Please enter a valid email address", nil)
	}
	if len(input.Password) < minPasswordLength {
		return nil, errors.BadRequest("Password must be at least 8 characters", nil)
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

// RequestPasswordReset always reports success to the caller so the response
// cannot be used to discover which emails have accounts. The reset link is only
// generated for addresses that exist; failures on that path are logged, not
// surfaced. Resends are held to a 60 second cooldown per address.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	if !emailPattern.MatchString(email) {
		return errors.BadRequest("Please enter a valid email address", nil)
	}

	if allowed, wait := uc.rateLimiter.Allow(email, "password_reset"); !allowed {
		return errors.TooManyRequests("Please wait before requesting another reset email", wait)
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if _, err := uc.userRepo.GetByEmail(sendCtx, email); err != nil {
			logger.Debug("password reset requested for unknown email")
			return
		}
		if _, err := uc.firebaseAuth.PasswordResetLink(sendCtx, email); err != nil {
			logger.SideEffect("password_reset_link", err)
		}
	}()

	return nil
}

func (uc *AuthUseCase) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return errors.BadRequest("Password must be at least 8 characters", nil)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, uid, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}
	return nil
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, uid string, username, bio, avatarURL *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if username != nil {
		user.Username = *username
	}
	if bio != nil {
		user.Bio = *bio
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update profile", err)
	}
	return user, nil
}
