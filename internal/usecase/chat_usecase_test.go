package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
)

type fakeChatRepo struct {
	mu        sync.Mutex
	chats     map[string]*entity.Chat
	messages  map[string][]*entity.Message
	lookupErr error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	copied := *chat
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	copied.UnreadCount = map[string]int{}
	for k, v := range chat.UnreadCount {
		copied.UnreadCount[k] = v
	}
	return &copied, nil
}

func (r *fakeChatRepo) GetByListingAndParticipants(ctx context.Context, listingID string, participants []string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, chat := range r.chats {
		if chat.ListingID != listingID {
			continue
		}
		match := true
		for _, p := range participants {
			if !chat.HasParticipant(p) {
				match = false
				break
			}
		}
		if match {
			copied := *chat
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			copied := *chat
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *chat
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *fakeChatRepo) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[chatID]
	out := make([]*entity.Message, len(msgs))
	for i, m := range msgs {
		copied := *m
		out[i] = &copied
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeChatRepo) UpdateMessageReadStatus(ctx context.Context, chatID, messageID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages[chatID] {
		if m.ID == messageID && !m.ReadByUser(userID) {
			m.ReadBy = append(m.ReadBy, userID)
		}
	}
	return nil
}

type fakeListingRepo struct {
	listings       map[string]*entity.Listing
	nonTerminalErr error
}

func (r *fakeListingRepo) Create(ctx context.Context, l *entity.Listing) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	r.listings[l.ID] = l
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return l, nil
}

func (r *fakeListingRepo) GetNonTerminalByItemID(ctx context.Context, itemID string) (*entity.Listing, error) {
	if r.nonTerminalErr != nil {
		return nil, r.nonTerminalErr
	}
	for _, l := range r.listings {
		if l.ItemID == itemID && !l.IsTerminal() {
			return l, nil
		}
	}
	return nil, errors.NotFound("Listing", nil)
}

func (r *fakeListingRepo) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	return nil, 0, nil
}

func (r *fakeListingRepo) ListBySeller(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	return nil, 0, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, l *entity.Listing) error {
	r.listings[l.ID] = l
	return nil
}

func (r *fakeListingRepo) IncrementViews(ctx context.Context, id string) error {
	r.listings[id].Views++
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	copied := *n
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID, class string, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if class != "" && entity.NotificationClass(n.Type) != class {
			continue
		}
		copied := *n
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) count(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			n++
		}
	}
	return n
}

type fakePresence struct {
	mu      sync.Mutex
	viewing map[string]bool // userID:chatID
}

func (p *fakePresence) IsViewing(ctx context.Context, userID, chatID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewing[userID+":"+chatID]
}

func (p *fakePresence) set(userID, chatID string, v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.viewing == nil {
		p.viewing = map[string]bool{}
	}
	p.viewing[userID+":"+chatID] = v
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(userID, action string) (bool, time.Duration) { return true, 0 }

type denyLimiter struct{}

func (denyLimiter) Allow(userID, action string) (bool, time.Duration) {
	return false, 30 * time.Second
}

type recordingBroadcaster struct {
	mu        sync.Mutex
	userSends map[string]int
	roomSends map[string]int
}

func (b *recordingBroadcaster) SendToUser(userID string, message []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.userSends == nil {
		b.userSends = map[string]int{}
	}
	b.userSends[userID]++
}

func (b *recordingBroadcaster) SendToChatRoom(chatID string, message []byte, excludeUserID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.roomSends == nil {
		b.roomSends = map[string]int{}
	}
	b.roomSends[chatID]++
}

type chatFixture struct {
	uc        *ChatUseCase
	chatRepo  *fakeChatRepo
	notifRepo *fakeNotificationRepo
	presence  *fakePresence
	listing   *entity.Listing
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	chatRepo := newFakeChatRepo()
	listingRepo := &fakeListingRepo{listings: map[string]*entity.Listing{}}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"seller": {ID: "seller", Username: "seller"},
		"buyer":  {ID: "buyer", Username: "buyer"},
	}}
	notifRepo := &fakeNotificationRepo{}
	presence := &fakePresence{}
	notificationUC := NewNotificationUseCase(notifRepo, nil)

	listing := &entity.Listing{
		ItemID:   "item-1",
		SellerID: "seller",
		Title:    "Old bicycle",
		Status:   entity.ListingStatusActive,
	}
	require.NoError(t, listingRepo.Create(context.Background(), listing))

	uc := NewChatUseCase(chatRepo, listingRepo, userRepo, &recordingBroadcaster{}, presence, notificationUC, allowAllLimiter{})
	return &chatFixture{
		uc:        uc,
		chatRepo:  chatRepo,
		notifRepo: notifRepo,
		presence:  presence,
		listing:   listing,
	}
}

func TestStartChatReusesExistingConversation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	first, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)

	second, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartChatFailsClosedWhenLookupErrors(t *testing.T) {
	f := newChatFixture(t)
	f.chatRepo.lookupErr = errors.Internal("store unavailable", nil)

	_, err := f.uc.StartChat(context.Background(), "buyer", f.listing.ID)
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
}

func TestStartChatRejectsSelfMessaging(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.uc.StartChat(context.Background(), "seller", f.listing.ID)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageIncrementsRecipientUnread(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "Is this available?"})
	require.NoError(t, err)

	stored, err := f.chatRepo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UnreadCount["seller"])
	assert.Equal(t, 0, stored.UnreadCount["buyer"])
	assert.Equal(t, "Is this available?", stored.LastMessage)
}

func TestSendMessageNotifiesRecipient(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "hello"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return f.notifRepo.count("seller") == 1 }, time.Second, 10*time.Millisecond)
}

func TestSendMessageSuppressesNotificationWhileViewing(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)
	f.presence.set("seller", chat.ID, true)

	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "hello"})
	require.NoError(t, err)

	assert.Never(t, func() bool { return f.notifRepo.count("seller") > 0 }, 200*time.Millisecond, 20*time.Millisecond)
}

func TestSendMessageRejectsNonParticipants(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "stranger", chat.ID, SendMessageInput{Content: "hi"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageHonorsRateLimit(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)

	f.uc.rateLimiter = denyLimiter{}
	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "hello"})
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestMarkChatAsReadIsIdempotent(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "one"})
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "two"})
	require.NoError(t, err)

	require.NoError(t, f.uc.MarkChatAsRead(ctx, "seller", chat.ID))
	require.NoError(t, f.uc.MarkChatAsRead(ctx, "seller", chat.ID))

	stored, err := f.chatRepo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UnreadCount["seller"])

	messages, _, err := f.uc.GetMessages(ctx, "seller", chat.ID, 0, 0)
	require.NoError(t, err)
	for _, m := range messages {
		assert.True(t, m.ReadByUser("seller"))
	}
}

func TestGetMessagesComputesIsMinePerViewer(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "hi"})
	require.NoError(t, err)

	asBuyer, _, err := f.uc.GetMessages(ctx, "buyer", chat.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, asBuyer, 1)
	assert.True(t, asBuyer[0].IsMine)

	asSeller, _, err := f.uc.GetMessages(ctx, "seller", chat.ID, 0, 0)
	require.NoError(t, err)
	assert.False(t, asSeller[0].IsMine)
}

func TestUnreadTotalSumsAcrossChats(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.uc.StartChat(ctx, "buyer", f.listing.ID)
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "one"})
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "buyer", chat.ID, SendMessageInput{Content: "two"})
	require.NoError(t, err)

	total, err := f.uc.UnreadTotal(ctx, "seller")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestSummaryTruncatesOnRuneBoundary(t *testing.T) {
	content := strings.Repeat("é", 100)
	summary := summarize(&entity.Message{Type: entity.MessageTypeText, Content: content})

	assert.True(t, utf8.ValidString(summary))
	assert.Equal(t, strings.Repeat("é", 77)+"...", summary)

	short := summarize(&entity.Message{Type: entity.MessageTypeText, Content: "hello"})
	assert.Equal(t, "hello", short)
}
