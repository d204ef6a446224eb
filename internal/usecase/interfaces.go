package usecase

import (
	"context"
	"time"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// Broadcaster fans realtime events out to connected clients.
type Broadcaster interface {
	SendToUser(userID string, message []byte)
	SendToChatRoom(chatID string, message []byte, excludeUserID string)
}

// PresenceStore answers whether a user is actively viewing a conversation,
// so message notifications for that conversation can be suppressed.
type PresenceStore interface {
	IsViewing(ctx context.Context, userID, chatID string) bool
}

// PhotoUploader stores processed images and returns their public URLs.
type PhotoUploader interface {
	UploadItemPhoto(ctx context.Context, userID string, photo, thumbnail []byte) (string, string, error)
	UploadChatAttachment(ctx context.Context, userID string, data []byte) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// RateLimiter gates user actions by named budget.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
