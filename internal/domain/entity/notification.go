package entity

import "time"

// Notification types form a fixed enumeration split into two display classes:
// message-class (marketplace traffic) and reminder-class (inventory dates).
const (
	NotificationTypeMessage        = "message"
	NotificationTypeOffer          = "offer"
	NotificationTypeListingSold    = "listing_sold"
	NotificationTypeReviewReceived = "review_received"

	NotificationTypeExpireReminder   = "expire_reminder"
	NotificationTypeWarrantyReminder = "warranty_reminder"
	NotificationTypeCustomReminder   = "custom_reminder"
)

const (
	NotificationClassMessage  = "message"
	NotificationClassReminder = "reminder"
)

type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Type      string    `json:"type" firestore:"type"`
	Title     string    `json:"title" firestore:"title"`
	Body      string    `json:"body,omitempty" firestore:"body,omitempty"`
	ItemID    string    `json:"item_id,omitempty" firestore:"itemId,omitempty"`
	ListingID string    `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	ChatID    string    `json:"chat_id,omitempty" firestore:"chatId,omitempty"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// NotificationClass maps a notification type to its display class. Unknown
// types fall back to the message class.
func NotificationClass(notificationType string) string {
	switch notificationType {
	case NotificationTypeExpireReminder, NotificationTypeWarrantyReminder, NotificationTypeCustomReminder:
		return NotificationClassReminder
	default:
		return NotificationClassMessage
	}
}

// ValidNotificationType reports whether t belongs to the fixed enumeration.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationTypeMessage, NotificationTypeOffer, NotificationTypeListingSold,
		NotificationTypeReviewReceived, NotificationTypeExpireReminder,
		NotificationTypeWarrantyReminder, NotificationTypeCustomReminder:
		return true
	}
	return false
}
