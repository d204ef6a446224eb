package entity

import "time"

const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeOffer  = "offer"
	MessageTypeSystem = "system"
)

type Message struct {
	ID             string                 `json:"id" firestore:"id"`
	ChatID         string                 `json:"chat_id" firestore:"chatId"`
	SenderID       string                 `json:"sender_id" firestore:"senderId"`
	Content        string                 `json:"content" firestore:"content"`
	Type           string                 `json:"type" firestore:"type"`
	AttachmentURLs []string               `json:"attachment_urls,omitempty" firestore:"attachmentUrls,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	ReadBy         []string               `json:"read_by" firestore:"readBy"`
	CreatedAt      time.Time              `json:"created_at" firestore:"createdAt"`
}

// ReadByUser reports whether userID has read the message.
func (m *Message) ReadByUser(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
