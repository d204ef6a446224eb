package entity

import "time"

// Chat is a conversation keyed by a listing and its two participants.
type Chat struct {
	ID            string         `json:"id" firestore:"id"`
	ListingID     string         `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	Participants  []string       `json:"participants" firestore:"participants"`
	SellerID      string         `json:"seller_id,omitempty" firestore:"sellerId,omitempty"`
	BuyerID       string         `json:"buyer_id,omitempty" firestore:"buyerId,omitempty"`
	CreatedAt     time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" firestore:"updatedAt"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"` // userID -> unread messages
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterpart of userID in a two-party chat.
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
