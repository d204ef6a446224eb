package entity

import "time"

// Review adalah ulasan yang diberikan setelah transaksi selesai.
type Review struct {
	ID            string    `json:"id" firestore:"id"`
	TransactionID string    `json:"transaction_id" firestore:"transactionId"`
	ListingID     string    `json:"listing_id" firestore:"listingId"`
	ReviewerID    string    `json:"reviewer_id" firestore:"reviewerId"`
	TargetID      string    `json:"target_id" firestore:"targetId"`
	Type          string    `json:"type" firestore:"type"`     // "seller_review" or "buyer_review"
	Rating        int       `json:"rating" firestore:"rating"` // 1-5
	Content       string    `json:"content,omitempty" firestore:"content,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

const (
	ReviewTypeSeller = "seller_review"
	ReviewTypeBuyer  = "buyer_review"
)

// PendingReview is a derived view, never stored: a completed transaction for
// which the viewer has not yet written their side's review.
type PendingReview struct {
	TransactionID string    `json:"transaction_id"`
	ListingID     string    `json:"listing_id"`
	TargetID      string    `json:"target_id"`
	Type          string    `json:"type"`
	CompletedAt   time.Time `json:"completed_at"`
}
