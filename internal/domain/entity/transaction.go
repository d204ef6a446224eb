package entity

import "time"

const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
)

// Transaction records a sale of a listing between two users. A completed
// transaction entitles each participant to exactly one review.
type Transaction struct {
	ID          string     `json:"id" firestore:"id"`
	ListingID   string     `json:"listing_id" firestore:"listingId"`
	ItemID      string     `json:"item_id" firestore:"itemId"`
	SellerID    string     `json:"seller_id" firestore:"sellerId"`
	BuyerID     string     `json:"buyer_id" firestore:"buyerId"`
	Price       float64    `json:"price" firestore:"price"`
	Status      string     `json:"status" firestore:"status"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}
