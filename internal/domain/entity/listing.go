package entity

import "time"

const (
	ListingStatusActive   = "active"
	ListingStatusReserved = "reserved"
	ListingStatusSold     = "sold"
	ListingStatusRemoved  = "removed"
)

const (
	PriceTypeFixed      = "fixed"
	PriceTypeNegotiable = "negotiable"
	PriceTypeFree       = "free"
)

// Listing is a marketplace offer wrapping exactly one inventory item.
type Listing struct {
	ID          string   `json:"id" firestore:"id"`
	ItemID      string   `json:"item_id" firestore:"itemId"`
	SellerID    string   `json:"seller_id" firestore:"sellerId"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description,omitempty" firestore:"description,omitempty"`
	Price       float64  `json:"price" firestore:"price"`
	PriceType   string   `json:"price_type" firestore:"priceType"`
	Status      string   `json:"status" firestore:"status"`
	PhotoURLs   []string `json:"photo_urls,omitempty" firestore:"photoUrls,omitempty"`
	Views       int      `json:"views" firestore:"views"`

	BuyerID string     `json:"buyer_id,omitempty" firestore:"buyerId,omitempty"`
	SoldAt  *time.Time `json:"sold_at,omitempty" firestore:"soldAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsTerminal reports whether the listing no longer blocks its item from being
// listed again. Active and reserved listings are non-terminal.
func (l *Listing) IsTerminal() bool {
	return l.Status == ListingStatusSold || l.Status == ListingStatusRemoved
}
