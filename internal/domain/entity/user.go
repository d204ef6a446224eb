package entity

import "time"

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Status   string `json:"status" firestore:"status"`

	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`

	SellerRating      float64 `json:"seller_rating,omitempty" firestore:"sellerRating,omitempty"`
	SellerReviewCount int     `json:"seller_review_count,omitempty" firestore:"sellerReviewCount,omitempty"`
	BuyerRating       float64 `json:"buyer_rating,omitempty" firestore:"buyerRating,omitempty"`
	BuyerReviewCount  int     `json:"buyer_review_count,omitempty" firestore:"buyerReviewCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Profile is the seller-facing read-only aggregate shown on listing pages.
type Profile struct {
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	AvatarURL    string  `json:"avatar_url,omitempty"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`
	ResponseRate float64 `json:"response_rate"` // fraction of conversations answered
}
