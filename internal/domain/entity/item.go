package entity

import "time"

// Detection holds AI-derived capture metadata for an item photo.
type Detection struct {
	Label      string  `json:"label,omitempty" firestore:"label,omitempty"`
	Confidence float64 `json:"confidence,omitempty" firestore:"confidence,omitempty"`
	// Bounding box in normalized [0,1] coordinates of the source photo.
	BoxX float64 `json:"box_x,omitempty" firestore:"boxX,omitempty"`
	BoxY float64 `json:"box_y,omitempty" firestore:"boxY,omitempty"`
	BoxW float64 `json:"box_w,omitempty" firestore:"boxW,omitempty"`
	BoxH float64 `json:"box_h,omitempty" firestore:"boxH,omitempty"`
}

type Item struct {
	ID           string     `json:"id" firestore:"id"`
	OwnerID      string     `json:"owner_id" firestore:"ownerId"`
	Name         string     `json:"name" firestore:"name"`
	Description  string     `json:"description,omitempty" firestore:"description,omitempty"`
	PhotoURL     string     `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty" firestore:"thumbnailUrl,omitempty"`
	CategoryID   string     `json:"category_id,omitempty" firestore:"categoryId,omitempty"`
	LocationID   string     `json:"location_id,omitempty" firestore:"locationId,omitempty"`
	Tags         []string   `json:"tags,omitempty" firestore:"tags,omitempty"`
	Quantity     int        `json:"quantity" firestore:"quantity"`
	Price        *float64   `json:"price,omitempty" firestore:"price,omitempty"`
	Currency     string     `json:"currency,omitempty" firestore:"currency,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty" firestore:"purchaseDate,omitempty"`
	ExpireDate   *time.Time `json:"expire_date,omitempty" firestore:"expireDate,omitempty"`
	WarrantyDate *time.Time `json:"warranty_date,omitempty" firestore:"warrantyDate,omitempty"`
	ReminderDate *time.Time `json:"reminder_date,omitempty" firestore:"reminderDate,omitempty"`
	Favorite     bool       `json:"favorite" firestore:"favorite"`
	KeepForever  bool       `json:"keep_forever" firestore:"keepForever"`
	Detection    *Detection `json:"detection,omitempty" firestore:"detection,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
	// DeletedAt must serialize as an explicit null on live items: Firestore
	// equality filters on deletedAt skip documents missing the field entirely.
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
}

// IsDeleted reports whether the item is soft-deleted. Soft-deleted items are
// excluded from all default queries until restored.
func (i *Item) IsDeleted() bool {
	return i.DeletedAt != nil
}
