package entity

import "time"

type Category struct {
	ID        string    `json:"id" firestore:"id"`
	OwnerID   string    `json:"owner_id,omitempty" firestore:"ownerId,omitempty"` // empty for system categories
	Name      string    `json:"name" firestore:"name"`
	Icon      string    `json:"icon,omitempty" firestore:"icon,omitempty"`
	ItemCount int       `json:"item_count" firestore:"itemCount"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Location struct {
	ID       string `json:"id" firestore:"id"`
	OwnerID  string `json:"owner_id" firestore:"ownerId"`
	Name     string `json:"name" firestore:"name"`
	ParentID string `json:"parent_id,omitempty" firestore:"parentId,omitempty"`
	// Path is the materialized hierarchy string, e.g. "Home / Garage / Shelf B".
	Path      string    `json:"path" firestore:"path"`
	Icon      string    `json:"icon,omitempty" firestore:"icon,omitempty"`
	ItemCount int       `json:"item_count" firestore:"itemCount"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
