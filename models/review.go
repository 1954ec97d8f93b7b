package models

import "time"

// Review is a user's rating of a vendor. A user holds at most one review per vendor.
type Review struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	VendorID    string    `bson:"vendorId" json:"vendorId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Rating      float64   `bson:"rating" json:"rating"`
	Images      []Image   `bson:"images,omitempty" json:"images,omitempty"`
	IsReported  bool      `bson:"isReported" json:"isReported"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
