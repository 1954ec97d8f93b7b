package models

import "time"

// Image owner types.
const (
	ImageOwnerUser     = "User"
	ImageOwnerVendor   = "Vendor"
	ImageOwnerMenuItem = "MenuItem"
	ImageOwnerTag      = "Tag"
)

// Image is an uploaded picture and the entity it belongs to.
type Image struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	ImageURL   string    `bson:"imageURL" json:"imageURL"`
	Owner      string    `bson:"owner" json:"owner"`
	OwnerType  string    `bson:"ownerType" json:"ownerType"`
	Uploader   string    `bson:"uploader" json:"uploader"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
