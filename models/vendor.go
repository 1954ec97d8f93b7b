package models

import "time"

// Vendor is a food truck or other mobile vendor.
type Vendor struct {
	ID           string       `bson:"id" json:"id"`
	PlaceID      string       `bson:"placeId,omitempty" json:"placeId,omitempty"`
	Title        string       `bson:"title" json:"title"`
	OwnerID      string       `bson:"ownerId" json:"ownerId"`
	Email        string       `bson:"email,omitempty" json:"email,omitempty"`
	Website      string       `bson:"website,omitempty" json:"website,omitempty"`
	PhoneNumber  string       `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	ProfileImage *Image       `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Images       []Image      `bson:"images" json:"images"`
	IsCatering   bool         `bson:"isCatering" json:"isCatering"`
	Views        int64        `bson:"views" json:"views"`
	Description  string       `bson:"description,omitempty" json:"description,omitempty"`
	Favorites    int64        `bson:"favorites" json:"favorites"`
	Tags         []Tag        `bson:"tags" json:"tags"`
	Location     *GeoPoint    `bson:"location,omitempty" json:"location,omitempty"`
	Reviews      []Review     `bson:"reviews" json:"reviews"`
	Rating       float64      `bson:"rating" json:"rating"`
	Menu         []MenuItem   `bson:"menu" json:"menu"`
	Schedule     []Occurrence `bson:"schedule" json:"schedule"`
	Live         *LiveSession `bson:"live" json:"live"`
	LiveHistory  []string     `bson:"liveHistory" json:"liveHistory"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
}

// DescriptionMaxLength bounds Vendor.Description.
const DescriptionMaxLength = 500

// HasTag reports whether the vendor carries a tag with the given title.
func (v *Vendor) HasTag(title string) bool {
	for _, t := range v.Tags {
		if t.Title == title {
			return true
		}
	}
	return false
}

// VendorView is the response shape of a vendor: the stored document plus values
// derived at read time.
type VendorView struct {
	Vendor
	IsOpen   bool     `json:"isOpen"`
	Distance *float64 `json:"distance,omitempty"`
}
