package models

import "time"

// LandingVendor is a vendor sign-up collected from the marketing site before
// the vendor has an account.
type LandingVendor struct {
	ID           string    `bson:"id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	ProfileImage string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Website      string    `bson:"website,omitempty" json:"website,omitempty"`
	Street       string    `bson:"street" json:"street"`
	City         string    `bson:"city" json:"city"`
	State        string    `bson:"state" json:"state"`
	PostalCode   string    `bson:"postalCode" json:"postalCode"`
	Catering     bool      `bson:"catering" json:"catering"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// LandingVendorInput is the body of a landing-page sign-up. Catering is a
// pointer so an explicit false passes the required check.
type LandingVendorInput struct {
	Title        string `json:"title" binding:"required"`
	ProfileImage string `json:"profileImage"`
	PhoneNumber  string `json:"phoneNumber"`
	Website      string `json:"website"`
	Street       string `json:"street" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postalCode" binding:"required"`
	Catering     *bool  `json:"catering" binding:"required"`
}
