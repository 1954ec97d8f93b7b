package models

import "time"

// CateringRequest is an inbound request for catering, resolved by an admin.
type CateringRequest struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	Subject     string    `bson:"subject" json:"subject"`
	Description string    `bson:"description" json:"description"`
	Resolved    bool      `bson:"resolved" json:"resolved"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// CateringInput is the body of a catering request.
type CateringInput struct {
	Email       string `json:"email" binding:"required,email"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
}
