package models

import "time"

// VendorInput is the body of a vendor create request.
type VendorInput struct {
	Title       string          `json:"title" binding:"required"`
	Email       string          `json:"email"`
	Website     string          `json:"website"`
	PhoneNumber string          `json:"phoneNumber"`
	IsCatering  bool            `json:"isCatering"`
	Description string          `json:"description"`
	Menu        []MenuItemInput `json:"menu"`
	Tags        []string        `json:"tags"`
	Location    *GeoPoint       `json:"location"`
}

// VendorUpdate is the body of a vendor patch. Empty fields are left alone; Tags
// toggles membership, Menu and Schedule append.
type VendorUpdate struct {
	Title       string            `json:"title"`
	Email       string            `json:"email"`
	Website     string            `json:"website"`
	PhoneNumber string            `json:"phoneNumber"`
	IsCatering  *bool             `json:"isCatering"`
	Description string            `json:"description"`
	Menu        []MenuItemInput   `json:"menu"`
	Tags        []string          `json:"tags"`
	Schedule    []OccurrenceInput `json:"schedule"`
	Location    *GeoPoint         `json:"location"`
}

type MenuItemInput struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Type        MenuItemType `json:"type"`
}

// OccurrenceInput describes a schedule entry. Start and End carry the opening and
// closing time of day.
type OccurrenceInput struct {
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Recurrence []string  `json:"recurrence"`
	Location   *GeoPoint `json:"location"`
}

type ReviewInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating" binding:"required"`
}

// GoLiveInput optionally moves the live session away from the home location.
type GoLiveInput struct {
	Location *GeoPoint `json:"location"`
}
