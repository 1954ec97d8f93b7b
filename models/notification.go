package models

import (
	"fmt"
	"time"
)

// Notification length limits.
const (
	NotificationTitleMax = 64
	NotificationBodyMax  = 500
)

// Notification is an in-app message delivered to a user and optionally pushed over FCM.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Route     string    `bson:"route,omitempty" json:"route,omitempty"`
	ImageURL  string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Age       string    `bson:"-" json:"age,omitempty"`
}

// HumanAge renders how long ago the notification was created relative to now.
func (n *Notification) HumanAge(now time.Time) string {
	d := now.Sub(n.CreatedAt)
	if d < time.Minute {
		return "Just now"
	}
	units := []struct {
		name string
		size time.Duration
	}{
		{"year", 365 * 24 * time.Hour},
		{"month", 30 * 24 * time.Hour},
		{"week", 7 * 24 * time.Hour},
		{"day", 24 * time.Hour},
		{"hour", time.Hour},
		{"minute", time.Minute},
	}
	for _, u := range units {
		if d >= u.size {
			count := int(d / u.size)
			if count == 1 {
				return fmt.Sprintf("1 %s ago", u.name)
			}
			return fmt.Sprintf("%d %ss ago", count, u.name)
		}
	}
	return "Just now"
}

// NotificationInput is the body of an admin send request.
type NotificationInput struct {
	UserID string `json:"userId" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Route  string `json:"route"`
}
