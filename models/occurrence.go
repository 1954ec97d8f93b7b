package models

import "time"

// Occurrence is a scheduled opening window. Only the time-of-day of Start and End is used;
// the dates come from the recurrence rules.
type Occurrence struct {
	ID         string    `bson:"id" json:"id"`
	Start      time.Time `bson:"start" json:"start"`
	End        time.Time `bson:"end" json:"end"`
	Recurrence []string  `bson:"recurrence" json:"recurrence"`
	Location   *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
}
