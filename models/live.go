package models

import "time"

// LiveSession is an operator broadcast saying the vendor is open right now at Location.
type LiveSession struct {
	ID       string    `bson:"id" json:"id"`
	VendorID string    `bson:"vendorId" json:"vendorId"`
	Location GeoPoint  `bson:"location" json:"location"`
	Start    time.Time `bson:"start" json:"start"`
}

// LiveHistory is the snapshot of a concluded live session. It is written once and never updated.
type LiveHistory struct {
	ID       string    `bson:"id" json:"id"`
	VendorID string    `bson:"vendorId" json:"vendorId"`
	Location GeoPoint  `bson:"location" json:"location"`
	Start    time.Time `bson:"start" json:"start"`
	End      time.Time `bson:"end" json:"end"`
}
