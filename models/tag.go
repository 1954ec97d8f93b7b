package models

// Tag is a vendor category such as "bbq" or "tacos". Titles are unique.
type Tag struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
	Image *Image `bson:"image,omitempty" json:"image,omitempty"`
}
