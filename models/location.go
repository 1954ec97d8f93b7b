package models

// Address is the postal address attached to a location.
type Address struct {
	Street     string `bson:"street,omitempty" json:"street,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

// GeoPoint represents a GeoJSON Point with an optional street address.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
	Address     *Address  `bson:"address,omitempty" json:"address,omitempty"`
	Accuracy    *float64  `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
	Altitude    *float64  `bson:"altitude,omitempty" json:"altitude,omitempty"`
}

// NewGeoPoint builds a point from longitude and latitude, in that order.
func NewGeoPoint(lon, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Valid reports whether the point carries a usable [lon, lat] pair.
func (p GeoPoint) Valid() bool {
	if len(p.Coordinates) != 2 {
		return false
	}
	lon, lat := p.Coordinates[0], p.Coordinates[1]
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

func (p GeoPoint) Lon() float64 { return p.Coordinates[0] }

func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Clone returns a deep copy so callers can hand out points without aliasing.
func (p GeoPoint) Clone() GeoPoint {
	out := p
	if p.Coordinates != nil {
		out.Coordinates = append([]float64(nil), p.Coordinates...)
	}
	if p.Address != nil {
		a := *p.Address
		out.Address = &a
	}
	if p.Accuracy != nil {
		v := *p.Accuracy
		out.Accuracy = &v
	}
	if p.Altitude != nil {
		v := *p.Altitude
		out.Altitude = &v
	}
	return out
}

// SamePlace compares coordinates only.
func (p GeoPoint) SamePlace(o GeoPoint) bool {
	if len(p.Coordinates) != 2 || len(o.Coordinates) != 2 {
		return false
	}
	return p.Coordinates[0] == o.Coordinates[0] && p.Coordinates[1] == o.Coordinates[1]
}
