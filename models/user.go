package models

import "time"

// User roles.
const (
	RoleAdmin          = "ADMIN"
	RoleVendorOwner    = "VENDOR_OWNER"
	RoleVendorEmployee = "VENDOR_EMPLOYEE"
)

// MaxRecentlyViewed caps User.RecentlyViewedVendors.
const MaxRecentlyViewed = 10

// User represents a platform user.
type User struct {
	ID                    string     `bson:"id" json:"id"`
	Email                 string     `bson:"email" json:"email"`
	PasswordHash          string     `bson:"passwordHash" json:"-"`
	TokenHash             string     `bson:"tokenHash,omitempty" json:"-"`
	FirstName             string     `bson:"firstName" json:"firstName"`
	Surname               string     `bson:"surname" json:"surname"`
	Roles                 []string   `bson:"roles" json:"roles"`
	Favorites             []string   `bson:"favorites" json:"favorites"`
	RecentlyViewedVendors []string   `bson:"recentlyViewedVendors" json:"recentlyViewedVendors"`
	Location              *GeoPoint  `bson:"location,omitempty" json:"location,omitempty"`
	SavedLocations        []GeoPoint `bson:"savedLocations" json:"savedLocations"`
	ProfileImage          *Image     `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Images                []Image    `bson:"images" json:"images"`
	DeviceToken           string     `bson:"deviceToken,omitempty" json:"deviceToken,omitempty"`
	CreatedAt             time.Time  `bson:"createdAt" json:"createdAt"`
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (u *User) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVendorOwner, RoleVendorEmployee:
		return true
	}
	return false
}
