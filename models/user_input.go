package models

type RegisterInput struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserUpdate is the body of a user patch. A new Location replaces the current one,
// which is then kept in the saved locations.
type UserUpdate struct {
	FirstName string    `json:"firstName"`
	Surname   string    `json:"surname"`
	Location  *GeoPoint `json:"location"`
}

type FavoriteInput struct {
	VendorID string `json:"vendorId" binding:"required"`
}

type LocationInput struct {
	Location GeoPoint `json:"location" binding:"required"`
}

type DeviceTokenInput struct {
	DeviceToken string `json:"deviceToken" binding:"required"`
}

type RolesInput struct {
	Roles []string `json:"roles" binding:"required"`
}
