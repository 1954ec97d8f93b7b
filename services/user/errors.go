package user

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/utils"
)

var (
	ErrEmailTaken             = utils.NewAppError(http.StatusConflict, "emailAlreadyExists", "A user with this email already exists")
	ErrInvalidCredentials     = utils.NewAppError(http.StatusUnauthorized, "invalidCredentials", "Invalid email or password")
	ErrWeakPassword           = utils.NewAppError(http.StatusBadRequest, "weakPassword", "Password does not meet the requirements")
	ErrVendorAlreadyFavorited = utils.NewAppError(http.StatusConflict, "vendorAlreadyFavorited", "Vendor is already a favorite")
	ErrVendorNotFavorited     = utils.NewAppError(http.StatusConflict, "vendorNotFavorited", "Vendor is not a favorite")
	ErrLocationAlreadySaved   = utils.NewAppError(http.StatusConflict, "locationAlreadySaved", "Location is already saved")
	ErrLocationNotFound       = utils.NewAppError(http.StatusNotFound, "locationNotFound", "Saved location not found")
	ErrInvalidLocation        = utils.NewAppError(http.StatusBadRequest, "locationRequired", "A valid location is required")
	ErrInvalidRole            = utils.NewAppError(http.StatusBadRequest, "invalidRole", "Unknown role")
)
