package vendors

import (
	"net/http"

	"github.com/RobbieBendick/curb-companion-backend/utils"
)

var (
	ErrLiveAlreadyStarted    = utils.NewAppError(http.StatusConflict, "liveAlreadyStarted", "Vendor is already live")
	ErrVendorNotLive         = utils.NewAppError(http.StatusConflict, "vendorNotLive", "Vendor is not live")
	ErrLocationRequired      = utils.NewAppError(http.StatusBadRequest, "locationRequired", "A valid location is required")
	ErrReviewAlreadyExists   = utils.NewAppError(http.StatusConflict, "reviewAlreadyExists", "You have already reviewed this vendor")
	ErrCannotReviewOwnVendor = utils.NewAppError(http.StatusForbidden, "cannotReviewYourOwnVendor", "You cannot review your own vendor")
	ErrReviewNotFound        = utils.NewAppError(http.StatusNotFound, "reviewNotFound", "Review not found")
	ErrInvalidRating         = utils.NewAppError(http.StatusBadRequest, "validationErrors", "Rating must be between 1 and 5")
	ErrOccurrenceNotFound    = utils.NewAppError(http.StatusNotFound, "occurrenceNotFound", "Occurrence not found")
	ErrInvalidRecurrence     = utils.NewAppError(http.StatusBadRequest, "invalidRecurrence", "Recurrence rules could not be parsed")
	ErrMenuItemNotFound      = utils.NewAppError(http.StatusNotFound, "menuItemNotFound", "Menu item not found")
	ErrTagNotFound           = utils.NewAppError(http.StatusBadRequest, "tagNotFound", "Tag not found")
	ErrConcurrentUpdate      = utils.NewAppError(http.StatusConflict, "concurrentUpdate", "Vendor was modified by another request, please retry")
)
