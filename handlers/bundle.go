package handlers

import (
	"github.com/RobbieBendick/curb-companion-backend/services/catering"
	"github.com/RobbieBendick/curb-companion-backend/services/home"
	"github.com/RobbieBendick/curb-companion-backend/services/landing"
	"github.com/RobbieBendick/curb-companion-backend/services/notification"
	"github.com/RobbieBendick/curb-companion-backend/services/places"
	"github.com/RobbieBendick/curb-companion-backend/services/tag"
	"github.com/RobbieBendick/curb-companion-backend/services/user"
	"github.com/RobbieBendick/curb-companion-backend/services/vendors"
)

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	Auth          *AuthHandler
	Vendors       *VendorHandler
	Home          *HomeHandler
	Users         *UserHandler
	Tags          *TagHandler
	Notifications *NotificationHandler
	Catering      *CateringHandler
	Search        *SearchHandler
	Landing       *LandingHandler
}

// Services is everything the handlers call into.
type Services struct {
	Users         user.UserService
	Vendors       vendors.VendorService
	Home          home.HomeService
	Tags          tag.TagService
	Notifications notification.NotificationService
	Catering      catering.CateringService
	Places        places.PlacesService
	Landing       landing.LandingService
}

func NewHandlerBundle(s Services) *HandlerBundle {
	return &HandlerBundle{
		Auth:          &AuthHandler{Users: s.Users},
		Vendors:       &VendorHandler{Vendors: s.Vendors},
		Home:          &HomeHandler{Home: s.Home},
		Users:         &UserHandler{Users: s.Users},
		Tags:          &TagHandler{Tags: s.Tags},
		Notifications: &NotificationHandler{Notifications: s.Notifications},
		Catering:      &CateringHandler{Catering: s.Catering},
		Search:        &SearchHandler{Places: s.Places},
		Landing:       &LandingHandler{Landing: s.Landing},
	}
}
