package routes

import (
	"time"

	"github.com/RobbieBendick/curb-companion-backend/handlers"
	"github.com/RobbieBendick/curb-companion-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers sign-up, sign-in and sign-out.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	g := api.Group("/auth")
	{
		g.POST("/register", hb.Auth.RegisterHandler)
		g.POST("/login", hb.Auth.LoginHandler)
		g.POST("/logout", auth.Required(), hb.Auth.LogoutHandler)
	}
}

// RegisterVendorRoutes registers vendor profiles, live sessions, schedules, reviews and images.
func RegisterVendorRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	g := api.Group("/vendors")
	{
		// Public, with the viewer identified when a token is sent.
		g.GET("/search", hb.Vendors.SearchVendorsHandler)
		g.GET("/:id", auth.Optional(), hb.Vendors.GetVendorHandler)
		g.GET("/:id/reviews", hb.Vendors.GetReviewsHandler)

		protected := g.Group("")
		protected.Use(auth.Required())
		protected.GET("/search/owner/:ownerId", hb.Vendors.GetVendorsByOwnerHandler)
		protected.POST("/create", hb.Vendors.CreateVendorHandler)
		protected.PATCH("/:id", hb.Vendors.UpdateVendorHandler)
		protected.DELETE("/:id", hb.Vendors.DeleteVendorHandler)

		protected.POST("/:id/go-live", hb.Vendors.GoLiveHandler)
		protected.POST("/:id/end-live", hb.Vendors.EndLiveHandler)

		protected.POST("/:id/schedule/occurrences", hb.Vendors.AddOccurrenceHandler)
		protected.DELETE("/:id/schedule/occurrences/:occurrenceID", hb.Vendors.RemoveOccurrenceHandler)

		protected.POST("/:id/reviews", hb.Vendors.AddReviewHandler)
		protected.DELETE("/:id/reviews", hb.Vendors.RemoveReviewHandler)

		protected.POST("/:id/profile-image", hb.Vendors.UploadProfileImageHandler)
		protected.POST("/:id/images", hb.Vendors.UploadImageHandler)
		protected.POST("/:id/menuitems/:itemID/image", hb.Vendors.UploadMenuItemImageHandler)
	}
}

// RegisterHomeRoutes registers the home screen sections.
func RegisterHomeRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api.GET("/home/sections", auth.Optional(), hb.Home.SectionsHandler)
}

// RegisterUserRoutes registers user profile endpoints.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	g := api.Group("/users")
	{
		g.GET("/:id", hb.Users.GetUserHandler)
		g.GET("/:id/reviews", hb.Users.GetUserReviewsHandler)

		protected := g.Group("")
		protected.Use(auth.Required())
		protected.GET("", middleware.RequireAdmin(), hb.Users.ListUsersHandler)
		protected.POST("/:id/profile-image", hb.Users.UploadProfileImageHandler)
		protected.POST("/:id/images", hb.Users.UploadImageHandler)
		protected.PATCH("/:id", hb.Users.UpdateUserHandler)
		protected.DELETE("/:id", hb.Users.DeleteUserHandler)
		protected.POST("/:id/favorites", hb.Users.AddFavoriteHandler)
		protected.DELETE("/:id/favorites", hb.Users.RemoveFavoriteHandler)
		protected.PATCH("/:id/save-location", hb.Users.SaveLocationHandler)
		protected.PATCH("/:id/unsave-location", hb.Users.UnsaveLocationHandler)
		protected.PATCH("/:id/update-device-token", hb.Users.UpdateDeviceTokenHandler)
		protected.PATCH("/:id/update-roles", middleware.RequireAdmin(), hb.Users.UpdateRolesHandler)
	}
}

// RegisterTagRoutes registers the tag catalogue.
func RegisterTagRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	g := api.Group("/tags")
	{
		g.GET("", hb.Tags.ListTagsHandler)

		admin := g.Group("")
		admin.Use(auth.Required(), middleware.RequireAdmin())
		admin.POST("/create", hb.Tags.CreateTagHandler)
		admin.POST("/:id/image", hb.Tags.UploadTagImageHandler)
	}
}

// RegisterNotificationRoutes registers in-app notifications.
func RegisterNotificationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	g := api.Group("/notifications")
	{
		g.Use(auth.Required())
		g.GET("", hb.Notifications.ListNotificationsHandler)
		g.GET("/read/:id", hb.Notifications.ReadNotificationHandler)
		g.POST("/send", middleware.RequireAdmin(), hb.Notifications.SendNotificationHandler)
	}
}

// RegisterCateringRoutes registers catering requests.
func RegisterCateringRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/catering/create-catering-request", hb.Catering.CreateCateringRequestHandler)
}

// RegisterSearchRoutes registers address autocomplete.
func RegisterSearchRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/search/autocomplete", hb.Search.AutocompleteHandler)
}

// RegisterLandingRoutes registers marketing-site vendor sign-ups.
func RegisterLandingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/landing/create", hb.Landing.CreateLandingVendorHandler)
}

// RegisterOpsRoutes registers health and metrics.
func RegisterOpsRoutes(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and global middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator, limiter *middleware.RateLimiter) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics())

	RegisterOpsRoutes(r)

	api := r.Group("/api")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	RegisterAuthRoutes(api, hb, auth)
	RegisterVendorRoutes(api, hb, auth)
	RegisterHomeRoutes(api, hb, auth)
	RegisterUserRoutes(api, hb, auth)
	RegisterTagRoutes(api, hb, auth)
	RegisterNotificationRoutes(api, hb, auth)
	RegisterCateringRoutes(api, hb)
	RegisterSearchRoutes(api, hb)
	RegisterLandingRoutes(api, hb)
}
