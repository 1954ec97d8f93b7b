// Package repository bundles the Mongo-backed repositories the service runs on.
package repository

import (
	cateringRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/catering"
	imageRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/image"
	landingRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/landing"
	liveRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/live"
	notificationRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/notification"
	tagRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/tag"
	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
)

type Repositories struct {
	Users         userRepo.UserRepository
	Vendors       vendorRepo.VendorRepository
	Tags          tagRepo.TagRepository
	LiveHistory   liveRepo.LiveHistoryRepository
	Images        imageRepo.ImageRepository
	Notifications notificationRepo.NotificationRepository
	Catering      cateringRepo.CateringRepository
	Landing       landingRepo.LandingRepository
}

// NewMongoRepositories opens every collection and ensures its indexes.
// database.InitDB must have been called.
func NewMongoRepositories() *Repositories {
	return &Repositories{
		Users:         userRepo.NewMongoUserRepo(),
		Vendors:       vendorRepo.NewMongoVendorRepo(),
		Tags:          tagRepo.NewMongoTagRepo(),
		LiveHistory:   liveRepo.NewMongoLiveHistoryRepo(),
		Images:        imageRepo.NewMongoImageRepo(),
		Notifications: notificationRepo.NewMongoNotificationRepo(),
		Catering:      cateringRepo.NewMongoCateringRepo(),
		Landing:       landingRepo.NewMongoLandingRepo(),
	}
}
