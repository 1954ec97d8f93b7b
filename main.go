package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/config"
	"github.com/RobbieBendick/curb-companion-backend/cron"
	"github.com/RobbieBendick/curb-companion-backend/database"
	"github.com/RobbieBendick/curb-companion-backend/database/repository"
	"github.com/RobbieBendick/curb-companion-backend/handlers"
	"github.com/RobbieBendick/curb-companion-backend/middleware"
	"github.com/RobbieBendick/curb-companion-backend/routes"
	"github.com/RobbieBendick/curb-companion-backend/services/availability"
	"github.com/RobbieBendick/curb-companion-backend/services/catering"
	"github.com/RobbieBendick/curb-companion-backend/services/home"
	"github.com/RobbieBendick/curb-companion-backend/services/landing"
	"github.com/RobbieBendick/curb-companion-backend/services/notification"
	"github.com/RobbieBendick/curb-companion-backend/services/places"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/services/recurrence"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/services/tag"
	"github.com/RobbieBendick/curb-companion-backend/services/tasks"
	"github.com/RobbieBendick/curb-companion-backend/services/user"
	"github.com/RobbieBendick/curb-companion-backend/services/vendors"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	// Push notifications are optional; without Firebase they are stored only.
	var pusher notification.Pusher
	if fcm, err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Warn("main: push notifications disabled", zap.Error(err))
	} else {
		pusher = notification.NewFCMPusher(fcm)
	}

	store, err := newImageStore(rootCtx, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize image store: %v", err)
	}

	repos := repository.NewMongoRepositories()

	// engines.
	rules := recurrence.NewEngine()
	openNow := availability.NewEngine(rules, logger.Named("availability"))
	ranker := ranking.NewEngine(repos.Vendors, openNow, logger.Named("ranking"))

	// background jobs.
	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()

	// services.
	imageService := storage.NewImageService(store, repos.Images, logger.Named("images"))
	userService := &user.DefaultUserService{
		Repo:      repos.Users,
		Vendors:   repos.Vendors,
		Images:    imageService,
		AuthCache: utils.GetAuthCacheClient(),
		TokenTTL:  config.TokenTTL(),
		Logger:    logger.Named("users"),
	}
	vendorService := &vendors.DefaultVendorService{
		Repo:            repos.Vendors,
		Users:           repos.Users,
		Tags:            repos.Tags,
		History:         repos.LiveHistory,
		Images:          imageService,
		Search:          ranker,
		Availability:    openNow,
		Rules:           rules,
		Scheduler:       tasks.NewAsynqScheduler(queue),
		LiveMaxDuration: config.LiveMaxDuration(),
		Logger:          logger.Named("vendors"),
	}
	homeService := &home.DefaultHomeService{
		Ranker:   ranker,
		Cache:    utils.GetCacheClient(),
		CacheTTL: config.HomeCacheTTL(),
		Logger:   logger.Named("home"),
	}
	notificationService := &notification.DefaultNotificationService{
		Repo:   repos.Notifications,
		Users:  repos.Users,
		Pusher: pusher,
		Logger: logger.Named("notifications"),
	}
	tagService := &tag.DefaultTagService{Repo: repos.Tags, Images: imageService, Logger: logger.Named("tags")}
	cateringService := &catering.DefaultCateringService{
		Repo:     repos.Catering,
		Notifier: notificationService,
		Logger:   logger.Named("catering"),
	}
	landingService := &landing.DefaultLandingService{
		Repo:     repos.Landing,
		Notifier: notificationService,
		Logger:   logger.Named("landing"),
	}
	placesService := &places.DefaultPlacesService{
		Client:  &http.Client{Timeout: 5 * time.Second},
		APIKey:  config.AppConfig.GoogleAPIKey,
		BaseURL: config.AppConfig.GoogleAutocompleteURL,
		Logger:  logger.Named("places"),
	}

	worker := cron.StartWorker(vendorService, logger.Named("worker"))

	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Users:         userService,
		Vendors:       vendorService,
		Home:          homeService,
		Tags:          tagService,
		Notifications: notificationService,
		Catering:      cateringService,
		Places:        placesService,
		Landing:       landingService,
	})

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(
		router,
		handlerBundle,
		middleware.NewAuthenticator(repos.Users, utils.GetAuthCacheClient()),
		middleware.NewRateLimiter(config.AppConfig.MaxRequestsPerMin),
	)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newImageStore selects the backend named by IMAGE_STORE.
func newImageStore(ctx context.Context, logger *zap.Logger) (storage.ImageStore, error) {
	cfg := config.AppConfig
	if cfg.ImageStore == "cloudinary" {
		return storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	return storage.NewS3Store(ctx, storage.S3Config{
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	}, logger.Named("s3"))
}
