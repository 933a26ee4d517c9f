package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poker_school_backend/internal/config"
	"poker_school_backend/internal/controller"
	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/service"
	"poker_school_backend/pkg/database"
	"poker_school_backend/pkg/logger"
	"poker_school_backend/pkg/monitoring"
	"poker_school_backend/pkg/security"
	"poker_school_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the process-wide connections. Repositories receive the handles by
// reference; nothing below this layer opens or holds its own connection.
type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Minio  *minio.Client
}

type repositories struct {
	course    *repository.CourseRepository
	chapter   *repository.ChapterRepository
	component *repository.ComponentRepository
	upload    *repository.UploadRepository
	progress  *repository.ProgressRepository
	mapper    *repository.MapperRepository
	streak    *repository.StreakRepository
	badge     *repository.BadgeRepository
	bookmark  *repository.BookmarkRepository
	lastSeen  *repository.LastSeenRepository
	feedback  *repository.FeedbackRepository
	content   *repository.ContentRepository
}

type services struct {
	identity   *service.IdentityService
	media      *service.MediaService
	catalog    *service.CatalogService
	completion *service.CompletionService
	badge      *service.BadgeService
	progress   *service.ProgressService
	content    *service.ContentService
	engagement *service.EngagementService
	recommend  *service.RecommendationService
	sync       *service.SyncService
}

type controllers struct {
	health     *controller.HealthController
	catalog    *controller.CatalogController
	content    *controller.ContentController
	progress   *controller.ProgressController
	badge      *controller.BadgeController
	engagement *controller.EngagementController
	recommend  *controller.RecommendationController
	sync       *controller.SyncController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		course:    repository.NewCourseRepository(db),
		chapter:   repository.NewChapterRepository(db),
		component: repository.NewComponentRepository(db),
		upload:    repository.NewUploadRepository(db),
		progress:  repository.NewProgressRepository(db),
		mapper:    repository.NewMapperRepository(db),
		streak:    repository.NewStreakRepository(db),
		badge:     repository.NewBadgeRepository(db),
		bookmark:  repository.NewBookmarkRepository(db),
		lastSeen:  repository.NewLastSeenRepository(db),
		feedback:  repository.NewFeedbackRepository(db),
		content:   repository.NewContentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.identity = service.NewIdentityService(&cfg.Identity, rdb, logger.Log)
	s.media = service.NewMediaService(repos.upload, a.Minio, &cfg.Storage, logger.Log)
	s.catalog = service.NewCatalogService(repos.course, repos.chapter, repos.component, s.media)
	s.completion = service.NewCompletionService(repos.streak, repos.chapter, repos.component, repos.progress)
	s.badge = service.NewBadgeService(repos.streak, repos.badge, s.completion, s.identity, logger.Log)
	s.progress = service.NewProgressService(
		repos.progress,
		repos.mapper,
		repos.course,
		repos.chapter,
		repos.component,
		repos.feedback,
		s.badge,
		logger.Log,
	)
	s.content = service.NewContentService(repos.content, s.catalog, s.media)
	s.engagement = service.NewEngagementService(repos.bookmark, repos.lastSeen, repos.component, repos.chapter, repos.mapper, s.media, logger.Log)
	s.recommend = service.NewRecommendationService(repos.progress, repos.chapter, repos.component, s.content, s.media)
	s.sync = service.NewSyncService(repos.progress, repos.mapper, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		health:     controller.NewHealthController(db),
		catalog:    controller.NewCatalogController(s.catalog),
		content:    controller.NewContentController(s.content),
		progress:   controller.NewProgressController(s.progress),
		badge:      controller.NewBadgeController(s.badge),
		engagement: controller.NewEngagementController(s.engagement),
		recommend:  controller.NewRecommendationController(s.recommend),
		sync:       controller.NewSyncController(s.sync),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func initMinio(cfg *config.StorageConfig) *minio.Client {
	if cfg.Type != "minio" || cfg.MinioEndpoint == "" {
		return nil
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		logger.Log.Warn("object store unavailable, file URLs degrade to stored links", zap.Error(err))
		return nil
	}
	return client
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Database.AutoMigrate || cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Minio:  initMinio(&cfg.Storage),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("poker-school", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
