package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"signlearn_backend/internal/config"
	"signlearn_backend/internal/controller"
	"signlearn_backend/internal/repository"
	"signlearn_backend/internal/service"
	"signlearn_backend/pkg/configwatcher"
	"signlearn_backend/pkg/database"
	"signlearn_backend/pkg/logger"
	"signlearn_backend/pkg/monitoring"
	"signlearn_backend/pkg/security"
	"signlearn_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigFile      string
	Router          *gin.Engine
	DB              *gorm.DB
	services        *services
	tracer          *sdktrace.TracerProvider
	ipLimiter       *security.RateLimiter
	learnerLimiter  *security.RateLimiter
	configCallbacks []func(*config.Config)
}

type repositories struct {
	learner  *repository.LearnerRepository
	course   *repository.CourseRepository
	question *repository.QuestionRepository
}

type services struct {
	storage  *service.StorageService
	progress *service.ProgressService
	profile  *service.ProfileService
	course   *service.CourseService
}

type controllers struct {
	progress *controller.ProgressController
	course   *controller.CourseController
	profile  *controller.ProfileController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		learner:  repository.NewLearnerRepository(db),
		course:   repository.NewCourseRepository(db),
		question: repository.NewQuestionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.progress = service.NewProgressService(repos.learner, repos.course, cfg.Progress)
	s.profile = service.NewProfileService(repos.learner, s.storage, cfg)
	s.course = service.NewCourseService(repos.course, repos.question)
	return s
}

func (a *App) initControllers(repos *repositories, s *services, db *gorm.DB) *controllers {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Fatal("Failed to get database handle", zap.Error(err))
	}
	return &controllers{
		progress: controller.NewProgressController(s.progress),
		course:   controller.NewCourseController(s.course),
		profile:  controller.NewProfileController(s.profile),
		health:   controller.NewHealthController(sqlDB, repos.course, s.storage.Backend()),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(a.ipLimiter.Middleware(security.ClientIP))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig pushes reloadable settings into the running services. Only the
// log level and the progress section are hot; everything else needs a restart.
func (a *App) applyConfig(cfg *config.Config) {
	if err := logger.ApplyConfig(cfg); err != nil {
		logger.Log.Warn("log level not changed", zap.Error(err))
	}
	a.services.progress.ApplyConfig(cfg.Progress)
	a.services.profile.ApplyConfig(cfg.Progress)
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func NewApp(cfg *config.Config, configFile string) *App {
	if err := logger.InitLogger(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != "release")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config:         cfg,
		ConfigFile:     configFile,
		DB:             db,
		ipLimiter:      security.NewRateLimiter(cfg.RateLimit),
		learnerLimiter: security.NewRateLimiter(cfg.RateLimit),
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(repos, app.services, db)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.Log.Info("Progress settings applied",
			zap.Int("recommendation_limit", c.Progress.RecommendationLimit),
			zap.Int("name_max_length", c.Progress.NameMaxLength),
			zap.Int("total_signs", c.Progress.TotalSigns),
			zap.Int64("avatar_max_bytes", c.Progress.AvatarMaxBytes))
	})

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if _, ok := app.services.storage.Provider.(*service.LocalStorageProvider); ok {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.ipLimiter.Run(ctx)
	go a.learnerLimiter.Run(ctx)

	if a.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.ConfigFile, a.applyConfig); err != nil {
				logger.Log.Warn("config hot reload disabled", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}

// ConfigFilePath returns the file LoadConfig reads from dir.
func ConfigFilePath(dir string) string {
	return filepath.Join(dir, "config.yaml")
}
