package app

import (
	"signlearn_backend/docs"
	"signlearn_backend/internal/config"
	"signlearn_backend/internal/middleware"
	"signlearn_backend/pkg/monitoring"
	"signlearn_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	if a.learnerLimiter != nil {
		authGroup.Use(a.learnerLimiter.Middleware(security.LearnerOrIP))
	}
	{
		registerLearnerRoutes(authGroup, c)
	}
}

func registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	// progress views
	rg.GET("/progress/overview", c.progress.GetOverview)
	rg.GET("/progress/stats", c.progress.GetStats)
	rg.GET("/progress/courses", c.progress.GetCourses)
	rg.GET("/progress/recommendations", c.progress.GetRecommendations)
	rg.GET("/progress/completed", c.progress.GetCompleted)

	// catalog
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.GET("/courses/:id/questions", c.course.GetCourseQuestions)

	// profile
	rg.GET("/profile", c.profile.GetProfile)
	rg.PUT("/profile/name", c.profile.Rename)
	rg.POST("/profile/avatar", c.profile.UploadAvatar)
	rg.PUT("/profile/avatar", c.profile.AttachAvatar)
}
