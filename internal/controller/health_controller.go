package controller

import (
	"context"
	"net/http"
	"time"

	"signlearn_backend/internal/util"
	"signlearn_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type CourseCounter interface {
	Count(ctx context.Context) (int64, error)
}

type HealthController struct {
	DB      Pinger
	Courses CourseCounter
	Storage string
	Timeout time.Duration
}

func NewHealthController(db Pinger, courses CourseCounter, storageBackend string) *HealthController {
	return &HealthController{DB: db, Courses: courses, Storage: storageBackend, Timeout: 2 * time.Second}
}

// @Summary Health check
// @Description Record store reachability, catalog size and the active storage backend.
// @Description An empty catalog reports "degraded": no course can be recommended.
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.Timeout)
	defer cancel()

	components := gin.H{"storage": c.Storage}

	if err := c.DB.PingContext(reqCtx); err != nil {
		logger.Log.Warn("health check: record store unreachable", zap.Error(err))
		components["database"] = "down"
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Database unavailable",
			Data:    gin.H{"status": "down", "components": components},
		})
		return
	}
	components["database"] = "up"

	courses, err := c.Courses.Count(reqCtx)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	status := "ok"
	if courses == 0 {
		status = "degraded"
	}
	util.Success(ctx, gin.H{
		"status":     status,
		"components": components,
		"catalog":    gin.H{"courses": courses},
	})
}
