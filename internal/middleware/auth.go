package middleware

import (
	"strings"

	"signlearn_backend/internal/config"
	"signlearn_backend/internal/util"
	"signlearn_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

// AuthMiddleware resolves the current learner from the identity token and
// rejects the request when there is none.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("rejected identity token", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetLearnerInContext(c, claims)
		c.Next()
	}
}
