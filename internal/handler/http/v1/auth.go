package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/civic_resolve/internal/config"
	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/sirupsen/logrus"
)

const roleContextKey = "role"

// RoleAuthMiddleware - middleware аутентификации по API-ключу.
// Ключ определяет роль вызывающего (admin | worker | camera),
// роль кладется в контекст запроса для последующих проверок.
func RoleAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		role, ok := resolveRole(cfg, apiKey)
		if !ok {
			log.Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RequireRole пропускает запрос только для перечисленных ролей
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(roleContextKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}
		current, _ := value.(models.Role)
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not allowed for this operation"})
	}
}

func resolveRole(cfg *config.Config, apiKey string) (models.Role, bool) {
	switch {
	case containsKey(cfg.AdminAPIKeys, apiKey):
		return models.RoleAdmin, true
	case containsKey(cfg.WorkerAPIKeys, apiKey):
		return models.RoleWorker, true
	case containsKey(cfg.CameraAPIKeys, apiKey):
		return models.RoleCamera, true
	}
	return "", false
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
