package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/civic_resolve/internal/models"
)

// RegisterRoutes регистрирует все маршруты API v1.
// Закрытое множество ролей (admin | worker | camera) проверяется на уровне
// маршрутов: назначение и аудит - только администратор, фиксация выполнения -
// только работник, прием заявок - камера или администратор (ручной путь).
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check без аутентификации
	api.GET("/system/health", h.healthCheck)

	authed := api.Group("", RoleAuthMiddleware(h.cfg, h.logger))

	incidents := authed.Group("/incidents")
	{
		incidents.POST("", RequireRole(models.RoleCamera, models.RoleAdmin), h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/stats", h.getStats)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/assign", RequireRole(models.RoleAdmin), h.assignIncident)
		incidents.POST("/:id/complete", RequireRole(models.RoleWorker), h.completeIncident)
		incidents.POST("/:id/verify", RequireRole(models.RoleAdmin), h.verifyIncident)
	}

	// Список активных задач работника
	authed.GET("/workers/:id/tasks", RequireRole(models.RoleWorker, models.RoleAdmin), h.listWorkerTasks)
}
