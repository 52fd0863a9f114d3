package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/civic_resolve/internal/config"
	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/shenikar/civic_resolve/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	intakeService   service.IntakeService
	workflowService service.WorkflowService
	queryService    service.QueryService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(intake service.IntakeService, workflow service.WorkflowService, query service.QueryService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		intakeService:   intake,
		workflowService: workflow,
		queryService:    query,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// respondServiceError отображает таксономию ошибок движка на HTTP-статусы.
// Conflict - первоклассный вариант результата: клиент обязан перечитать
// состояние перед повтором, автоповтора на сервере нет.
func respondServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, service.ErrConflict):
		log.WithError(err).Info("Transition lost to a concurrent caller")
		c.JSON(http.StatusConflict, gin.H{"error": "incident status changed, refetch and retry"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not allowed for this actor"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnavailable):
		log.WithError(err).Error("Collaborator unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable"})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseIncidentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return 0, false
	}
	return id, true
}

// @Summary Submit a report or detection
// @Description Accepts a citizen report (explicit type) or a camera detection result. Detections below the confidence threshold open no incident. Requires camera or admin API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param submission body CreateIncidentRequest true "Report or detection submission"
// @Success 200 {object} NoAnomalyResponse "No detection cleared the threshold"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.intakeService.Submit(c.Request.Context(), DTOToSubmission(input))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	if incident == nil {
		c.JSON(http.StatusOK, NoAnomalyResponse{Anomaly: false})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Assign an incident to a worker
// @Description Dispatch a pending incident to a field worker. At most one admin's assignment wins per incident. Requires admin API key.
// @Tags Workflow
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Param assignment body AssignRequest true "Assignment request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is no longer pending"
// @Router /incidents/{id}/assign [post]
func (h *Handler) assignIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "assignIncident").WithField("id", id)

	var input AssignRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.workflowService.Assign(c.Request.Context(), id, input.WorkerID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Complete an assigned incident
// @Description Submit resolution evidence for an assigned incident. Only the assigned worker may complete it. Requires worker API key.
// @Tags Workflow
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Param completion body CompleteRequest true "Completion request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Task assigned to another worker"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is no longer assigned"
// @Router /incidents/{id}/complete [post]
func (h *Handler) completeIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "completeIncident").WithField("id", id)

	var input CompleteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.workflowService.Complete(c.Request.Context(), id, input.WorkerID, input.ResolvedImage)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Verify a completed incident
// @Description Apply the audit decision: approve finalizes the incident, reject returns it to the dispatch pool. Requires admin API key.
// @Tags Workflow
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Param verification body VerifyRequest true "Verification decision"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is no longer completed"
// @Router /incidents/{id}/verify [post]
func (h *Handler) verifyIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "verifyIncident").WithField("id", id)

	var input VerifyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.workflowService.Verify(c.Request.Context(), id, models.Decision(input.Decision), input.Notes)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.queryService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get a list of incidents
// @Description Get a filtered, paginated list of incidents. The same read path serves all three role dashboards. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Filter by status" Enums(pending, assigned, completed, verified)
// @Param type query string false "Filter by incident type"
// @Param worker query string false "Filter by assigned worker"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Unknown status value"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	filter := models.IncidentFilter{}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if raw := c.Query("status"); raw != "" {
		status := models.IncidentStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("type"); raw != "" {
		filter.Type = &raw
	}
	if raw := c.Query("worker"); raw != "" {
		filter.Worker = &raw
	}

	incidents, err := h.queryService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get active tasks of a worker
// @Description List incidents currently assigned to the worker. Requires worker or admin API key.
// @Tags Workflow
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Worker ID"
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /workers/{id}/tasks [get]
func (h *Handler) listWorkerTasks(c *gin.Context) {
	workerID := c.Param("id")
	log := h.logger.WithField("method", "listWorkerTasks").WithField("worker_id", workerID)

	tasks, err := h.queryService.ListWorkerTasks(c.Request.Context(), workerID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(tasks))
}

// @Summary Get incident statistics
// @Description Get aggregate counts by status and type plus the resolution rate. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.queryService.GetStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
