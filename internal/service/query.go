package service

import (
	"context"
	"fmt"

	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/sirupsen/logrus"
)

// QueryService - read-сторона движка, никогда не мутирует хранилище.
// Один и тот же путь чтения обслуживает дашборды всех трех ролей.
type QueryService interface {
	GetIncident(ctx context.Context, id int64) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	ListWorkerTasks(ctx context.Context, workerID string) ([]*models.Incident, error)
	GetStats(ctx context.Context) (*models.IncidentStats, error)
}

type queryService struct {
	store  IncidentStore
	logger *logrus.Logger
}

func NewQueryService(store IncidentStore, logger *logrus.Logger) QueryService {
	return &queryService{
		store:  store,
		logger: logger,
	}
}

// GetIncident возвращает инцидент по ID, сначала проверяя кеш
func (s *queryService) GetIncident(ctx context.Context, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "query",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := s.store.GetIncidentFromCache(ctx, id)
	if err != nil {
		// Отказ кеша не фатален, идем в хранилище
		log.WithError(err).Warn("Incident cache lookup failed")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from store")
		return nil, err
	}

	if err := s.store.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает отфильтрованный список с пагинацией
func (s *queryService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", *filter.Status, ErrValidation)
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "query",
		"method":    "ListIncidents",
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})

	incidents, err := s.store.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from store")
		return nil, fmt.Errorf("query: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Debug("Incidents listed")
	return incidents, nil
}

// ListWorkerTasks возвращает активные задачи работника:
// status == assigned и assigned_worker == workerID
func (s *queryService) ListWorkerTasks(ctx context.Context, workerID string) ([]*models.Incident, error) {
	if workerID == "" {
		return nil, fmt.Errorf("worker id is required: %w", ErrValidation)
	}

	status := models.StatusAssigned
	return s.ListIncidents(ctx, models.IncidentFilter{
		Status: &status,
		Worker: &workerID,
	})
}

// GetStats собирает агрегаты: количество по статусам и типам,
// доля решенных (completed+verified) от общего числа
func (s *queryService) GetStats(ctx context.Context) (*models.IncidentStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "query",
		"method":  "GetStats",
	})

	byStatus, err := s.store.CountByStatus(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count incidents by status")
		return nil, fmt.Errorf("query: could not get status counts: %w", err)
	}

	byType, err := s.store.CountByType(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count incidents by type")
		return nil, fmt.Errorf("query: could not get type counts: %w", err)
	}

	stats := &models.IncidentStats{
		ByStatus: byStatus,
		ByType:   byType,
	}
	for _, n := range byStatus {
		stats.Total += n
	}
	if stats.Total > 0 {
		resolved := byStatus[models.StatusCompleted] + byStatus[models.StatusVerified]
		stats.ResolutionRate = float64(resolved) / float64(stats.Total)
	}
	return stats, nil
}
