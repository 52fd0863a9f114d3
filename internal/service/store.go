package service

import (
	"context"

	"github.com/shenikar/civic_resolve/internal/models"
)

// IncidentStore определяет контракт хранилища инцидентов.
// CompareAndTransition - единственный мутатор после создания записи:
// каждый компонент выражает изменение как "применить, только если статус
// все еще тот, который я наблюдал".
type IncidentStore interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id int64) (*models.Incident, error)
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	CompareAndTransition(ctx context.Context, id int64, expected models.IncidentStatus, patch models.TransitionPatch) (*models.Incident, error)
	CountByStatus(ctx context.Context) (map[models.IncidentStatus]int, error)
	CountByType(ctx context.Context) (map[string]int, error)

	GetIncidentFromCache(ctx context.Context, id int64) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id int64) error
}
