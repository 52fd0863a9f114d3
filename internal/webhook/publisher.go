package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/civic_resolve/internal/models"
)

const (
	webhookQueueKey = "webhook_events"
)

// События жизненного цикла инцидента
const (
	EventIncidentCreated   = "incident.created"
	EventIncidentAssigned  = "incident.assigned"
	EventIncidentCompleted = "incident.completed"
	EventIncidentVerified  = "incident.verified"
	EventIncidentReopened  = "incident.reopened"
)

// WebhookEvent - событие перехода инцидента для внешних подписчиков.
// EventID уникален для каждой публикации, получатель может дедуплицировать по нему.
type WebhookEvent struct {
	EventID    uuid.UUID              `json:"event_id"`
	Event      string                 `json:"event"`
	IncidentID int64                  `json:"incident_id"`
	Status     models.IncidentStatus  `json:"status"`
	Worker     string                 `json:"worker,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Incident   *models.Incident       `json:"incident,omitempty"`
}

// NewLifecycleEvent собирает событие по текущему состоянию инцидента
func NewLifecycleEvent(event string, incident *models.Incident) WebhookEvent {
	e := WebhookEvent{
		EventID:    uuid.New(),
		Event:      event,
		IncidentID: incident.ID,
		Status:     incident.Status,
		Timestamp:  time.Now().UTC(),
		Incident:   incident,
	}
	if incident.AssignedWorker != nil {
		e.Worker = *incident.AssignedWorker
	}
	return e
}

// WebhookPublisher - интерфейс для публикации событий жизненного цикла
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher поверх очереди в Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish кладет событие в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в левую часть списка, воркер снимает с правой
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
