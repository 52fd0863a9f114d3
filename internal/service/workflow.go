package service

import (
	"context"
	"fmt"

	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/shenikar/civic_resolve/internal/webhook"
	"github.com/sirupsen/logrus"
)

// WorkflowService определяет контракт переходов жизненного цикла:
// диспетчеризация, фиксация выполнения и аудит.
// Конкурентные вызовы безопасны: каждый переход - один атомарный
// compare-and-transition, проигравший получает ErrConflict.
type WorkflowService interface {
	Assign(ctx context.Context, incidentID int64, workerID string) (*models.Incident, error)
	Complete(ctx context.Context, incidentID int64, workerID string, resolvedImage string) (*models.Incident, error)
	Verify(ctx context.Context, incidentID int64, decision models.Decision, notes string) (*models.Incident, error)
}

type workflowService struct {
	store     IncidentStore
	logger    *logrus.Logger
	publisher webhook.WebhookPublisher
}

func NewWorkflowService(store IncidentStore, logger *logrus.Logger, publisher webhook.WebhookPublisher) WorkflowService {
	return &workflowService{
		store:     store,
		logger:    logger,
		publisher: publisher,
	}
}

// Assign назначает ожидающий инцидент на работника: pending -> assigned.
// При гонке двух администраторов побеждает ровно один, второй получает ErrConflict.
func (s *workflowService) Assign(ctx context.Context, incidentID int64, workerID string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "workflow",
		"method":      "Assign",
		"incident_id": incidentID,
		"worker_id":   workerID,
	})

	if workerID == "" {
		return nil, fmt.Errorf("worker id is required: %w", ErrValidation)
	}

	patch := models.TransitionPatch{
		Status:    models.StatusAssigned,
		SetWorker: true,
		Worker:    &workerID,
	}
	incident, err := s.store.CompareAndTransition(ctx, incidentID, models.StatusPending, patch)
	if err != nil {
		log.WithError(err).Warn("Failed to assign incident")
		return nil, err
	}

	s.afterTransition(ctx, log, webhook.EventIncidentAssigned, incident)
	log.Info("Incident assigned")
	return incident, nil
}

// Complete фиксирует выполнение работ: assigned -> completed.
// Чужую задачу завершить нельзя - несовпадение работника дает ErrForbidden
// независимо от текущего статуса инцидента.
func (s *workflowService) Complete(ctx context.Context, incidentID int64, workerID string, resolvedImage string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "workflow",
		"method":      "Complete",
		"incident_id": incidentID,
		"worker_id":   workerID,
	})

	if workerID == "" {
		return nil, fmt.Errorf("worker id is required: %w", ErrValidation)
	}
	if resolvedImage == "" {
		return nil, fmt.Errorf("resolved evidence image is required: %w", ErrValidation)
	}

	current, err := s.store.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Failed to load incident for completion")
		return nil, err
	}
	if current.AssignedWorker == nil || *current.AssignedWorker != workerID {
		log.Warn("Worker attempted to complete a task assigned to someone else")
		return nil, fmt.Errorf("incident %d is not assigned to worker %s: %w", incidentID, workerID, ErrForbidden)
	}

	patch := models.TransitionPatch{
		Status:      models.StatusCompleted,
		SetResolved: true,
		Resolved:    &resolvedImage,
	}
	incident, err := s.store.CompareAndTransition(ctx, incidentID, models.StatusAssigned, patch)
	if err != nil {
		log.WithError(err).Warn("Failed to complete incident")
		return nil, err
	}

	s.afterTransition(ctx, log, webhook.EventIncidentCompleted, incident)
	log.Info("Incident completed, awaiting audit")
	return incident, nil
}

// Verify применяет решение аудитора к завершенному инциденту.
// approve: completed -> verified, терминальное состояние.
// reject: completed -> pending, evidence о решении и назначенный работник
// очищаются - переоткрытый инцидент неотличим от свежего и может быть
// назначен заново, в том числе другому работнику.
func (s *workflowService) Verify(ctx context.Context, incidentID int64, decision models.Decision, notes string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "workflow",
		"method":      "Verify",
		"incident_id": incidentID,
		"decision":    decision,
	})

	var patch models.TransitionPatch
	var event string

	switch decision {
	case models.DecisionApprove:
		patch = models.TransitionPatch{Status: models.StatusVerified}
		if notes != "" {
			patch.SetNotes = true
			patch.Notes = &notes
		}
		event = webhook.EventIncidentVerified
	case models.DecisionReject:
		rejected := "REJECTED: " + notes
		patch = models.TransitionPatch{
			Status:      models.StatusPending,
			SetWorker:   true,
			Worker:      nil,
			SetResolved: true,
			Resolved:    nil,
			SetNotes:    true,
			Notes:       &rejected,
		}
		event = webhook.EventIncidentReopened
	default:
		return nil, fmt.Errorf("unknown decision %q: %w", decision, ErrValidation)
	}

	incident, err := s.store.CompareAndTransition(ctx, incidentID, models.StatusCompleted, patch)
	if err != nil {
		log.WithError(err).Warn("Failed to verify incident")
		return nil, err
	}

	s.afterTransition(ctx, log, event, incident)
	log.Info("Verification decision applied")
	return incident, nil
}

// afterTransition инвалидирует кеш записи и публикует событие перехода.
// Оба шага вне атомарной мутации: их отказ логируется, но переход уже состоялся.
func (s *workflowService) afterTransition(ctx context.Context, log *logrus.Entry, event string, incident *models.Incident) {
	if err := s.store.InvalidateIncidentCache(ctx, incident.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	if err := s.publisher.Publish(ctx, webhook.NewLifecycleEvent(event, incident)); err != nil {
		log.WithError(err).Warn("Failed to publish lifecycle event")
	}
}
