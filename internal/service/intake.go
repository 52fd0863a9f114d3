package service

import (
	"context"
	"fmt"

	"github.com/shenikar/civic_resolve/internal/config"
	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/shenikar/civic_resolve/internal/webhook"
	"github.com/sirupsen/logrus"
)

// IntakeService определяет контракт приема заявок от детектора и граждан
type IntakeService interface {
	// Submit решает, открывать ли инцидент по заявке.
	// Возвращает (nil, nil), если ни один класс не прошел порог уверенности -
	// "аномалии нет" является вариантом результата, а не ошибкой.
	Submit(ctx context.Context, sub models.Submission) (*models.Incident, error)
}

type intakeService struct {
	store     IncidentStore
	logger    *logrus.Logger
	cfg       *config.Config
	publisher webhook.WebhookPublisher
}

func NewIntakeService(store IncidentStore, logger *logrus.Logger, cfg *config.Config, publisher webhook.WebhookPublisher) IntakeService {
	return &intakeService{
		store:     store,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
	}
}

// Submit принимает заявку {type|detections, location, image} и применяет политику порога
func (s *intakeService) Submit(ctx context.Context, sub models.Submission) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "intake",
		"method":  "Submit",
		"type":    sub.Type,
	})

	if err := validateSubmission(sub); err != nil {
		log.WithError(err).Warn("Submission rejected by validation")
		return nil, err
	}

	incidentType := sub.Type
	if incidentType == "" {
		// Автоматический путь: берем класс с максимальной уверенностью
		// и сравниваем с порогом. Дедупликация близких заявок не выполняется.
		best := sub.BestDetection()
		if best == nil || best.Confidence <= s.cfg.ConfidenceThreshold {
			log.WithField("threshold", s.cfg.ConfidenceThreshold).Info("No detection cleared the confidence threshold")
			return nil, nil
		}
		log = log.WithFields(logrus.Fields{"class": best.Class, "confidence": best.Confidence})
		incidentType = best.Class
	}

	incident := &models.Incident{
		Type:          incidentType,
		Latitude:      sub.Latitude,
		Longitude:     sub.Longitude,
		Address:       sub.Address,
		Status:        models.StatusPending,
		OriginalImage: sub.Image,
	}

	if err := s.store.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in store")
		return nil, fmt.Errorf("intake: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident created")

	if err := s.publisher.Publish(ctx, webhook.NewLifecycleEvent(webhook.EventIncidentCreated, incident)); err != nil {
		// Доставка событий не входит в атомарный шаг создания
		log.WithError(err).Warn("Failed to publish incident.created event")
	}

	return incident, nil
}

func validateSubmission(sub models.Submission) error {
	if sub.Image == "" {
		return fmt.Errorf("original evidence image is required: %w", ErrValidation)
	}
	if sub.Type == "" && len(sub.Detections) == 0 {
		return fmt.Errorf("either type or detections must be provided: %w", ErrValidation)
	}
	if sub.Latitude < -90 || sub.Latitude > 90 {
		return fmt.Errorf("latitude %.6f out of range: %w", sub.Latitude, ErrValidation)
	}
	if sub.Longitude < -180 || sub.Longitude > 180 {
		return fmt.Errorf("longitude %.6f out of range: %w", sub.Longitude, ErrValidation)
	}
	for _, d := range sub.Detections {
		if d.Confidence < 0 || d.Confidence > 1 {
			return fmt.Errorf("confidence %.3f out of range [0,1]: %w", d.Confidence, ErrValidation)
		}
		if d.Class == "" {
			return fmt.Errorf("detection class must not be empty: %w", ErrValidation)
		}
	}
	return nil
}
