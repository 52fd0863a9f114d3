package v1

import (
	"time"

	"github.com/shenikar/civic_resolve/internal/models"
)

// DetectionDTO - один класс-кандидат детектора
// @Description Один класс-кандидат детектора с уверенностью
type DetectionDTO struct {
	Class      string  `json:"class" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// CreateIncidentRequest DTO для приема заявки.
// Либо type задан явно (ручной путь гражданина), либо detections
// содержит результат инференса камеры.
// @Description DTO для приема заявки от камеры или гражданина
type CreateIncidentRequest struct {
	Type       string         `json:"type,omitempty" validate:"omitempty,min=2,max=64"`
	Detections []DetectionDTO `json:"detections,omitempty" validate:"omitempty,dive"`
	Latitude   float64        `json:"latitude" validate:"required,latitude"`
	Longitude  float64        `json:"longitude" validate:"required,longitude"`
	Address    string         `json:"address,omitempty" validate:"omitempty,max=255"`
	Image      string         `json:"image" validate:"required,max=255"`
}

// AssignRequest DTO для назначения инцидента работнику
// @Description DTO для назначения инцидента работнику
type AssignRequest struct {
	WorkerID string `json:"worker_id" validate:"required,max=64"`
}

// CompleteRequest DTO для фиксации выполнения
// @Description DTO для фиксации выполнения с фото-подтверждением
type CompleteRequest struct {
	WorkerID      string `json:"worker_id" validate:"required,max=64"`
	ResolvedImage string `json:"resolved_image" validate:"required,max=255"`
}

// VerifyRequest DTO для решения аудитора
// @Description DTO для решения аудитора по завершенному инциденту
type VerifyRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                int64     `json:"id"`
	Type              string    `json:"type"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	Address           string    `json:"address,omitempty"`
	Status            string    `json:"status"`
	AssignedWorker    string    `json:"assigned_worker,omitempty"`
	OriginalImage     string    `json:"original_image"`
	ResolvedImage     string    `json:"resolved_image,omitempty"`
	VerificationNotes string    `json:"verification_notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	LastTransitionAt  time.Time `json:"last_transition_at"`
}

// NoAnomalyResponse DTO для заявки, не прошедшей порог уверенности
// @Description Ответ, когда ни один класс не прошел порог уверенности
type NoAnomalyResponse struct {
	Anomaly bool `json:"anomaly"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа с агрегатами по инцидентам
type StatsResponse struct {
	Total          int                           `json:"total"`
	ByStatus       map[models.IncidentStatus]int `json:"by_status"`
	ByType         map[string]int                `json:"by_type"`
	ResolutionRate float64                       `json:"resolution_rate"`
}
