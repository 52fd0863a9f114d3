package models

import (
	"time"
)

// IncidentStatus - статус инцидента в жизненном цикле
type IncidentStatus string

const (
	StatusPending   IncidentStatus = "pending"
	StatusAssigned  IncidentStatus = "assigned"
	StatusCompleted IncidentStatus = "completed"
	StatusVerified  IncidentStatus = "verified"
)

// Valid проверяет, что статус входит в закрытое множество состояний
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusCompleted, StatusVerified:
		return true
	}
	return false
}

// Incident представляет зарегистрированную городскую проблему.
// Статус меняется только через compare-and-transition в хранилище.
type Incident struct {
	ID                int64          `json:"id"`
	Type              string         `json:"type"`
	Latitude          float64        `json:"latitude"`
	Longitude         float64        `json:"longitude"`
	Address           string         `json:"address"`
	Status            IncidentStatus `json:"status"`
	AssignedWorker    *string        `json:"assigned_worker,omitempty"`
	OriginalImage     string         `json:"original_image"`
	ResolvedImage     *string        `json:"resolved_image,omitempty"`
	VerificationNotes *string        `json:"verification_notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	LastTransitionAt  time.Time      `json:"last_transition_at"`
}

// TransitionPatch описывает единичную мутацию записи для compare-and-transition.
// Поля с флагом Set* применяются атомарно вместе со сменой статуса;
// nil-значение при выставленном флаге очищает колонку.
type TransitionPatch struct {
	Status      IncidentStatus
	SetWorker   bool
	Worker      *string
	SetResolved bool
	Resolved    *string
	SetNotes    bool
	Notes       *string
}

// IncidentFilter - параметры выборки инцидентов
type IncidentFilter struct {
	Status   *IncidentStatus
	Type     *string
	Worker   *string
	Page     int
	PageSize int
}

// IncidentStats - агрегаты для дашбордов всех трех ролей
type IncidentStats struct {
	Total          int                    `json:"total"`
	ByStatus       map[IncidentStatus]int `json:"by_status"`
	ByType         map[string]int         `json:"by_type"`
	ResolutionRate float64                `json:"resolution_rate"`
}
