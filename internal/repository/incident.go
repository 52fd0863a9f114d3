package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/shenikar/civic_resolve/internal/service"
)

const incidentColumns = `
	id,
	type,
	latitude,
	longitude,
	address,
	status,
	assigned_worker,
	original_image,
	resolved_image,
	verification_notes,
	created_at,
	last_transition_at`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentStore {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись об инциденте в бд.
// ID выдается последовательностью и никогда не переиспользуется.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (type, latitude, longitude, address, status, original_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, last_transition_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Latitude,
		incident.Longitude,
		incident.Address,
		incident.Status,
		incident.OriginalImage,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.LastTransitionAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w: %w", service.ErrUnavailable, err)
	}
	return nil
}

// GetByID возвращает инцидент по его ID
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w: %w", service.ErrUnavailable, err)
	}
	return incident, nil
}

// CompareAndTransition атомарно применяет мутацию, только если статус записи
// все еще равен ожидаемому. Предикат по статусу в WHERE - та самая
// оптимистическая проверка: проигравший конкурентный вызов не затрагивает
// ни одной строки и получает ErrConflict, частичных мутаций не бывает.
func (r *IncidentRepository) CompareAndTransition(ctx context.Context, id int64, expected models.IncidentStatus, patch models.TransitionPatch) (*models.Incident, error) {
	query := `
		UPDATE incidents SET
			status = $3,
			assigned_worker = CASE WHEN $4::boolean THEN $5::text ELSE assigned_worker END,
			resolved_image = CASE WHEN $6::boolean THEN $7::text ELSE resolved_image END,
			verification_notes = CASE WHEN $8::boolean THEN $9::text ELSE verification_notes END,
			last_transition_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + incidentColumns + `;
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query,
		id,
		expected,
		patch.Status,
		patch.SetWorker,
		patch.Worker,
		patch.SetResolved,
		patch.Resolved,
		patch.SetNotes,
		patch.Notes,
	))
	if err == nil {
		return incident, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to transition incident: %w: %w", service.ErrUnavailable, err)
	}

	// Ни одной строки: либо записи нет, либо статус уже ушел вперед
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("incident %d is no longer %q: %w", id, expected, service.ErrConflict)
}

// List возвращает инциденты по фильтру с пагинацией
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Worker != nil {
		args = append(args, *filter.Worker)
		conds = append(conds, fmt.Sprintf("assigned_worker = $%d", len(args)))
	}

	query := `SELECT ` + incidentColumns + ` FROM incidents`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	args = append(args, pageSize)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, (page-1)*pageSize)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w: %w", service.ErrUnavailable, err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w: %w", service.ErrUnavailable, err)
	}
	return incidents, nil
}

// CountByStatus возвращает количество инцидентов в каждом статусе
func (r *IncidentRepository) CountByStatus(ctx context.Context) (map[models.IncidentStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM incidents GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents by status: %w: %w", service.ErrUnavailable, err)
	}
	defer rows.Close()

	counts := make(map[models.IncidentStatus]int)
	for rows.Next() {
		var status models.IncidentStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error status count iteration: %w: %w", service.ErrUnavailable, err)
	}
	return counts, nil
}

// CountByType возвращает количество инцидентов каждого типа
func (r *IncidentRepository) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT type, COUNT(*) FROM incidents GROUP BY type;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents by type: %w: %w", service.ErrUnavailable, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var incidentType string
		var n int
		if err := rows.Scan(&incidentType, &n); err != nil {
			return nil, fmt.Errorf("failed to scan type count row: %w", err)
		}
		counts[incidentType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error type count iteration: %w: %w", service.ErrUnavailable, err)
	}
	return counts, nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id int64) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%d", id)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%d", incident.ID)
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id int64) error {
	key := fmt.Sprintf("incident:%d", id)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

// scanIncident читает одну строку incidents в модель
func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	err := row.Scan(
		&incident.ID,
		&incident.Type,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Address,
		&incident.Status,
		&incident.AssignedWorker,
		&incident.OriginalImage,
		&incident.ResolvedImage,
		&incident.VerificationNotes,
		&incident.CreatedAt,
		&incident.LastTransitionAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}
