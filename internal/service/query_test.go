package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/shenikar/civic_resolve/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestQueryService — вспомогательная функция для создания read-сервиса с моками.
func newTestQueryService(t *testing.T) (QueryService, *mocks.MockIncidentStore) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockIncidentStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return NewQueryService(storeMock, logger), storeMock
}

func TestGetIncident_CacheHit(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()
	cached := testIncident(1, models.StatusPending)

	// Ожидания: при попадании в кеш хранилище не трогаем
	storeMock.EXPECT().GetIncidentFromCache(ctx, int64(1)).Return(cached, nil).Times(1)
	storeMock.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := service.GetIncident(ctx, 1)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cached, incident)
}

func TestGetIncident_CacheMiss(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()
	stored := testIncident(1, models.StatusAssigned)

	// Ожидания: промах кеша, чтение из хранилища и обратная запись в кеш
	storeMock.EXPECT().GetIncidentFromCache(ctx, int64(1)).Return(nil, nil).Times(1)
	storeMock.EXPECT().GetByID(ctx, int64(1)).Return(stored, nil).Times(1)
	storeMock.EXPECT().SetIncidentCache(ctx, stored).Return(nil).Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, 1)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, stored, incident)
}

func TestGetIncident_CacheFailureFallsBackToStore(t *testing.T) {
	// Подготовка: отказ кеша не фатален, идем в хранилище
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()
	stored := testIncident(1, models.StatusPending)

	// Ожидания
	storeMock.EXPECT().
		GetIncidentFromCache(ctx, int64(1)).
		Return(nil, fmt.Errorf("redis: %w", ErrUnavailable)).Times(1)
	storeMock.EXPECT().GetByID(ctx, int64(1)).Return(stored, nil).Times(1)
	storeMock.EXPECT().SetIncidentCache(ctx, stored).Return(nil).Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, 1)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, stored, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()

	// Ожидания
	storeMock.EXPECT().GetIncidentFromCache(ctx, int64(404)).Return(nil, nil).Times(1)
	storeMock.EXPECT().
		GetByID(ctx, int64(404)).
		Return(nil, fmt.Errorf("incident 404: %w", ErrNotFound)).Times(1)
	storeMock.EXPECT().SetIncidentCache(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.GetIncident(ctx, 404)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListIncidents_DefaultsApplied(t *testing.T) {
	// Подготовка: нулевые page/pageSize заменяются значениями по умолчанию
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()

	// Ожидания
	storeMock.EXPECT().
		List(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
			assert.Equal(t, 1, filter.Page)
			assert.Equal(t, 20, filter.PageSize)
			return []*models.Incident{testIncident(1, models.StatusPending)}, nil
		}).Times(1)

	// Действие
	incidents, err := service.ListIncidents(ctx, models.IncidentFilter{})

	// Проверки
	require.NoError(t, err)
	assert.Len(t, incidents, 1)
}

func TestListIncidents_PageSizeCapped(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()

	// Ожидания
	storeMock.EXPECT().
		List(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
			assert.Equal(t, 20, filter.PageSize)
			return nil, nil
		}).Times(1)

	// Действие
	_, err := service.ListIncidents(ctx, models.IncidentFilter{Page: 2, PageSize: 500})

	// Проверки
	require.NoError(t, err)
}

func TestListIncidents_UnknownStatus(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()
	bad := models.IncidentStatus("in_progress")

	// Ожидания
	storeMock.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.ListIncidents(ctx, models.IncidentFilter{Status: &bad})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListWorkerTasks_FiltersByWorkerAndStatus(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()
	workerID := "worker_01"

	task := testIncident(3, models.StatusAssigned)
	task.AssignedWorker = &workerID

	// Ожидания: только назначенные задачи этого работника
	storeMock.EXPECT().
		List(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
			require.NotNil(t, filter.Status)
			assert.Equal(t, models.StatusAssigned, *filter.Status)
			require.NotNil(t, filter.Worker)
			assert.Equal(t, workerID, *filter.Worker)
			return []*models.Incident{task}, nil
		}).Times(1)

	// Действие
	tasks, err := service.ListWorkerTasks(ctx, workerID)

	// Проверки
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(3), tasks[0].ID)
}

func TestListWorkerTasks_EmptyWorker(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()

	// Ожидания
	storeMock.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.ListWorkerTasks(ctx, "")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetStats_Aggregates(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()

	// Ожидания
	storeMock.EXPECT().CountByStatus(ctx).Return(map[models.IncidentStatus]int{
		models.StatusPending:   4,
		models.StatusAssigned:  2,
		models.StatusCompleted: 1,
		models.StatusVerified:  3,
	}, nil).Times(1)
	storeMock.EXPECT().CountByType(ctx).Return(map[string]int{
		"pothole": 7,
		"garbage": 3,
	}, nil).Times(1)

	// Действие
	stats, err := service.GetStats(ctx)

	// Проверки: total складывается из статусов, доля решенных = (completed+verified)/total
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 7, stats.ByType["pothole"])
	assert.InDelta(t, 0.4, stats.ResolutionRate, 1e-9)
}

func TestGetStats_EmptyStore(t *testing.T) {
	// Подготовка
	service, storeMock := newTestQueryService(t)
	ctx := context.Background()

	// Ожидания
	storeMock.EXPECT().CountByStatus(ctx).Return(map[models.IncidentStatus]int{}, nil).Times(1)
	storeMock.EXPECT().CountByType(ctx).Return(map[string]int{}, nil).Times(1)

	// Действие
	stats, err := service.GetStats(ctx)

	// Проверки: деления на ноль нет
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, float64(0), stats.ResolutionRate)
}
