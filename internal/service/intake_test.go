package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/civic_resolve/internal/config"
	"github.com/shenikar/civic_resolve/internal/models"
	"github.com/shenikar/civic_resolve/internal/service/mocks"
	"github.com/shenikar/civic_resolve/internal/webhook"
	webhook_mocks "github.com/shenikar/civic_resolve/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIntakeService — вспомогательная функция для создания сервиса приема с моками.
func newTestIntakeService(t *testing.T) (IntakeService, *mocks.MockIncidentStore, *webhook_mocks.MockWebhookPublisher) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockIncidentStore(ctrl)
	publisherMock := webhook_mocks.NewMockWebhookPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		ConfidenceThreshold: 0.5,
	}

	return NewIntakeService(storeMock, logger, cfg, publisherMock), storeMock, publisherMock
}

func TestSubmit_BestDetectionClearsThreshold(t *testing.T) {
	// Подготовка
	service, storeMock, publisherMock := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Detections: []models.Detection{
			{Class: "garbage", Confidence: 0.42},
			{Class: "pothole", Confidence: 0.91},
		},
		Latitude:  23.2599,
		Longitude: 77.4126,
		Address:   "MP Nagar, Bhopal",
		Image:     "pothole_8c1f.jpg",
	}

	// Ожидания: создается ровно один инцидент класса с максимальной уверенностью
	storeMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			assert.Equal(t, "pothole", inc.Type)
			assert.Equal(t, models.StatusPending, inc.Status)
			assert.Equal(t, "pothole_8c1f.jpg", inc.OriginalImage)
			// Симулируем, что БД присвоила ID
			inc.ID = 1
			return nil
		}).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event webhook.WebhookEvent) {
			assert.Equal(t, webhook.EventIncidentCreated, event.Event)
			assert.Equal(t, int64(1), event.IncidentID)
		}).Return(nil).Times(1)

	// Действие
	incident, err := service.Submit(ctx, sub)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, incident)
	assert.Equal(t, "pothole", incident.Type)
	assert.Equal(t, models.StatusPending, incident.Status)
}

func TestSubmit_NoDetectionClearsThreshold(t *testing.T) {
	// Подготовка
	service, storeMock, publisherMock := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Detections: []models.Detection{
			{Class: "garbage", Confidence: 0.31},
			{Class: "pothole", Confidence: 0.49},
		},
		Latitude:  23.2599,
		Longitude: 77.4126,
		Image:     "street_cam_0042.jpg",
	}

	// Ожидания: хранилище и издатель не вызываются
	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := service.Submit(ctx, sub)

	// Проверки: "аномалии нет" - вариант результата, а не ошибка
	require.NoError(t, err)
	assert.Nil(t, incident)
}

func TestSubmit_ConfidenceEqualToThresholdIsNotEnough(t *testing.T) {
	// Подготовка: порог должен быть превышен строго
	service, storeMock, _ := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Detections: []models.Detection{{Class: "pothole", Confidence: 0.5}},
		Latitude:   23.2599,
		Longitude:  77.4126,
		Image:      "street_cam_0043.jpg",
	}

	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := service.Submit(ctx, sub)

	// Проверки
	require.NoError(t, err)
	assert.Nil(t, incident)
}

func TestSubmit_ManualCitizenReport(t *testing.T) {
	// Подготовка: ручной путь с явным типом минует политику порога
	service, storeMock, publisherMock := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Type:      "garbage",
		Latitude:  23.2311,
		Longitude: 77.4343,
		Address:   "Arera Colony",
		Image:     "garbage_77a0.jpg",
	}

	// Ожидания
	storeMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.Incident) error {
			assert.Equal(t, "garbage", inc.Type)
			inc.ID = 7
			return nil
		}).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	incident, err := service.Submit(ctx, sub)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, incident)
	assert.Equal(t, int64(7), incident.ID)
}

func TestSubmit_ConfidenceOutOfRange(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Detections: []models.Detection{{Class: "pothole", Confidence: 1.3}},
		Latitude:   23.2599,
		Longitude:  77.4126,
		Image:      "street_cam_0044.jpg",
	}

	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := service.Submit(ctx, sub)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, incident)
}

func TestSubmit_MissingEvidenceImage(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Type:      "pothole",
		Latitude:  23.2599,
		Longitude: 77.4126,
	}

	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.Submit(ctx, sub)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmit_LocationOutOfRange(t *testing.T) {
	// Подготовка
	service, storeMock, _ := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Type:      "pothole",
		Latitude:  123.0,
		Longitude: 77.4126,
		Image:     "pothole_9d2e.jpg",
	}

	storeMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := service.Submit(ctx, sub)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmit_StoreFailure(t *testing.T) {
	// Подготовка: отказ хранилища не оставляет частичного инцидента,
	// событие создания не публикуется
	service, storeMock, publisherMock := newTestIntakeService(t)
	ctx := context.Background()
	sub := models.Submission{
		Type:      "pothole",
		Latitude:  23.2599,
		Longitude: 77.4126,
		Image:     "pothole_9d2e.jpg",
	}
	storeError := errors.Join(ErrUnavailable, errors.New("connection refused"))

	// Ожидания
	storeMock.EXPECT().Create(ctx, gomock.Any()).Return(storeError).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := service.Submit(ctx, sub)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, incident)
}
