package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/civic_resolve/internal/config"
	"github.com/sirupsen/logrus"
)

// WebhookWorker - фоновый доставщик событий жизненного цикла из очереди Redis
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start запускает горутину обработки очереди, останавливается по отмене контекста
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping webhook worker.")
				return
			default:
				// BRPop с нулевым таймаутом ждет событие бесконечно
				result, err := w.redisClient.BRPop(ctx, 0, webhookQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop webhook event from Redis")
					time.Sleep(w.cfg.WebhookTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var event WebhookEvent
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal webhook event from Redis")
					continue
				}

				w.deliver(ctx, event, payload)
			}
		}
	}()
}

// deliver отправляет событие подписчику с экспоненциальной задержкой между попытками
func (w *WebhookWorker) deliver(ctx context.Context, event WebhookEvent, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"event":       event.Event,
		"event_id":    event.EventID,
		"incident_id": event.IncidentID,
	})
	log.Debug("Processing webhook event...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return
	}

	delay := w.cfg.WebhookBaseDelay
	for i := 0; i < w.cfg.WebhookMaxRetries; i++ {
		if w.attempt(ctx, rawPayload, log) {
			log.Info("Webhook delivered successfully.")
			return
		}
		log.Warnf("Webhook delivery failed. Retrying in %v. Retries left: %d", delay, w.cfg.WebhookMaxRetries-1-i)
		time.Sleep(delay)
		delay *= 2
	}

	log.Errorf("Failed to deliver webhook after %d retries.", w.cfg.WebhookMaxRetries)
}

func (w *WebhookWorker) attempt(ctx context.Context, rawPayload string, log *logrus.Entry) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		log.WithError(err).Error("Failed to create webhook request")
		return false
	}

	req.Header.Set("Content-Type", "application/json")
	// Подписываем тело, если задан секрет
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Failed to send webhook")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return true
	}
	log.Warnf("Webhook delivery failed with status code %d", resp.StatusCode)
	return false
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
