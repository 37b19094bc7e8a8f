package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/Pokemonkey_Go/internal/config"
	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/metrics"
	"github.com/osse101/Pokemonkey_Go/internal/notify"
)

// InitializeEventSystem creates the event bus and the resilient publisher
// that retries failed deliveries and writes give-ups to a dead-letter file.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(eventBus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, publisher, nil
}

// RegisterEventHandlers subscribes the metrics collector and, when a webhook
// is configured, the Discord notifier. executor may be nil to build a real
// Discord session.
func RegisterEventHandlers(cfg *config.Config, bus event.Bus, executor notify.WebhookExecutor) error {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if !cfg.DiscordEnabled() {
		slog.Info(LogMsgDiscordNotifierDisabled)
		return nil
	}

	if executor == nil {
		dg, err := notify.NewDiscordSession()
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSession, err)
		}
		executor = dg
	}
	notify.NewDiscordNotifier(executor, cfg.DiscordWebhookID, cfg.DiscordWebhookToken).Register(bus)
	slog.Info(LogMsgDiscordNotifierRegistered, "webhook_id", cfg.DiscordWebhookID)
	return nil
}
