// Package pubsub distributes platform setting changes across API instances
// over Redis Pub/Sub so every instance drops its cached copy at once.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/goroutine"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

const settingChangeChannel = "akhmads:settings:change"

// SettingChangeEvent represents a platform setting write for cross-instance
// cache invalidation.
type SettingChangeEvent struct {
	Key        string `json:"key"`
	UpdatedBy  string `json:"updated_by,omitempty"`
	Timestamp  int64  `json:"timestamp"`
	InstanceID string `json:"instance_id,omitempty"` // Source instance ID to avoid self-delivery
}

// SettingEventHandler is a callback function for handling setting change events
type SettingEventHandler func(ctx context.Context, event SettingChangeEvent)

// SettingEventPublisher defines the interface for publishing setting change events
type SettingEventPublisher interface {
	PublishSettingChange(ctx context.Context, key, updatedBy string) error
}

// SettingEventSubscriber defines the interface for subscribing to setting change events
type SettingEventSubscriber interface {
	Subscribe(ctx context.Context, handler SettingEventHandler) error
}

// RedisSettingEventBus implements both SettingEventPublisher and
// SettingEventSubscriber using Redis Pub/Sub for cross-instance distribution.
// Events published by this instance are filtered out on receive; the local
// cache is already invalidated synchronously by the writer.
type RedisSettingEventBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

// NewRedisSettingEventBus creates a new Redis-based setting event bus
func NewRedisSettingEventBus(client *redis.Client, logger logger.Interface) *RedisSettingEventBus {
	return &RedisSettingEventBus{
		client:     client,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// PublishSettingChange publishes a setting change event
func (b *RedisSettingEventBus) PublishSettingChange(ctx context.Context, key, updatedBy string) error {
	event := SettingChangeEvent{
		Key:        key,
		UpdatedBy:  updatedBy,
		Timestamp:  biztime.NowUTC().Unix(),
		InstanceID: b.instanceID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, settingChangeChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish setting change event",
			"key", event.Key,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("setting change event published",
		"key", event.Key,
		"updated_by", event.UpdatedBy,
	)
	return nil
}

// Subscribe subscribes to setting change events and calls the handler for each
// event originating from another instance. Blocks until the context is
// cancelled, reconnecting with exponential backoff on connection loss.
func (b *RedisSettingEventBus) Subscribe(ctx context.Context, handler SettingEventHandler) error {
	return b.subscribeWithReconnect(ctx, settingChangeChannel, func(payload string) {
		var event SettingChangeEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			b.logger.Warnw("failed to unmarshal setting change event",
				"payload", payload,
				"error", err,
			)
			return
		}

		// Skip events from own instance; the writer invalidated locally already
		if event.InstanceID == b.instanceID {
			return
		}

		handler(context.Background(), event)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (b *RedisSettingEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("setting subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisSettingEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := b.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to setting change events",
		"channel", channel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("setting event subscriber stopped",
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("setting event channel closed")
				return nil
			}

			goroutine.SafeGo(b.logger, "setting-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
