package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client
}

type eventRecorder struct {
	mu     sync.Mutex
	events []SettingChangeEvent
}

func (r *eventRecorder) handle(_ context.Context, event SettingChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.events))
	for _, e := range r.events {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestRedisSettingEventBus_CrossInstanceDelivery(t *testing.T) {
	require.NoError(t, biztime.Init("UTC"))
	log := logger.NewLogger()
	client := setupTestRedis(t)

	publisher := NewRedisSettingEventBus(client, log)
	subscriberBus := NewRedisSettingEventBus(client, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	recorder := &eventRecorder{}
	go func() {
		_ = subscriberBus.Subscribe(ctx, recorder.handle)
	}()

	// Publish until the subscriber has caught one; pub/sub has no backlog,
	// so messages sent before the subscription completes are lost.
	require.Eventually(t, func() bool {
		_ = publisher.PublishSettingChange(ctx, "platform_fee_percentage", "usr_abc123")
		return len(recorder.keys()) > 0
	}, 5*time.Second, 50*time.Millisecond)

	keys := recorder.keys()
	assert.Equal(t, "platform_fee_percentage", keys[0])
}

func TestRedisSettingEventBus_SkipsOwnEvents(t *testing.T) {
	require.NoError(t, biztime.Init("UTC"))
	log := logger.NewLogger()
	client := setupTestRedis(t)

	bus := NewRedisSettingEventBus(client, log)
	other := NewRedisSettingEventBus(client, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	recorder := &eventRecorder{}
	go func() {
		_ = bus.Subscribe(ctx, recorder.handle)
	}()

	// The bus's own writes must be filtered; a foreign instance's write with
	// the same key must arrive. Publishing both each tick proves the
	// subscription is live when the foreign event lands.
	require.Eventually(t, func() bool {
		_ = bus.PublishSettingChange(ctx, "from_self", "usr_abc123")
		_ = other.PublishSettingChange(ctx, "from_other", "usr_def456")
		return len(recorder.keys()) > 0
	}, 5*time.Second, 50*time.Millisecond)

	for _, key := range recorder.keys() {
		assert.Equal(t, "from_other", key, "events published by the same instance must be filtered out")
	}
}
