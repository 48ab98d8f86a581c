// Package cache provides the owner-keyed customer listing cache and
// the Redis Pub/Sub channel that keeps replicas from serving stale
// listings after a mutation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultInvalidationChannel is the Pub/Sub channel used when the
	// configuration does not name one.
	DefaultInvalidationChannel = "dashboard:listing:invalidate"

	defaultCloseTimeout = 5 * time.Second
)

// ListingUpdateMessage signals that an owner's cached listings are stale
type ListingUpdateMessage struct {
	OwnerID   uuid.UUID `json:"owner_id"`
	Entity    string    `json:"entity"`
	Timestamp int64     `json:"timestamp"`
}

// ListingInvalidator publishes and receives listing staleness signals.
// Mutation services publish after every applied write; each process
// subscribes and drops the owner's cached listings on receipt.
type ListingInvalidator interface {
	PublishInvalidation(ctx context.Context, ownerID uuid.UUID, entity string) error
	Subscribe(ctx context.Context, callback func(msg ListingUpdateMessage)) error
	Close() error
}

// RedisListingInvalidator implements ListingInvalidator using Redis Pub/Sub
type RedisListingInvalidator struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// RedisListingInvalidatorOption is a functional option for configuring the invalidator
type RedisListingInvalidatorOption func(*RedisListingInvalidator)

// WithInvalidatorChannel sets the Pub/Sub channel name
func WithInvalidatorChannel(channel string) RedisListingInvalidatorOption {
	return func(i *RedisListingInvalidator) {
		if channel != "" {
			i.channel = channel
		}
	}
}

// WithInvalidatorLogger sets the logger for the invalidator
func WithInvalidatorLogger(logger *zap.Logger) RedisListingInvalidatorOption {
	return func(i *RedisListingInvalidator) {
		i.logger = logger
	}
}

// NewRedisListingInvalidator creates an invalidator with its own Redis client
func NewRedisListingInvalidator(addr, password string, db int, opts ...RedisListingInvalidatorOption) (*RedisListingInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	invalidator := &RedisListingInvalidator{
		client:     client,
		ownsClient: true,
		channel:    DefaultInvalidationChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(invalidator)
	}

	return invalidator, nil
}

// NewRedisListingInvalidatorWithClient creates an invalidator with an existing
// Redis client. The caller retains ownership of the client.
func NewRedisListingInvalidatorWithClient(client *redis.Client, opts ...RedisListingInvalidatorOption) *RedisListingInvalidator {
	invalidator := &RedisListingInvalidator{
		client:     client,
		ownsClient: false,
		channel:    DefaultInvalidationChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(invalidator)
	}

	return invalidator
}

// PublishInvalidation sends a staleness signal for one owner's listings
func (i *RedisListingInvalidator) PublishInvalidation(ctx context.Context, ownerID uuid.UUID, entity string) error {
	msg := ListingUpdateMessage{
		OwnerID:   ownerID,
		Entity:    entity,
		Timestamp: time.Now().UnixNano(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		i.logger.Error("Failed to marshal listing invalidation message",
			zap.String("entity", entity),
			zap.Error(err))
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := i.client.Publish(ctx, i.channel, data).Err(); err != nil {
		i.logger.Error("Failed to publish listing invalidation message",
			zap.String("channel", i.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	i.logger.Debug("Published listing invalidation message",
		zap.String("owner_id", ownerID.String()),
		zap.String("entity", entity),
		zap.String("channel", i.channel))

	return nil
}

// Subscribe starts listening for invalidation messages. The callback is
// invoked for each received message. Blocks until the context is done,
// so call it in a goroutine.
func (i *RedisListingInvalidator) Subscribe(ctx context.Context, callback func(msg ListingUpdateMessage)) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	i.isRunning = true
	i.mu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	i.mu.Lock()
	i.cancelFn = cancel
	i.mu.Unlock()

	pubsub := i.client.Subscribe(subCtx, i.channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(subCtx); err != nil {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	i.logger.Info("Subscribed to listing invalidation channel",
		zap.String("channel", i.channel))

	ch := pubsub.Channel()

	for {
		select {
		case <-subCtx.Done():
			i.logger.Info("Listing invalidation subscription stopped")
			i.mu.Lock()
			i.isRunning = false
			i.mu.Unlock()
			i.markDone()
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				i.logger.Warn("Listing invalidation channel closed")
				i.mu.Lock()
				i.isRunning = false
				i.mu.Unlock()
				i.markDone()
				return nil
			}

			var updateMsg ListingUpdateMessage
			if err := json.Unmarshal([]byte(msg.Payload), &updateMsg); err != nil {
				i.logger.Error("Failed to unmarshal listing invalidation message",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}

			go func(m ListingUpdateMessage) {
				defer func() {
					if r := recover(); r != nil {
						i.logger.Error("Panic in listing invalidation callback",
							zap.Any("panic", r))
					}
				}()
				callback(m)
			}(updateMsg)
		}
	}
}

func (i *RedisListingInvalidator) markDone() {
	i.doneOnce.Do(func() {
		close(i.doneCh)
	})
}

// Close releases any resources held by the invalidator
func (i *RedisListingInvalidator) Close() error {
	i.mu.Lock()
	cancelFn := i.cancelFn
	i.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-i.doneCh:
		case <-time.After(defaultCloseTimeout):
			i.logger.Warn("Timeout waiting for subscription to stop")
		}
	}

	if i.ownsClient {
		return i.client.Close()
	}
	return nil
}

// NoopListingInvalidator is used when the listing cache is disabled
type NoopListingInvalidator struct{}

// PublishInvalidation does nothing
func (NoopListingInvalidator) PublishInvalidation(context.Context, uuid.UUID, string) error {
	return nil
}

// Subscribe blocks until the context is done
func (NoopListingInvalidator) Subscribe(ctx context.Context, _ func(msg ListingUpdateMessage)) error {
	<-ctx.Done()
	return ctx.Err()
}

// Close does nothing
func (NoopListingInvalidator) Close() error { return nil }

// Ensure implementations satisfy ListingInvalidator
var (
	_ ListingInvalidator = (*RedisListingInvalidator)(nil)
	_ ListingInvalidator = NoopListingInvalidator{}
)
