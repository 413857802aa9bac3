// Package redis provides a fade.Watcher for style documents stored in a
// Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Watcher watches a Redis key holding a style document.
//
// By default it listens for keyspace notifications, which requires them to
// be enabled on the server:
//
//	CONFIG SET notify-keyspace-events KA
//
// With WithChannel it instead re-reads the key whenever anything is
// published on the named channel, for deployments where publishers
// announce style updates explicitly.
type Watcher struct {
	client  *redis.Client
	key     string
	channel string
	db      int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithChannel re-reads the key on every message published to channel
// instead of on keyspace notifications.
func WithChannel(channel string) Option {
	return func(w *Watcher) {
		w.channel = channel
	}
}

// WithDB sets the database number used for keyspace notifications.
func WithDB(db int) Option {
	return func(w *Watcher) {
		w.db = db
	}
}

// New creates a Watcher for the given Redis key.
func New(client *redis.Client, key string, opts ...Option) *Watcher {
	w := &Watcher{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch subscribes for changes and returns a channel that emits the key's
// value whenever it changes. The current value is emitted first when the
// key exists.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	pubsub := w.client.Subscribe(ctx, w.subscription())

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", w.subscription(), err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer pubsub.Close()

		emit := func() bool {
			val, err := w.client.Get(ctx, w.key).Bytes()
			if err != nil {
				// Missing key or transient error; wait for the next change.
				return ctx.Err() == nil
			}
			select {
			case out <- val:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if !w.relevant(msg.Payload) {
					continue
				}
				if !emit() {
					return
				}
			}
		}
	}()

	return out, nil
}

func (w *Watcher) subscription() string {
	if w.channel != "" {
		return w.channel
	}
	return fmt.Sprintf("__keyspace@%d__:%s", w.db, w.key)
}

// relevant reports whether a notification payload signals a new value.
func (w *Watcher) relevant(payload string) bool {
	if w.channel != "" {
		return true
	}
	switch payload {
	case "set", "mset", "setex", "psetex", "setnx", "setrange", "append", "rename_to":
		return true
	default:
		return false
	}
}

// Publish stores doc under key and announces it on channel, for use with
// Watchers configured through WithChannel.
func Publish(ctx context.Context, client *redis.Client, key, channel string, doc []byte) error {
	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, doc, 0)
		pipe.Publish(ctx, channel, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish style %s: %w", key, err)
	}
	return nil
}

// ErrNoChannel is returned by Announce for Watchers without a channel.
var ErrNoChannel = errors.New("watcher has no update channel")

// Announce stores doc under the watched key and announces it on the
// Watcher's channel.
func (w *Watcher) Announce(ctx context.Context, doc []byte) error {
	if w.channel == "" {
		return ErrNoChannel
	}
	return Publish(ctx, w.client, w.key, w.channel, doc)
}
