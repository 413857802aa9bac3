package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/fade"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func receive(t *testing.T, ch <-chan []byte, timeout time.Duration) []byte {
	t.Helper()
	select {
	case data, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return data
	case <-time.After(timeout):
		t.Fatal("timeout waiting for value")
		return nil
	}
}

func TestWatcher_EmitsInitialValue(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	value := []byte("numbers: {fill-opacity: 0.5}")
	if err := client.Set(ctx, "style:base", value, 0).Err(); err != nil {
		t.Fatalf("failed to set initial value: %v", err)
	}

	ch, err := New(client, "style:base", WithChannel("style-updates")).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if got := receive(t, ch, 2*time.Second); string(got) != string(value) {
		t.Errorf("expected %q, got %q", value, got)
	}
}

func TestWatcher_EmitsOnAnnounce(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher := New(client, "style:base", WithChannel("style-updates"))
	if err := watcher.Announce(ctx, []byte("v1")); err != nil {
		t.Fatalf("Announce() error = %v", err)
	}

	ch, err := watcher.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if got := receive(t, ch, 2*time.Second); string(got) != "v1" {
		t.Fatalf("expected v1, got %q", got)
	}

	if err := watcher.Announce(ctx, []byte("v2")); err != nil {
		t.Fatalf("Announce() error = %v", err)
	}
	if got := receive(t, ch, 2*time.Second); string(got) != "v2" {
		t.Errorf("expected v2, got %q", got)
	}
}

func TestWatcher_MissingKeyWaitsForValue(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := New(client, "style:new", WithChannel("style-updates")).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := Publish(ctx, client, "style:new", "style-updates", []byte("first")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if got := receive(t, ch, 2*time.Second); string(got) != "first" {
		t.Errorf("expected first, got %q", got)
	}
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithCancel(context.Background())

	if err := client.Set(ctx, "style:base", "v1", 0).Err(); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	ch, err := New(client, "style:base", WithChannel("style-updates")).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	receive(t, ch, 2*time.Second)

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for close")
	}
}

func TestWatcher_AnnounceRequiresChannel(t *testing.T) {
	client := setupRedis(t)
	err := New(client, "style:base").Announce(context.Background(), []byte("x"))
	if !errors.Is(err, ErrNoChannel) {
		t.Errorf("expected ErrNoChannel, got %v", err)
	}
}

func TestWatcher_Subscription(t *testing.T) {
	tests := []struct {
		name string
		w    *Watcher
		want string
	}{
		{"keyspace", New(nil, "style"), "__keyspace@0__:style"},
		{"keyspace db", New(nil, "style", WithDB(3)), "__keyspace@3__:style"},
		{"channel", New(nil, "style", WithChannel("updates")), "updates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.subscription(); got != tt.want {
				t.Errorf("subscription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWatcher_Relevant(t *testing.T) {
	keyspace := New(nil, "style")
	if !keyspace.relevant("set") || keyspace.relevant("del") || keyspace.relevant("expire") {
		t.Error("keyspace watcher should only react to writes")
	}
	if !New(nil, "style", WithChannel("updates")).relevant("anything") {
		t.Error("channel watcher should react to every message")
	}
}

func TestWatcher_FeedsStyle(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher := New(client, "style:base", WithChannel("style-updates"))
	if err := watcher.Announce(ctx, []byte("colors: {fill-color: \"#ff0000\"}")); err != nil {
		t.Fatalf("Announce() error = %v", err)
	}

	style := fade.NewStyle()
	capacitor := fade.WatchStyle(watcher, style, fade.WithDebounce(10*time.Millisecond))
	if err := capacitor.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := watcher.Announce(ctx, []byte("colors: {fill-color: \"#0000ff\"}")); err != nil {
		t.Fatalf("Announce() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c, _ := style.Colors.Calculate("fill-color", fade.Globals{}, nil); c.B == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timeout waiting for announced style")
}
