package fade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for change processing.
const DefaultDebounce = 100 * time.Millisecond

// Validator is implemented by documents that can check themselves.
type Validator interface {
	Validate() error
}

// Capacitor watches a source of style documents, decodes and validates each
// change, and hands it to an apply function. A rejected document leaves the
// previously applied one in effect.
type Capacitor[T Validator] struct {
	tracker[T]

	watcher  Watcher
	apply    func(context.Context, T) error
	debounce time.Duration
	syncMode bool
	codec    Codec

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// capacitorConfig holds configuration options for a Capacitor.
type capacitorConfig struct {
	debounce     time.Duration
	syncMode     bool
	clock        clockz.Clock
	codec        Codec
	metrics      MetricsProvider
	errorHistory int
}

func defaultCapacitorConfig() *capacitorConfig {
	return &capacitorConfig{
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    AutoCodec{},
		metrics:  NoOpMetricsProvider{},
	}
}

// CapacitorOption configures a Capacitor or CompositeCapacitor.
type CapacitorOption func(*capacitorConfig)

// WithDebounce sets the debounce duration for change processing.
// Changes arriving within this duration are coalesced into a single update.
func WithDebounce(d time.Duration) CapacitorOption {
	return func(c *capacitorConfig) {
		c.debounce = d
	}
}

// WithSyncMode enables synchronous processing for testing.
// In sync mode, changes are processed only through Process, without
// debouncing or goroutines.
func WithSyncMode() CapacitorOption {
	return func(c *capacitorConfig) {
		c.syncMode = true
	}
}

// WithDebounceClock sets the clock driving debounce timers.
// Use this with clockz.FakeClock for deterministic debounce testing.
func WithDebounceClock(clock clockz.Clock) CapacitorOption {
	return func(c *capacitorConfig) {
		c.clock = clock
	}
}

// WithCodec sets the document codec. The default detects JSON or YAML per
// payload.
func WithCodec(codec Codec) CapacitorOption {
	return func(c *capacitorConfig) {
		c.codec = codec
	}
}

// WithMetrics sets the metrics provider.
func WithMetrics(m MetricsProvider) CapacitorOption {
	return func(c *capacitorConfig) {
		c.metrics = m
	}
}

// WithErrorHistory keeps the last n processing errors, available through
// ErrorHistory.
func WithErrorHistory(n int) CapacitorOption {
	return func(c *capacitorConfig) {
		c.errorHistory = n
	}
}

// NewCapacitor creates a Capacitor for a single source.
//
// Example:
//
//	style := fade.NewStyle()
//	capacitor := fade.NewCapacitor[fade.Document](
//	    fade.NewFileWatcher("style.yaml"),
//	    style.Apply,
//	)
func NewCapacitor[T Validator](
	watcher Watcher,
	apply func(context.Context, T) error,
	opts ...CapacitorOption,
) *Capacitor[T] {
	cfg := defaultCapacitorConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Capacitor[T]{
		watcher:  watcher,
		apply:    apply,
		debounce: cfg.debounce,
		syncMode: cfg.syncMode,
		codec:    cfg.codec,
	}
	c.init(cfg)

	return c
}

// WatchStyle creates a Capacitor that applies every valid document from
// watcher to style.
func WatchStyle(watcher Watcher, style *Style, opts ...CapacitorOption) *Capacitor[Document] {
	return NewCapacitor[Document](watcher, style.Apply, opts...)
}

// Start begins watching. It blocks until the first document is processed
// (success or failure), then keeps watching asynchronously.
//
// If the first document fails, Start returns the error but continues
// watching for valid updates. In sync mode, use Process to handle
// subsequent documents. Start can only be called once.
func (c *Capacitor[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return fmt.Errorf("capacitor already started")
	}
	c.started = true
	c.mu.Unlock()

	capitan.Emit(ctx, CapacitorStarted,
		KeyDebounce.Field(c.debounce),
		KeyCodec.Field(c.codec.ContentType()),
	)

	changes, err := c.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial value")
		}
		c.received(ctx)
		initialErr = c.process(ctx, raw)
	}

	if c.syncMode {
		c.changes = changes
		return initialErr
	}

	go c.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next pending document. It is only
// available in sync mode and reports false when nothing was pending.
func (c *Capacitor[T]) Process(ctx context.Context) bool {
	if !c.syncMode {
		return false
	}

	select {
	case raw, ok := <-c.changes:
		if !ok {
			return false
		}
		c.received(ctx)
		_ = c.process(ctx, raw) //nolint:errcheck // Errors stored via fail
		return true
	default:
		return false
	}
}

// process decodes, validates, and applies a single document.
func (c *Capacitor[T]) process(ctx context.Context, raw []byte) error {
	began := c.clock.Now()

	var doc T
	if err := c.codec.Unmarshal(raw, &doc); err != nil {
		c.fail(ctx, stageDecode, began, err)
		return fmt.Errorf("decode failed: %w", err)
	}

	if err := doc.Validate(); err != nil {
		c.fail(ctx, stageValidate, began, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := c.apply(ctx, doc); err != nil {
		c.fail(ctx, stageApply, began, err)
		return fmt.Errorf("apply failed: %w", err)
	}

	c.succeed(ctx, doc, began)
	return nil
}

// watch processes changes from the watcher channel with debouncing.
func (c *Capacitor[T]) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		capitan.Emit(ctx, CapacitorStopped,
			KeyState.Field(c.State().String()),
		)
	}()

	var pending []byte
	debounce(ctx, c.clock, c.debounce, changes,
		func(raw []byte) {
			c.received(ctx)
			pending = raw
		},
		func() {
			_ = c.process(ctx, pending) //nolint:errcheck // Errors stored via fail
		},
	)
}
