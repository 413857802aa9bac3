package fade

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
)

// SourceError is an error from one source of a CompositeCapacitor.
type SourceError struct {
	Index int
	Error error
}

// Reducer merges the latest document of every source, in source order, into
// the document to apply.
type Reducer[T any] func(ctx context.Context, docs []T) (T, error)

// CompositeCapacitor watches several sources, decodes and validates each,
// merges them with a reducer, and applies the result. Use it to layer
// theme or user overrides on top of a base style.
type CompositeCapacitor[T Validator] struct {
	tracker[T]

	sources  []Watcher
	reducer  Reducer[T]
	apply    func(context.Context, T) error
	debounce time.Duration
	syncMode bool
	codec    Codec

	sourceErrors atomic.Pointer[[]SourceError]

	mu      sync.Mutex
	started bool

	// Owned by the goroutine that processes: the caller in sync mode,
	// the debounce loop otherwise.
	sourceChans []<-chan []byte
	latest      [][]byte
}

// sourceUpdate is a payload received from the source at index.
type sourceUpdate struct {
	index int
	raw   []byte
}

// Compose creates a CompositeCapacitor over sources.
func Compose[T Validator](
	reducer Reducer[T],
	apply func(context.Context, T) error,
	sources []Watcher,
	opts ...CapacitorOption,
) *CompositeCapacitor[T] {
	cfg := defaultCapacitorConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &CompositeCapacitor[T]{
		sources:  sources,
		reducer:  reducer,
		apply:    apply,
		debounce: cfg.debounce,
		syncMode: cfg.syncMode,
		codec:    cfg.codec,
		latest:   make([][]byte, len(sources)),
	}
	c.init(cfg)

	return c
}

// ComposeStyles creates a CompositeCapacitor that merges the documents of
// sources with MergeDocuments, later sources winning, and applies the
// result to style.
func ComposeStyles(style *Style, sources []Watcher, opts ...CapacitorOption) *CompositeCapacitor[Document] {
	reducer := func(_ context.Context, docs []Document) (Document, error) {
		return MergeDocuments(docs...), nil
	}
	return Compose[Document](reducer, style.Apply, sources, opts...)
}

// SourceErrors returns the errors of individual sources from the last
// failed processing, if any.
func (c *CompositeCapacitor[T]) SourceErrors() []SourceError {
	ptr := c.sourceErrors.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching all sources. It blocks until every source has
// emitted its initial document and the merge has been processed.
func (c *CompositeCapacitor[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return fmt.Errorf("capacitor already started")
	}
	c.started = true
	c.mu.Unlock()

	if len(c.sources) == 0 {
		return fmt.Errorf("compose requires at least one source")
	}

	capitan.Emit(ctx, CapacitorStarted,
		KeyDebounce.Field(c.debounce),
		KeyCodec.Field(c.codec.ContentType()),
	)

	c.sourceChans = make([]<-chan []byte, len(c.sources))
	for i, src := range c.sources {
		ch, err := src.Watch(ctx)
		if err != nil {
			return fmt.Errorf("failed to start source %d: %w", i, err)
		}
		c.sourceChans[i] = ch
	}

	for i, ch := range c.sourceChans {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-ch:
			if !ok {
				return fmt.Errorf("source %d closed before emitting initial value", i)
			}
			c.latest[i] = raw
		}
	}

	c.received(ctx)
	initialErr := c.process(ctx)

	if c.syncMode {
		return initialErr
	}

	go c.watch(ctx)

	return initialErr
}

// Process drains one pending document from every source and processes the
// merge. It is only available in sync mode and reports false when no
// source had anything pending.
func (c *CompositeCapacitor[T]) Process(ctx context.Context) bool {
	if !c.syncMode {
		return false
	}

	changed := false
	for i, ch := range c.sourceChans {
		select {
		case raw, ok := <-ch:
			if !ok {
				continue
			}
			c.latest[i] = raw
			changed = true
		default:
		}
	}

	if !changed {
		return false
	}
	c.received(ctx)
	_ = c.process(ctx) //nolint:errcheck // Errors stored via fail
	return true
}

// process decodes and validates every source, reduces, and applies.
func (c *CompositeCapacitor[T]) process(ctx context.Context) error {
	began := c.clock.Now()

	docs := make([]T, len(c.latest))
	for i, raw := range c.latest {
		if err := c.codec.Unmarshal(raw, &docs[i]); err != nil {
			c.sourceFailed(i, err)
			c.fail(ctx, stageDecode, began, fmt.Errorf("source %d: %w", i, err))
			return fmt.Errorf("decode source %d failed: %w", i, err)
		}
		if err := docs[i].Validate(); err != nil {
			c.sourceFailed(i, err)
			c.fail(ctx, stageValidate, began, fmt.Errorf("source %d: %w", i, err))
			return fmt.Errorf("validation source %d failed: %w", i, err)
		}
	}

	merged, err := c.reducer(ctx, docs)
	if err != nil {
		c.fail(ctx, stageReduce, began, err)
		return fmt.Errorf("reducer failed: %w", err)
	}

	if err := c.apply(ctx, merged); err != nil {
		c.fail(ctx, stageApply, began, err)
		return fmt.Errorf("apply failed: %w", err)
	}

	c.sourceErrors.Store(nil)
	c.succeed(ctx, merged, began)
	return nil
}

func (c *CompositeCapacitor[T]) sourceFailed(index int, err error) {
	errs := []SourceError{{Index: index, Error: err}}
	c.sourceErrors.Store(&errs)
}

// watch fans in every source and processes the merge with debouncing.
func (c *CompositeCapacitor[T]) watch(ctx context.Context) {
	defer func() {
		capitan.Emit(ctx, CapacitorStopped,
			KeyState.Field(c.State().String()),
		)
	}()

	updates := make(chan sourceUpdate)

	var wg sync.WaitGroup
	wg.Add(len(c.sourceChans))
	for i, ch := range c.sourceChans {
		go func(index int, ch <-chan []byte) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case raw, ok := <-ch:
					if !ok {
						return
					}
					select {
					case updates <- sourceUpdate{index: index, raw: raw}:
					case <-ctx.Done():
						return
					}
				}
			}
		}(i, ch)
	}
	go func() {
		wg.Wait()
		close(updates)
	}()

	debounce(ctx, c.clock, c.debounce, updates,
		func(u sourceUpdate) {
			c.received(ctx)
			c.latest[u.index] = u.raw
		},
		func() {
			_ = c.process(ctx) //nolint:errcheck // Errors stored via fail
		},
	)
}

// MergeDocuments layers docs in order: every property, override and the
// default transition of a later document replace those of earlier ones.
// A number replaces zoom stops of the same key and vice versa.
func MergeDocuments(docs ...Document) Document {
	var out Document
	for _, doc := range docs {
		if doc.Transition != nil {
			spec := *doc.Transition
			out.Transition = &spec
		}
		for k, v := range doc.Numbers {
			out.Numbers = put(out.Numbers, k, v)
			delete(out.Stops, k)
		}
		for k, v := range doc.Stops {
			out.Stops = put(out.Stops, k, v)
			delete(out.Numbers, k)
		}
		for k, v := range doc.Colors {
			out.Colors = put(out.Colors, k, v)
		}
		for k, v := range doc.Arrays {
			out.Arrays = put(out.Arrays, k, v)
		}
		for k, v := range doc.Patterns {
			out.Patterns = put(out.Patterns, k, v)
		}
		for k, v := range doc.Transitions {
			out.Transitions = put(out.Transitions, k, v)
		}
	}
	return out
}

// put sets m[k] = v, allocating m if needed.
func put[V any](m map[string]V, k string, v V) map[string]V {
	if m == nil {
		m = make(map[string]V)
	}
	m[k] = v
	return m
}
