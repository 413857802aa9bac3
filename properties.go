package fade

import (
	"context"
	"sort"
	"sync"

	"github.com/zoobzio/capitan"
)

// Properties is an arena of live transitions indexed by property key.
//
// Each Declare supersedes the key's current transition, so the arena is the
// single owner of every chain. Sampling is safe while declarations change.
type Properties[T any] struct {
	mu      sync.RWMutex
	live    map[string]*Transition[T]
	options []Option
}

// NewProperties creates an empty arena. Options apply to every transition
// the arena constructs.
func NewProperties[T any](options ...Option) *Properties[T] {
	return &Properties[T]{
		live:    make(map[string]*Transition[T]),
		options: options,
	}
}

// Declare starts a transition of key to decl, superseding the key's current
// transition if there is one.
func (p *Properties[T]) Declare(
	ctx context.Context,
	key string,
	ref Reference,
	decl Declaration[T],
	opts TransitionOptions,
) *Transition[T] {
	p.mu.Lock()
	t, pruned := newTransition(ref, decl, p.live[key], opts, p.options...)
	p.live[key] = t
	p.mu.Unlock()

	capitan.Emit(ctx, TransitionStarted,
		KeyProperty.Field(key),
		KeyStrategy.Field(ref.Strategy().String()),
		KeyDuration.Field(t.Duration()),
		KeyDelay.Field(t.Delay()),
		KeyDepth.Field(t.Depth()),
	)
	if pruned {
		capitan.Emit(ctx, TransitionPruned,
			KeyProperty.Field(key),
		)
	}

	return t
}

// Get returns the live transition for key.
func (p *Properties[T]) Get(key string) (*Transition[T], bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.live[key]
	return t, ok
}

// Calculate samples the live transition for key. It returns the zero value
// and false when key has never been declared.
func (p *Properties[T]) Calculate(key string, globals Globals, feature Feature) (T, bool) {
	t, ok := p.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	return t.Calculate(globals, feature), true
}

// Remove drops key and its chain from the arena.
func (p *Properties[T]) Remove(ctx context.Context, key string) bool {
	p.mu.Lock()
	_, ok := p.live[key]
	delete(p.live, key)
	p.mu.Unlock()

	if ok {
		capitan.Emit(ctx, PropertyRemoved,
			KeyProperty.Field(key),
		)
	}
	return ok
}

// Keys returns the declared property keys in sorted order.
func (p *Properties[T]) Keys() []string {
	p.mu.RLock()
	keys := make([]string, 0, len(p.live))
	for k := range p.live {
		keys = append(keys, k)
	}
	p.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Len returns the number of declared properties.
func (p *Properties[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.live)
}
