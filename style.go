package fade

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance.
var validate = validator.New()

// References for the property sections of a Document.
var (
	numberReference  = Reference{Type: KindNumber, Function: FunctionInterpolated}
	colorReference   = Reference{Type: KindColor, Function: FunctionInterpolated}
	arrayReference   = Reference{Type: KindArray, Function: FunctionInterpolated}
	patternReference = Reference{Type: KindString, Function: FunctionPiecewiseConstant, Transition: true}
)

// TransitionSpec is a fade window in milliseconds as written in a style
// document.
type TransitionSpec struct {
	Duration int `json:"duration" yaml:"duration" validate:"min=0"`
	Delay    int `json:"delay" yaml:"delay" validate:"min=0"`
}

// Options converts the spec to TransitionOptions.
func (s TransitionSpec) Options() TransitionOptions {
	return TransitionOptions{
		Duration: time.Duration(s.Duration) * time.Millisecond,
		Delay:    time.Duration(s.Delay) * time.Millisecond,
	}
}

// PatternSpec names an image or dash pattern and the scale it was
// rasterized at. A zero scale means 1.
type PatternSpec struct {
	Image string  `json:"image" yaml:"image" validate:"required"`
	Scale float64 `json:"scale" yaml:"scale" validate:"min=0"`
}

func (p PatternSpec) normalized() PatternSpec {
	if p.Scale == 0 {
		p.Scale = 1
	}
	return p
}

// Document is a declarative style: a set of property values grouped by
// value kind, an optional default transition, and per-property overrides.
//
//	transition: {duration: 300}
//	numbers:
//	  fill-opacity: 0.8
//	stops:
//	  line-width: [{zoom: 10, value: 1}, {zoom: 16, value: 4}]
//	colors:
//	  fill-color: "#3366ff"
//	arrays:
//	  fill-translate: [0, 2]
//	patterns:
//	  fill-pattern: {image: hatch, scale: 2}
//	transitions:
//	  fill-color: {duration: 1000, delay: 200}
//
// A key present in both numbers and stops takes its stops.
type Document struct {
	Transition  *TransitionSpec           `json:"transition,omitempty" yaml:"transition,omitempty"`
	Numbers     map[string]float64        `json:"numbers,omitempty" yaml:"numbers,omitempty"`
	Stops       map[string]ZoomStops      `json:"stops,omitempty" yaml:"stops,omitempty" validate:"dive,min=1"`
	Colors      map[string]string         `json:"colors,omitempty" yaml:"colors,omitempty" validate:"dive,hexcolor"`
	Arrays      map[string][]float64      `json:"arrays,omitempty" yaml:"arrays,omitempty"`
	Patterns    map[string]PatternSpec    `json:"patterns,omitempty" yaml:"patterns,omitempty" validate:"dive"`
	Transitions map[string]TransitionSpec `json:"transitions,omitempty" yaml:"transitions,omitempty" validate:"dive"`
}

// Validate checks the document's struct constraints.
func (d Document) Validate() error {
	return validate.Struct(d)
}

// transitionFor returns the effective fade window for key.
func (d Document) transitionFor(key string) TransitionOptions {
	if spec, ok := d.Transitions[key]; ok {
		return spec.Options()
	}
	if d.Transition != nil {
		return d.Transition.Options()
	}
	return TransitionOptions{}
}

// Style holds the live transitions of a layer, one arena per value kind.
type Style struct {
	Numbers  *Properties[float64]
	Colors   *Properties[Color]
	Arrays   *Properties[[]float64]
	Patterns *Properties[*CrossFaded]

	mu      sync.Mutex
	applied Document
	colors  map[string]Color
}

// NewStyle creates an empty style. Options apply to every transition.
func NewStyle(options ...Option) *Style {
	return &Style{
		Numbers:  NewProperties[float64](options...),
		Colors:   NewProperties[Color](options...),
		Arrays:   NewProperties[[]float64](options...),
		Patterns: NewProperties[*CrossFaded](options...),
	}
}

// Apply declares every property of doc whose value or fade window differs
// from the last applied document, transitioning from the values currently
// declared. Unchanged properties keep their running transitions. Properties
// missing from doc are removed. The document is validated and its colors
// parsed before anything is declared, so a failed Apply leaves the style
// untouched.
func (s *Style) Apply(ctx context.Context, doc Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid style document: %w", err)
	}

	colors := make(map[string]Color, len(doc.Colors))
	for key, hex := range doc.Colors {
		c, err := ParseColor(hex)
		if err != nil {
			return fmt.Errorf("property %s: %w", key, err)
		}
		colors[key] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.applied
	sameWindow := func(key string) bool {
		return prev.transitionFor(key) == doc.transitionFor(key)
	}

	for key, v := range doc.Numbers {
		if _, ok := doc.Stops[key]; ok {
			continue
		}
		old, ok := prev.Numbers[key]
		_, wasStops := prev.Stops[key]
		if ok && !wasStops && old == v && sameWindow(key) && live(s.Numbers, key) {
			continue
		}
		s.Numbers.Declare(ctx, key, numberReference, Constant[float64]{Value: v}, doc.transitionFor(key))
	}
	for key, stops := range doc.Stops {
		if old, ok := prev.Stops[key]; ok && slices.Equal(old, stops) && sameWindow(key) && live(s.Numbers, key) {
			continue
		}
		s.Numbers.Declare(ctx, key, numberReference, slices.Clone(stops), doc.transitionFor(key))
	}
	for key, c := range colors {
		if old, ok := s.colors[key]; ok && old == c && sameWindow(key) && live(s.Colors, key) {
			continue
		}
		s.Colors.Declare(ctx, key, colorReference, Constant[Color]{Value: c}, doc.transitionFor(key))
	}
	for key, arr := range doc.Arrays {
		if old, ok := prev.Arrays[key]; ok && slices.Equal(old, arr) && sameWindow(key) && live(s.Arrays, key) {
			continue
		}
		s.Arrays.Declare(ctx, key, arrayReference, ArrayConstant(slices.Clone(arr)), doc.transitionFor(key))
	}
	for key, p := range doc.Patterns {
		if old, ok := prev.Patterns[key]; ok && old.normalized() == p.normalized() && sameWindow(key) && live(s.Patterns, key) {
			continue
		}
		n := p.normalized()
		pattern := &CrossFaded{To: n.Image, ToScale: n.Scale}
		s.Patterns.Declare(ctx, key, patternReference, Constant[*CrossFaded]{Value: pattern}, doc.transitionFor(key))
	}

	retain(ctx, s.Numbers, func(key string) bool {
		_, number := doc.Numbers[key]
		_, stops := doc.Stops[key]
		return number || stops
	})
	retain(ctx, s.Colors, func(key string) bool { _, ok := colors[key]; return ok })
	retain(ctx, s.Arrays, func(key string) bool { _, ok := doc.Arrays[key]; return ok })
	retain(ctx, s.Patterns, func(key string) bool { _, ok := doc.Patterns[key]; return ok })

	s.applied = snapshot(doc)
	s.colors = colors
	return nil
}

// snapshot copies the sections of doc that Apply compares against.
func snapshot(doc Document) Document {
	out := MergeDocuments(doc)
	for key, arr := range out.Arrays {
		out.Arrays[key] = slices.Clone(arr)
	}
	for key, stops := range out.Stops {
		out.Stops[key] = slices.Clone(stops)
	}
	return out
}

// live reports whether key is declared in p.
func live[T any](p *Properties[T], key string) bool {
	_, ok := p.Get(key)
	return ok
}

// retain removes every key of p that keep rejects.
func retain[T any](ctx context.Context, p *Properties[T], keep func(string) bool) {
	for _, key := range p.Keys() {
		if !keep(key) {
			p.Remove(ctx, key)
		}
	}
}
