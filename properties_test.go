package fade

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestProperties_DeclareSupersedes(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	props := NewProperties[float64](WithClock(clock))

	first := props.Declare(ctx, "fill-opacity", numberRef, Constant[float64]{Value: 0}, TransitionOptions{Duration: time.Second})
	if !first.Instant() {
		t.Error("expected first declaration to be instant")
	}

	second := props.Declare(ctx, "fill-opacity", numberRef, Constant[float64]{Value: 1}, TransitionOptions{Duration: time.Second})
	if second.Predecessor() != first {
		t.Fatal("expected second declaration to supersede the first")
	}

	got, ok := props.Get("fill-opacity")
	if !ok || got != second {
		t.Error("expected live transition to be the latest")
	}
}

func TestProperties_Calculate(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	props := NewProperties[float64](WithClock(clock), WithEasing(EaseLinear))

	props.Declare(ctx, "line-width", numberRef, Constant[float64]{Value: 2}, TransitionOptions{})
	props.Declare(ctx, "line-width", numberRef, Constant[float64]{Value: 6}, TransitionOptions{Duration: time.Second})

	clock.Advance(500 * time.Millisecond)
	v, ok := props.Calculate("line-width", Globals{}, nil)
	if !ok {
		t.Fatal("expected declared property")
	}
	if v != 4 {
		t.Errorf("expected 4 halfway through, got %v", v)
	}

	if _, ok := props.Calculate("missing", Globals{}, nil); ok {
		t.Error("expected undeclared property to report false")
	}
}

func TestProperties_PrunesAcrossDeclarations(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	props := NewProperties[float64](WithClock(clock))

	props.Declare(ctx, "circle-radius", numberRef, Constant[float64]{Value: 1}, TransitionOptions{})
	for i := 0; i < 50; i++ {
		clock.Advance(time.Second)
		props.Declare(ctx, "circle-radius", numberRef, Constant[float64]{Value: float64(i)}, TransitionOptions{Duration: 300 * time.Millisecond})
	}

	live, _ := props.Get("circle-radius")
	if d := live.Depth(); d != 2 {
		t.Errorf("expected depth 2, got %d", d)
	}
}

func TestProperties_RemoveAndKeys(t *testing.T) {
	ctx := context.Background()
	props := NewProperties[Color]()

	props.Declare(ctx, "fill-color", Reference{Type: KindColor}, Constant[Color]{Value: RGBA(1, 0, 0, 1)}, TransitionOptions{})
	props.Declare(ctx, "background-color", Reference{Type: KindColor}, Constant[Color]{Value: RGBA(0, 0, 0, 1)}, TransitionOptions{})

	keys := props.Keys()
	if len(keys) != 2 || keys[0] != "background-color" || keys[1] != "fill-color" {
		t.Errorf("unexpected keys %v", keys)
	}

	if !props.Remove(ctx, "fill-color") {
		t.Error("expected remove to report an existing key")
	}
	if props.Remove(ctx, "fill-color") {
		t.Error("expected second remove to report false")
	}
	if props.Len() != 1 {
		t.Errorf("expected 1 property, got %d", props.Len())
	}
}

func TestProperties_ConcurrentSampleAndDeclare(t *testing.T) {
	ctx := context.Background()
	props := NewProperties[float64]()
	props.Declare(ctx, "fill-opacity", numberRef, Constant[float64]{Value: 0}, TransitionOptions{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			props.Declare(ctx, "fill-opacity", numberRef, Constant[float64]{Value: float64(i % 2)}, TransitionOptions{Duration: time.Millisecond})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			v, _ := props.Calculate("fill-opacity", Globals{}, nil)
			if v < 0 || v > 1 {
				t.Errorf("sample out of range: %v", v)
				return
			}
		}
	}()
	wg.Wait()
}
