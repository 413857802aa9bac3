/*
Package fade animates style property changes for rendered map layers.

When a style property's declared value changes, fade builds a Transition
from the previous value to the new one. Sampling the transition with the
current time yields a value eased through the fade window, then the new
value once the window closes.

# Transitions

A Transition supersedes the one before it:

	old := fade.New[float64](ref, fade.Constant[float64]{Value: 0}, nil, fade.TransitionOptions{})
	cur := fade.New[float64](ref, fade.Constant[float64]{Value: 1}, old, fade.TransitionOptions{
	    Duration: 300 * time.Millisecond,
	})

	opacity := cur.Calculate(fade.Globals{Zoom: 14}, feature)

While the fade runs the superseded chain is sampled frozen at the moment
the new transition started, blended through a cubic ease-in-out curve. A
transition with nothing to fade from, no blend function, or a zero-length
window is instant and returns the declaration's value directly.

The blend function is resolved once from the property's Reference: numbers,
colors and numeric arrays blend numerically; piecewise-constant
transitionable properties such as images and dash patterns cross-fade as a
CrossFaded pair drawn by the renderer.

# Arenas and styles

Properties keeps the live transition per property key and detaches
finished predecessors as declarations change, keeping chains short. Style
groups one arena per value kind and applies declarative Documents:

	style := fade.NewStyle()
	capacitor := fade.WatchStyle(fade.NewFileWatcher("style.yaml"), style)
	if err := capacitor.Start(ctx); err != nil {
	    log.Printf("initial style rejected: %v", err)
	}

	width, _ := style.Numbers.Calculate("line-width", fade.Globals{Zoom: z}, nil)

ComposeStyles layers several sources, such as a base style and a theme,
merging them with MergeDocuments so later sources override earlier ones.

# Time

Transitions read time from a clockz.Clock (WithClock). Globals.Time, when
set, overrides the clock for a single sample, which keeps rendering of a
frame consistent across properties.

# Observability

Transition and reload events are emitted as capitan signals (see
TransitionStarted, TransitionPruned and the Capacitor signals).
*/
package fade
