package fade

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
)

// debounce feeds every value of in to receive and calls flush once no value
// has arrived for d. A value still pending when in closes is flushed before
// returning. It returns when in closes or ctx ends.
func debounce[E any](
	ctx context.Context,
	clock clockz.Clock,
	d time.Duration,
	in <-chan E,
	receive func(E),
	flush func(),
) {
	var (
		timer      clockz.Timer
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case v, ok := <-in:
			if !ok {
				if hasPending {
					flush()
				}
				return
			}

			receive(v)
			hasPending = true

			if timer == nil {
				timer = clock.NewTimer(d)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(d)
			}

		case <-timerC:
			if hasPending {
				flush()
				hasPending = false
			}
		}
	}
}
