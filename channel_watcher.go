package fade

import "context"

// ChannelWatcher adapts a byte channel to a Watcher. Use it for tests and
// for sources that already deliver style documents on a channel.
type ChannelWatcher struct {
	ch     <-chan []byte
	direct bool
}

// NewChannelWatcher creates a ChannelWatcher that relays ch through its own
// goroutine and stops relaying when the Watch context ends.
func NewChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch}
}

// NewSyncChannelWatcher creates a ChannelWatcher whose Watch returns ch
// itself. Pair it with WithSyncMode for deterministic tests.
func NewSyncChannelWatcher(ch <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{ch: ch, direct: true}
}

// Watch returns a channel carrying every value sent on the wrapped channel.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.ch, nil
	}

	out := make(chan []byte)
	go relay(ctx, w.ch, out)
	return out, nil
}

// relay copies in to out until in closes or ctx ends, then closes out.
func relay(ctx context.Context, in <-chan []byte, out chan<- []byte) {
	defer close(out)
	for {
		var (
			v  []byte
			ok bool
		)
		select {
		case <-ctx.Done():
			return
		case v, ok = <-in:
			if !ok {
				return
			}
		}
		select {
		case out <- v:
		case <-ctx.Done():
			return
		}
	}
}
