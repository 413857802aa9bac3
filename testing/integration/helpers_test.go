package integration

import (
	"testing"
	"time"
)

// waitFor polls a condition until it returns true or timeout is reached.
func waitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// receive reads from out until want arrives or timeout passes. Editors and
// renames can produce several events per change, so intermediate payloads
// are skipped.
func receive(t *testing.T, out <-chan []byte, want string, timeout time.Duration) bool {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case data, ok := <-out:
			if !ok {
				return false
			}
			if string(data) == want {
				return true
			}
		case <-deadline:
			return false
		}
	}
}
