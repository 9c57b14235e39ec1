package sim

import (
	"testing"
	"time"

	"github.com/sauti-app/sauti/internal/db"
)

// manualScheduler holds deferred completions until fired.
type manualScheduler struct {
	delays  []time.Duration
	pending []func()
}

func (m *manualScheduler) After(d time.Duration, fn func()) {
	m.delays = append(m.delays, d)
	m.pending = append(m.pending, fn)
}

// fire runs all pending completions in scheduling order.
func (m *manualScheduler) fire() {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		fn()
	}
}

// eventSink collects emitted completion events.
type eventSink struct {
	events []any
}

func (s *eventSink) notify(event any) {
	s.events = append(s.events, event)
}

func newTestStore(t *testing.T) *db.Store {
	t.Helper()

	store, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
