package sim

import (
	"strings"
	"time"

	"github.com/sauti-app/sauti/internal/db"
)

// AudioPlaceholder is the opaque audio handle produced for the presentation
// layer; no synthesis occurs.
const AudioPlaceholder = "/api/placeholder/400/80"

// DefaultSynthesisDelay is the modeled latency of the synthesis backend.
const DefaultSynthesisDelay = 1000 * time.Millisecond

// TTS simulates a text-to-speech backend.
type TTS struct {
	store  *db.Store
	sched  Scheduler
	notify Notifier

	SynthesisDelay time.Duration
}

// NewTTS returns a text-to-speech simulator with the default latency.
func NewTTS(store *db.Store, sched Scheduler, notify Notifier) *TTS {
	return &TTS{store: store, sched: sched, notify: notify, SynthesisDelay: DefaultSynthesisDelay}
}

// Synthesize validates the text and schedules the synthesis result: a TTS
// record stamped with the session active at completion time, plus the audio
// handle delivered in the event.
func (t *TTS) Synthesize(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankInput
	}

	t.sched.After(t.SynthesisDelay, func() {
		rec, err := t.store.AppendTTS(text)
		if err != nil {
			return
		}
		t.notify.emit(AudioReadyEvent{Record: rec, Handle: AudioPlaceholder})
	})
	return nil
}
