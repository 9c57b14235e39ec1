package sim

import (
	"errors"
	"testing"
)

func TestSynthesizeBlank(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	tts := NewTTS(store, sched, nil)

	if err := tts.Synthesize("\t"); !errors.Is(err, ErrBlankInput) {
		t.Errorf("err = %v, want ErrBlankInput", err)
	}
	if len(sched.pending) != 0 {
		t.Errorf("scheduled %d completions, want 0", len(sched.pending))
	}
}

func TestSynthesize(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	sink := &eventSink{}
	tts := NewTTS(store, sched, sink.notify)

	if err := tts.Synthesize("Habari ya dunia"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(sched.delays) != 1 || sched.delays[0] != DefaultSynthesisDelay {
		t.Errorf("scheduled delays = %v, want [%v]", sched.delays, DefaultSynthesisDelay)
	}

	sched.fire()

	records, _ := store.TTSForSession(1)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Text != "Habari ya dunia" {
		t.Errorf("text = %q", records[0].Text)
	}

	if len(sink.events) != 1 {
		t.Fatalf("got %d events, want 1", len(sink.events))
	}
	ev, ok := sink.events[0].(AudioReadyEvent)
	if !ok {
		t.Fatalf("event = %T, want AudioReadyEvent", sink.events[0])
	}
	if ev.Handle != AudioPlaceholder {
		t.Errorf("handle = %q, want %q", ev.Handle, AudioPlaceholder)
	}
}
