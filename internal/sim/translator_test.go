package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/sauti-app/sauti/internal/translate"
)

func TestTranslateBlank(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	tr := NewTranslator(store, nil, sched, nil)

	if err := tr.Translate(" "); !errors.Is(err, ErrBlankInput) {
		t.Errorf("err = %v, want ErrBlankInput", err)
	}
	if len(sched.pending) != 0 {
		t.Errorf("scheduled %d completions, want 0", len(sched.pending))
	}
}

func TestTranslateAppendsBothTexts(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	sink := &eventSink{}
	engine := translate.NewEngine(rand.New(rand.NewSource(1)))
	tr := NewTranslator(store, engine, sched, sink.notify)

	if err := tr.Translate("hello"); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(sched.delays) != 1 || sched.delays[0] != DefaultTranslationDelay {
		t.Errorf("scheduled delays = %v, want [%v]", sched.delays, DefaultTranslationDelay)
	}

	// Nothing visible until the delay expires.
	records, _ := store.TranslationsForSession(1)
	if len(records) != 0 {
		t.Fatalf("got %d records before completion, want 0", len(records))
	}

	sched.fire()

	records, _ = store.TranslationsForSession(1)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].English != "hello" {
		t.Errorf("english = %q, want %q", records[0].English, "hello")
	}
	if records[0].Swahili != "Jambo" {
		t.Errorf("swahili = %q, want %q", records[0].Swahili, "Jambo")
	}

	if len(sink.events) != 1 {
		t.Fatalf("got %d events, want 1", len(sink.events))
	}
	if _, ok := sink.events[0].(TranslationEvent); !ok {
		t.Errorf("event = %T, want TranslationEvent", sink.events[0])
	}
}

func TestTranslateStampedAtCompletionTime(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	tr := NewTranslator(store, translate.NewEngine(rand.New(rand.NewSource(1))), sched, nil)

	if err := tr.Translate("water"); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	work, _ := store.CreateSession("Work")
	sched.fire()

	records, _ := store.TranslationsForSession(work.ID)
	if len(records) != 1 {
		t.Fatalf("completion session has %d records, want 1", len(records))
	}
}
