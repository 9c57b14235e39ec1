package sim

import (
	"strings"
	"time"

	"github.com/sauti-app/sauti/internal/db"
	"github.com/sauti-app/sauti/internal/translate"
)

// DefaultTranslationDelay is the modeled latency of the translation backend.
const DefaultTranslationDelay = 1000 * time.Millisecond

// Translator wraps the pure translation engine with the modeled latency and
// the store append.
type Translator struct {
	store  *db.Store
	engine *translate.Engine
	sched  Scheduler
	notify Notifier

	TranslationDelay time.Duration
}

// NewTranslator returns a translation service. A nil engine gets a
// time-seeded one.
func NewTranslator(store *db.Store, engine *translate.Engine, sched Scheduler, notify Notifier) *Translator {
	if engine == nil {
		engine = translate.NewEngine(nil)
	}
	return &Translator{
		store:            store,
		engine:           engine,
		sched:            sched,
		notify:           notify,
		TranslationDelay: DefaultTranslationDelay,
	}
}

// Translate validates the text and schedules the translation. The engine runs
// when the delay expires, mirroring a backend that computes on arrival; the
// record carries both the English input and the Swahili result.
func (t *Translator) Translate(english string) error {
	if strings.TrimSpace(english) == "" {
		return ErrBlankInput
	}

	t.sched.After(t.TranslationDelay, func() {
		swahili := t.engine.Translate(english)
		rec, err := t.store.AppendTranslation(english, swahili)
		if err != nil {
			return
		}
		t.notify.emit(TranslationEvent{Record: rec})
	})
	return nil
}
