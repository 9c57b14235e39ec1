// Package sim implements the feature services behind the demo: chat, speech
// recognition, text-to-speech, and translation. Each models an external
// backend with a fixed latency and a canned or computed payload, appending an
// interaction record when its delayed completion fires. Completions are
// fire-and-forget: there is no cancellation, and the record is stamped with
// the session active at completion time.
package sim

import "errors"

var (
	// ErrBlankInput is returned when required text input is empty after trimming.
	ErrBlankInput = errors.New("input is blank")
	// ErrRecording is returned when a recording is started while one is in progress.
	ErrRecording = errors.New("recording already in progress")
)

// Notifier receives completion events. The TUI wires this to
// tea.Program.Send; a nil notifier drops events.
type Notifier func(event any)

func (n Notifier) emit(event any) {
	if n != nil {
		n(event)
	}
}
