package app

import "github.com/sauti-app/sauti/internal/db"

// stateLoadedMsg carries a fresh snapshot of sessions and the active
// session's history from the store.
type stateLoadedMsg struct {
	Sessions []db.Session
	Active   db.Session
	History  db.History
}

// stateErrorMsg is sent when a store read fails.
type stateErrorMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}

// Completion events from the sim package (ChatReplyEvent, TranscriptEvent,
// AudioReadyEvent, TranslationEvent) arrive as tea messages directly: the
// simulators' notifier is wired to tea.Program.Send.
