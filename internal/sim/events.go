package sim

import "github.com/sauti-app/sauti/internal/db"

// ChatReplyEvent is emitted when the delayed bot reply has been appended.
type ChatReplyEvent struct {
	Record db.ChatRecord
}

// TranscriptEvent is emitted when a transcript (upload or recording) has been
// appended. A recording source also means the recording has auto-stopped.
type TranscriptEvent struct {
	Record db.ASRRecord
}

// AudioReadyEvent is emitted when synthesis completes. Handle is the opaque
// audio result for the presentation layer; it is not stored.
type AudioReadyEvent struct {
	Record db.TTSRecord
	Handle string
}

// TranslationEvent is emitted when a translation has been appended.
type TranslationEvent struct {
	Record db.TranslationRecord
}
