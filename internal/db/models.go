// Package db owns the session registry and the append-only interaction store,
// backed by an in-memory SQLite database.
package db

import "time"

// Domain identifies one of the four feature areas.
type Domain string

const (
	DomainChat        Domain = "chat"
	DomainASR         Domain = "asr"
	DomainTTS         Domain = "tts"
	DomainTranslation Domain = "translation"
)

// Domains lists all feature domains in display order.
var Domains = []Domain{DomainChat, DomainASR, DomainTTS, DomainTranslation}

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// SourceKind identifies how audio reached the speech recognizer.
type SourceKind string

const (
	SourceUpload    SourceKind = "upload"
	SourceRecording SourceKind = "recording"
)

// Session is a user-created named context that scopes all interaction history.
type Session struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ChatRecord is one chat turn, user or bot.
type ChatRecord struct {
	ID        int64
	SessionID int64
	Sender    Sender
	Text      string
	CreatedAt time.Time
}

// ASRRecord is one speech-recognition result.
type ASRRecord struct {
	ID         int64
	SessionID  int64
	Source     SourceKind
	FileName   string // set iff Source == SourceUpload
	Transcript string
	CreatedAt  time.Time
}

// TTSRecord is one text-to-speech request. The synthesized audio handle is a
// presentation concern and is not stored.
type TTSRecord struct {
	ID        int64
	SessionID int64
	Text      string
	CreatedAt time.Time
}

// TranslationRecord is one English→Swahili translation.
type TranslationRecord struct {
	ID        int64
	SessionID int64
	English   string
	Swahili   string
	CreatedAt time.Time
}

// Record is any interaction record, for domain-generic queries.
type Record interface {
	RecordDomain() Domain
	RecordSession() int64
}

func (r ChatRecord) RecordDomain() Domain        { return DomainChat }
func (r ChatRecord) RecordSession() int64        { return r.SessionID }
func (r ASRRecord) RecordDomain() Domain         { return DomainASR }
func (r ASRRecord) RecordSession() int64         { return r.SessionID }
func (r TTSRecord) RecordDomain() Domain         { return DomainTTS }
func (r TTSRecord) RecordSession() int64         { return r.SessionID }
func (r TranslationRecord) RecordDomain() Domain { return DomainTranslation }
func (r TranslationRecord) RecordSession() int64 { return r.SessionID }

// History aggregates one session's records across all domains, each slice in
// append order.
type History struct {
	Chat        []ChatRecord
	ASR         []ASRRecord
	TTS         []TTSRecord
	Translation []TranslationRecord
}

// Empty reports whether the history contains no records.
func (h History) Empty() bool {
	return len(h.Chat) == 0 && len(h.ASR) == 0 && len(h.TTS) == 0 && len(h.Translation) == 0
}
