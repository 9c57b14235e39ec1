package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultSessionName is the name of the session created when the store opens.
const DefaultSessionName = "Default Session"

var (
	// ErrBlankSessionName is returned when a session name is empty after trimming.
	ErrBlankSessionName = errors.New("session name is blank")
	// ErrSessionNotFound is returned when a session id references no session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownDomain is returned for a Domain outside the four feature areas.
	ErrUnknownDomain = errors.New("unknown domain")
)

// Store owns all sessions and interaction records for the process lifetime.
// Appends stamp the session id active at append time, so a delayed completion
// lands in whatever session the user had switched to when it fired. Records
// are immutable: there is no update or delete.
type Store struct {
	db *sql.DB

	mu       sync.Mutex
	activeID int64
}

// MemoryDSN is the DSN for a process-lifetime in-memory database.
const MemoryDSN = ":memory:"

const schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chat_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sessionId INTEGER NOT NULL REFERENCES sessions(id),
		sender TEXT NOT NULL,
		text TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS asr_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sessionId INTEGER NOT NULL REFERENCES sessions(id),
		source TEXT NOT NULL,
		fileName TEXT NOT NULL DEFAULT '',
		transcript TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tts_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sessionId INTEGER NOT NULL REFERENCES sessions(id),
		text TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS translation_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sessionId INTEGER NOT NULL REFERENCES sessions(id),
		english TEXT NOT NULL,
		swahili TEXT NOT NULL,
		createdAt REAL NOT NULL
	);
`

// Open opens the database at dsn, creates the schema, and ensures a default
// session exists and is active.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one so
	// every query sees the same data.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}

	first, err := s.insertSession(DefaultSessionName)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create default session: %w", err)
	}
	s.activeID = first.ID

	return s, nil
}

// OpenMemory opens a fresh in-memory store.
func OpenMemory() (*Store, error) {
	return Open(MemoryDSN)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSession validates the name, appends a new session with a strictly
// monotonic id, makes it the active session, and returns it.
func (s *Store) CreateSession(name string) (Session, error) {
	if strings.TrimSpace(name) == "" {
		return Session{}, ErrBlankSessionName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.insertSession(name)
	if err != nil {
		return Session{}, err
	}
	s.activeID = sess.ID
	return sess, nil
}

func (s *Store) insertSession(name string) (Session, error) {
	now := time.Now()
	res, err := s.db.Exec(`INSERT INTO sessions (name, createdAt) VALUES (?, ?)`,
		name, unixFromTime(now))
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Session{}, fmt.Errorf("session id: %w", err)
	}
	return Session{ID: id, Name: name, CreatedAt: now}, nil
}

// SetActive switches the active session.
func (s *Store) SetActive(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("lookup session: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("session %d: %w", id, ErrSessionNotFound)
	}
	s.activeID = id
	return nil
}

// Active returns the currently active session.
func (s *Store) Active() (Session, error) {
	s.mu.Lock()
	id := s.activeID
	s.mu.Unlock()

	row := s.db.QueryRow(`SELECT id, name, createdAt FROM sessions WHERE id = ?`, id)

	var sess Session
	var createdAt float64
	if err := row.Scan(&sess.ID, &sess.Name, &createdAt); err != nil {
		return Session{}, fmt.Errorf("scan session: %w", err)
	}
	sess.CreatedAt = timeFromUnix(createdAt)
	return sess, nil
}

// Sessions returns all sessions in creation order.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query(`SELECT id, name, createdAt FROM sessions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt float64
		if err := rows.Scan(&sess.ID, &sess.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.CreatedAt = timeFromUnix(createdAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// AppendChat appends a chat record stamped with the active session.
func (s *Store) AppendChat(sender Sender, text string) (ChatRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	res, err := s.db.Exec(`
		INSERT INTO chat_records (sessionId, sender, text, createdAt)
		VALUES (?, ?, ?, ?)
	`, s.activeID, string(sender), text, unixFromTime(now))
	if err != nil {
		return ChatRecord{}, fmt.Errorf("insert chat record: %w", err)
	}
	id, _ := res.LastInsertId()
	return ChatRecord{ID: id, SessionID: s.activeID, Sender: sender, Text: text, CreatedAt: now}, nil
}

// AppendASR appends a speech-recognition record stamped with the active session.
func (s *Store) AppendASR(source SourceKind, fileName, transcript string) (ASRRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	res, err := s.db.Exec(`
		INSERT INTO asr_records (sessionId, source, fileName, transcript, createdAt)
		VALUES (?, ?, ?, ?, ?)
	`, s.activeID, string(source), fileName, transcript, unixFromTime(now))
	if err != nil {
		return ASRRecord{}, fmt.Errorf("insert asr record: %w", err)
	}
	id, _ := res.LastInsertId()
	return ASRRecord{
		ID: id, SessionID: s.activeID,
		Source: source, FileName: fileName, Transcript: transcript,
		CreatedAt: now,
	}, nil
}

// AppendTTS appends a text-to-speech record stamped with the active session.
func (s *Store) AppendTTS(text string) (TTSRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	res, err := s.db.Exec(`
		INSERT INTO tts_records (sessionId, text, createdAt)
		VALUES (?, ?, ?)
	`, s.activeID, text, unixFromTime(now))
	if err != nil {
		return TTSRecord{}, fmt.Errorf("insert tts record: %w", err)
	}
	id, _ := res.LastInsertId()
	return TTSRecord{ID: id, SessionID: s.activeID, Text: text, CreatedAt: now}, nil
}

// AppendTranslation appends a translation record stamped with the active session.
func (s *Store) AppendTranslation(english, swahili string) (TranslationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	res, err := s.db.Exec(`
		INSERT INTO translation_records (sessionId, english, swahili, createdAt)
		VALUES (?, ?, ?, ?)
	`, s.activeID, english, swahili, unixFromTime(now))
	if err != nil {
		return TranslationRecord{}, fmt.Errorf("insert translation record: %w", err)
	}
	id, _ := res.LastInsertId()
	return TranslationRecord{
		ID: id, SessionID: s.activeID,
		English: english, Swahili: swahili,
		CreatedAt: now,
	}, nil
}

// ChatForSession returns a session's chat records in append order.
func (s *Store) ChatForSession(sessionID int64) ([]ChatRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, sessionId, sender, text, createdAt
		FROM chat_records
		WHERE sessionId = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query chat records: %w", err)
	}
	defer rows.Close()

	var records []ChatRecord
	for rows.Next() {
		var r ChatRecord
		var sender string
		var createdAt float64
		if err := rows.Scan(&r.ID, &r.SessionID, &sender, &r.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chat record: %w", err)
		}
		r.Sender = Sender(sender)
		r.CreatedAt = timeFromUnix(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ASRForSession returns a session's speech-recognition records in append order.
func (s *Store) ASRForSession(sessionID int64) ([]ASRRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, sessionId, source, fileName, transcript, createdAt
		FROM asr_records
		WHERE sessionId = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query asr records: %w", err)
	}
	defer rows.Close()

	var records []ASRRecord
	for rows.Next() {
		var r ASRRecord
		var source string
		var createdAt float64
		if err := rows.Scan(&r.ID, &r.SessionID, &source, &r.FileName, &r.Transcript, &createdAt); err != nil {
			return nil, fmt.Errorf("scan asr record: %w", err)
		}
		r.Source = SourceKind(source)
		r.CreatedAt = timeFromUnix(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// TTSForSession returns a session's text-to-speech records in append order.
func (s *Store) TTSForSession(sessionID int64) ([]TTSRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, sessionId, text, createdAt
		FROM tts_records
		WHERE sessionId = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query tts records: %w", err)
	}
	defer rows.Close()

	var records []TTSRecord
	for rows.Next() {
		var r TTSRecord
		var createdAt float64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan tts record: %w", err)
		}
		r.CreatedAt = timeFromUnix(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// TranslationsForSession returns a session's translation records in append order.
func (s *Store) TranslationsForSession(sessionID int64) ([]TranslationRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, sessionId, english, swahili, createdAt
		FROM translation_records
		WHERE sessionId = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query translation records: %w", err)
	}
	defer rows.Close()

	var records []TranslationRecord
	for rows.Next() {
		var r TranslationRecord
		var createdAt float64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.English, &r.Swahili, &createdAt); err != nil {
			return nil, fmt.Errorf("scan translation record: %w", err)
		}
		r.CreatedAt = timeFromUnix(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Query returns one domain's records for a session in append order.
func (s *Store) Query(domain Domain, sessionID int64) ([]Record, error) {
	switch domain {
	case DomainChat:
		recs, err := s.ChatForSession(sessionID)
		return generalize(recs), err
	case DomainASR:
		recs, err := s.ASRForSession(sessionID)
		return generalize(recs), err
	case DomainTTS:
		recs, err := s.TTSForSession(sessionID)
		return generalize(recs), err
	case DomainTranslation:
		recs, err := s.TranslationsForSession(sessionID)
		return generalize(recs), err
	default:
		return nil, fmt.Errorf("%q: %w", domain, ErrUnknownDomain)
	}
}

// QueryAll returns a session's records across all four domains.
func (s *Store) QueryAll(sessionID int64) (History, error) {
	var h History
	var err error

	if h.Chat, err = s.ChatForSession(sessionID); err != nil {
		return History{}, err
	}
	if h.ASR, err = s.ASRForSession(sessionID); err != nil {
		return History{}, err
	}
	if h.TTS, err = s.TTSForSession(sessionID); err != nil {
		return History{}, err
	}
	if h.Translation, err = s.TranslationsForSession(sessionID); err != nil {
		return History{}, err
	}
	return h, nil
}

func generalize[T Record](recs []T) []Record {
	if recs == nil {
		return nil
	}
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
