package sim

import (
	"strings"
	"sync"
	"time"

	"github.com/sauti-app/sauti/internal/db"
)

// Placeholder transcripts; no audio is decoded.
const (
	UploadTranscript    = "This is a simulated transcript of the uploaded audio file."
	RecordingTranscript = "This is a simulated transcript from voice recording."
)

const (
	// DefaultUploadDelay is the modeled latency of upload transcription.
	DefaultUploadDelay = 1500 * time.Millisecond
	// DefaultRecordingDuration is how long a recording runs before it
	// auto-stops and transcribes.
	DefaultRecordingDuration = 3000 * time.Millisecond
)

// ASR simulates a speech-recognition backend for uploaded files and
// fixed-duration recordings.
type ASR struct {
	store  *db.Store
	sched  Scheduler
	notify Notifier

	UploadDelay       time.Duration
	RecordingDuration time.Duration

	mu        sync.Mutex
	recording bool
}

// NewASR returns a speech-recognition simulator with the default latencies.
func NewASR(store *db.Store, sched Scheduler, notify Notifier) *ASR {
	return &ASR{
		store:             store,
		sched:             sched,
		notify:            notify,
		UploadDelay:       DefaultUploadDelay,
		RecordingDuration: DefaultRecordingDuration,
	}
}

// TranscribeUpload schedules a transcript for the named audio file. The
// record is stamped with the session active when the transcript arrives.
func (a *ASR) TranscribeUpload(fileName string) error {
	if strings.TrimSpace(fileName) == "" {
		return ErrBlankInput
	}

	a.sched.After(a.UploadDelay, func() {
		rec, err := a.store.AppendASR(db.SourceUpload, fileName, UploadTranscript)
		if err != nil {
			return
		}
		a.notify.emit(TranscriptEvent{Record: rec})
	})
	return nil
}

// StartRecording begins a fixed-duration recording that auto-stops and
// appends its transcript. Only one recording may run at a time; starting
// while recording is rejected.
func (a *ASR) StartRecording() error {
	a.mu.Lock()
	if a.recording {
		a.mu.Unlock()
		return ErrRecording
	}
	a.recording = true
	// Unlock before scheduling: an inline scheduler runs the callback,
	// which takes the mutex again, before After returns.
	a.mu.Unlock()

	a.sched.After(a.RecordingDuration, func() {
		a.mu.Lock()
		a.recording = false
		a.mu.Unlock()

		rec, err := a.store.AppendASR(db.SourceRecording, "", RecordingTranscript)
		if err != nil {
			return
		}
		a.notify.emit(TranscriptEvent{Record: rec})
	})
	return nil
}

// Recording reports whether a recording is in progress.
func (a *ASR) Recording() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recording
}
