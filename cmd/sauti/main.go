// Command sauti runs the terminal UI for the session-scoped speech and
// language demo: chat, speech recognition, text to speech, and English to
// Swahili translation, all recorded per session.
package main

import (
	"fmt"
	"os"

	"github.com/sauti-app/sauti/internal/app"
	"github.com/sauti-app/sauti/internal/db"
	"github.com/sauti-app/sauti/internal/sim"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	store, err := db.OpenMemory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sauti: open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sched := sim.TimerScheduler{}

	// The notifier is bound after the program exists so completion events
	// land in the update loop.
	var program *tea.Program
	notify := sim.Notifier(func(event any) { program.Send(event) })

	chat := sim.NewChat(store, sched, notify)
	asr := sim.NewASR(store, sched, notify)
	tts := sim.NewTTS(store, sched, notify)
	translator := sim.NewTranslator(store, nil, sched, notify)

	model := app.New(store, chat, asr, tts, translator)
	program = tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "sauti: %v\n", err)
		os.Exit(1)
	}
}
