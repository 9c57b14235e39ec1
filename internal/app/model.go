package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sauti-app/sauti/internal/db"
	"github.com/sauti-app/sauti/internal/sim"
	"github.com/sauti-app/sauti/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Tab identifies a feature pane.
type Tab int

const (
	TabChat Tab = iota
	TabASR
	TabTTS
	TabTranslate
	TabHistory
)

var tabTitles = map[Tab]string{
	TabChat:      "Chat",
	TabASR:       "Speech Recognition",
	TabTTS:       "Text to Speech",
	TabTranslate: "English to Swahili",
	TabHistory:   "History",
}

const tabCount = 5

// Model is the root bubbletea model for the sauti TUI.
type Model struct {
	store      *db.Store
	chat       *sim.Chat
	asr        *sim.ASR
	tts        *sim.TTS
	translator *sim.Translator

	// Session state
	sessions []db.Session
	active   db.Session

	// Active session history
	history db.History

	// Tab + inputs
	activeTab      Tab
	chatInput      string
	uploadInput    string
	ttsInput       string
	translateInput string

	// New-session modal
	showSessionModal bool
	sessionInput     string

	// In-flight indicators
	chatPending      bool
	uploadPending    bool
	recording        bool
	ttsPending       bool
	translatePending bool

	// Latest results for display
	transcript  string
	audioHandle string
	swahiliText string

	// Errors
	errorMessage   string
	errorTransient bool

	// UI state
	width  int
	height int
}

// New creates a Model over the store and feature services.
func New(store *db.Store, chat *sim.Chat, asr *sim.ASR, tts *sim.TTS, translator *sim.Translator) Model {
	return Model{
		store:      store,
		chat:       chat,
		asr:        asr,
		tts:        tts,
		translator: translator,
		activeTab:  TabChat,
	}
}

// Init loads the initial session snapshot.
func (m Model) Init() tea.Cmd {
	return refreshCmd(m.store)
}

// refreshCmd reads sessions, the active session, and its history.
func refreshCmd(store *db.Store) tea.Cmd {
	return func() tea.Msg {
		sessions, err := store.Sessions()
		if err != nil {
			return stateErrorMsg{Err: err}
		}
		active, err := store.Active()
		if err != nil {
			return stateErrorMsg{Err: err}
		}
		history, err := store.QueryAll(active.ID)
		if err != nil {
			return stateErrorMsg{Err: err}
		}
		return stateLoadedMsg{Sessions: sessions, Active: active, History: history}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateLoadedMsg:
		m.sessions = msg.Sessions
		m.active = msg.Active
		m.history = msg.History
		return m, nil

	case stateErrorMsg:
		m.errorMessage = msg.Err.Error()
		return m, nil

	case sim.ChatReplyEvent:
		m.chatPending = false
		return m, refreshCmd(m.store)

	case sim.TranscriptEvent:
		if msg.Record.Source == db.SourceRecording {
			m.recording = false
		} else {
			m.uploadPending = false
		}
		m.transcript = msg.Record.Transcript
		return m, refreshCmd(m.store)

	case sim.AudioReadyEvent:
		m.ttsPending = false
		m.audioHandle = msg.Handle
		return m, refreshCmd(m.store)

	case sim.TranslationEvent:
		m.translatePending = false
		m.swahiliText = msg.Record.Swahili
		return m, refreshCmd(m.store)

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showSessionModal {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case KeyQuit:
		return m, tea.Quit

	case KeyEsc:
		if input := m.activeInput(); input != nil {
			*input = ""
		}
		return m, nil

	case KeyNextTab:
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil

	case KeyPrevTab:
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil

	case KeyNewSession:
		m.showSessionModal = true
		m.sessionInput = ""
		return m, nil

	case KeyNextSession:
		return m.cycleSession()

	case KeyRecord:
		if m.activeTab != TabASR {
			return m, nil
		}
		if err := m.asr.StartRecording(); err != nil {
			return m.transientError(err)
		}
		m.recording = true
		return m, nil

	case KeyEnter:
		return m.submit()

	case KeyBackspace:
		if input := m.activeInput(); input != nil && *input != "" {
			runes := []rune(*input)
			*input = string(runes[:len(runes)-1])
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			if input := m.activeInput(); input != nil {
				*input += msg.String()
			}
		}
		return m, nil
	}
}

// handleModalKey processes keys while the new-session modal is open.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		return m, tea.Quit

	case KeyEsc:
		m.showSessionModal = false
		m.sessionInput = ""
		return m, nil

	case KeyEnter:
		if _, err := m.store.CreateSession(m.sessionInput); err != nil {
			return m.transientError(err)
		}
		m.showSessionModal = false
		m.sessionInput = ""
		return m, refreshCmd(m.store)

	case KeyBackspace:
		if m.sessionInput != "" {
			runes := []rune(m.sessionInput)
			m.sessionInput = string(runes[:len(runes)-1])
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.sessionInput += msg.String()
		}
		return m, nil
	}
}

// cycleSession activates the next session in creation order.
func (m Model) cycleSession() (tea.Model, tea.Cmd) {
	if len(m.sessions) < 2 {
		return m, nil
	}
	next := m.sessions[0]
	for i, sess := range m.sessions {
		if sess.ID == m.active.ID {
			next = m.sessions[(i+1)%len(m.sessions)]
			break
		}
	}
	if err := m.store.SetActive(next.ID); err != nil {
		return m.transientError(err)
	}
	return m, refreshCmd(m.store)
}

// submit runs the active tab's command against its input.
func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case TabChat:
		if _, err := m.chat.Send(m.chatInput); err != nil {
			return m.transientError(err)
		}
		m.chatInput = ""
		m.chatPending = true
		return m, refreshCmd(m.store)

	case TabASR:
		if err := m.asr.TranscribeUpload(m.uploadInput); err != nil {
			return m.transientError(err)
		}
		m.uploadInput = ""
		m.uploadPending = true
		return m, nil

	case TabTTS:
		if err := m.tts.Synthesize(m.ttsInput); err != nil {
			return m.transientError(err)
		}
		m.ttsPending = true
		m.audioHandle = ""
		return m, nil

	case TabTranslate:
		if err := m.translator.Translate(m.translateInput); err != nil {
			return m.transientError(err)
		}
		m.translatePending = true
		m.swahiliText = ""
		return m, nil
	}
	return m, nil
}

func (m Model) transientError(err error) (tea.Model, tea.Cmd) {
	m.errorMessage = err.Error()
	m.errorTransient = true
	return m, clearTransientErrorCmd()
}

// activeInput returns the text input the active tab edits, or nil.
func (m *Model) activeInput() *string {
	switch m.activeTab {
	case TabChat:
		return &m.chatInput
	case TabASR:
		return &m.uploadInput
	case TabTTS:
		return &m.ttsInput
	case TabTranslate:
		return &m.translateInput
	}
	return nil
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + tabs(1) + divider(1) + divider(1) + error(1) + footer(1)
	reserved := 6
	return max(5, m.height-reserved)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.showSessionModal {
		return m.renderModal()
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderTabBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderContent())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("SAUTI")
	session := ui.DimStyle.Render(" — session ") + ui.SessionStyle.Render(m.active.Name)
	return title + session
}

func (m Model) renderTabBar() string {
	var parts []string
	for tab := Tab(0); tab < tabCount; tab++ {
		if tab == m.activeTab {
			parts = append(parts, ui.TabActiveStyle.Render("["+tabTitles[tab]+"]"))
		} else {
			parts = append(parts, ui.TabStyle.Render(" "+tabTitles[tab]+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderContent() string {
	var lines []string
	switch m.activeTab {
	case TabChat:
		lines = m.renderChatPane()
	case TabASR:
		lines = m.renderASRPane()
	case TabTTS:
		lines = m.renderTTSPane()
	case TabTranslate:
		lines = m.renderTranslatePane()
	case TabHistory:
		lines = m.renderHistoryPane()
	}

	height := m.contentHeight()
	// Chat keeps the newest lines in view; other panes truncate at the bottom.
	if len(lines) > height {
		if m.activeTab == TabChat {
			lines = lines[len(lines)-height:]
		} else {
			lines = lines[:height]
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderChatPane() []string {
	var lines []string

	if len(m.history.Chat) == 0 {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Send a message to start chatting"))
		lines = append(lines, ui.DimStyle.Render("  Maswali na majibu kwa Kiswahili"))
	} else {
		textWidth := max(10, m.width-22)
		for _, rec := range m.history.Chat {
			ts := ui.TimestampStyle.Render(rec.CreatedAt.Format("[15:04:05]"))
			var label string
			if rec.Sender == db.SenderUser {
				label = ui.UserLabelStyle.Render("[YOU] ")
			} else {
				label = ui.BotLabelStyle.Render("[BOT] ")
			}
			wrapped := wrapText(rec.Text, textWidth)
			lines = append(lines, "  "+ts+" "+label+wrapped[0])
			for _, wl := range wrapped[1:] {
				lines = append(lines, strings.Repeat(" ", 20)+wl)
			}
		}
	}

	if m.chatPending {
		lines = append(lines, "  "+ui.PendingStyle.Render("… bot is replying"))
	}

	lines = append(lines, "")
	lines = append(lines, m.renderInput("Message", m.chatInput))
	return lines
}

func (m Model) renderASRPane() []string {
	var lines []string

	lines = append(lines, ui.SectionTitleStyle.Render("  UPLOAD AUDIO"))
	lines = append(lines, m.renderInput("File name", m.uploadInput))
	if m.uploadPending {
		lines = append(lines, "  "+ui.PendingStyle.Render("… transcribing upload"))
	}

	lines = append(lines, "")
	lines = append(lines, ui.SectionTitleStyle.Render("  RECORD AUDIO"))
	if m.recording {
		lines = append(lines, "  "+ui.RecordingDotStyle.Render("● REC")+ui.DimStyle.Render("  recording, stops automatically"))
	} else {
		lines = append(lines, "  "+ui.IdleDotStyle.Render("○ idle")+ui.DimStyle.Render("  Ctrl+R to record"))
	}

	lines = append(lines, "")
	lines = append(lines, ui.SectionTitleStyle.Render("  TRANSCRIPT"))
	if m.transcript != "" {
		for _, wl := range wrapText(m.transcript, max(10, m.width-4)) {
			lines = append(lines, "  "+ui.ResultStyle.Render(wl))
		}
	} else {
		lines = append(lines, "  "+ui.DimStyle.Render("Transcript will appear here"))
	}
	return lines
}

func (m Model) renderTTSPane() []string {
	var lines []string

	lines = append(lines, ui.SectionTitleStyle.Render("  ENTER TEXT"))
	lines = append(lines, m.renderInput("Text", m.ttsInput))
	if m.ttsPending {
		lines = append(lines, "  "+ui.PendingStyle.Render("… synthesizing"))
	}

	lines = append(lines, "")
	lines = append(lines, ui.SectionTitleStyle.Render("  GENERATED AUDIO"))
	if m.audioHandle != "" {
		lines = append(lines, "  "+ui.ResultStyle.Render("Your audio is ready: ")+m.audioHandle)
	} else {
		lines = append(lines, "  "+ui.DimStyle.Render("Audio will appear here"))
	}
	return lines
}

func (m Model) renderTranslatePane() []string {
	var lines []string

	lines = append(lines, ui.SectionTitleStyle.Render("  ENGLISH"))
	lines = append(lines, m.renderInput("English text", m.translateInput))

	lines = append(lines, "")
	lines = append(lines, ui.SectionTitleStyle.Render("  KISWAHILI"))
	switch {
	case m.translatePending:
		lines = append(lines, "  "+ui.PendingStyle.Render("… translating"))
	case m.swahiliText != "":
		for _, wl := range wrapText(m.swahiliText, max(10, m.width-4)) {
			lines = append(lines, "  "+ui.ResultStyle.Render(wl))
		}
	default:
		lines = append(lines, "  "+ui.DimStyle.Render("Swahili translation will appear here"))
	}
	return lines
}

func (m Model) renderHistoryPane() []string {
	var lines []string

	if m.history.Empty() {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  No history available for this session"))
		return lines
	}

	textWidth := max(10, m.width-6)

	if len(m.history.Chat) > 0 {
		lines = append(lines, ui.SectionTitleStyle.Render(fmt.Sprintf("  CHAT (%d)", len(m.history.Chat))))
		for _, rec := range m.history.Chat {
			entry := fmt.Sprintf("[%s] %s", rec.Sender, rec.Text)
			lines = append(lines, "    "+truncateToWidth(entry, textWidth))
		}
	}
	if len(m.history.ASR) > 0 {
		lines = append(lines, ui.SectionTitleStyle.Render(fmt.Sprintf("  SPEECH RECOGNITION (%d)", len(m.history.ASR))))
		for _, rec := range m.history.ASR {
			var origin string
			if rec.Source == db.SourceUpload {
				origin = "File: " + rec.FileName
			} else {
				origin = "Voice Recording"
			}
			lines = append(lines, "    "+ui.DimStyle.Render(origin))
			lines = append(lines, "    "+truncateToWidth(rec.Transcript, textWidth))
		}
	}
	if len(m.history.TTS) > 0 {
		lines = append(lines, ui.SectionTitleStyle.Render(fmt.Sprintf("  TEXT TO SPEECH (%d)", len(m.history.TTS))))
		for _, rec := range m.history.TTS {
			lines = append(lines, "    "+truncateToWidth(rec.Text, textWidth))
		}
	}
	if len(m.history.Translation) > 0 {
		lines = append(lines, ui.SectionTitleStyle.Render(fmt.Sprintf("  TRANSLATION (%d)", len(m.history.Translation))))
		for _, rec := range m.history.Translation {
			lines = append(lines, "    "+truncateToWidth(rec.English+" → "+rec.Swahili, textWidth))
		}
	}
	return lines
}

func (m Model) renderInput(label, value string) string {
	return "  " + ui.InputPromptStyle.Render(label+" > ") + value + "▌"
}

func (m Model) renderModal() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, ui.ModalTitleStyle.Render("  CREATE NEW SESSION"))
	lines = append(lines, "")
	lines = append(lines, m.renderInput("Session name", m.sessionInput))
	lines = append(lines, "")
	lines = append(lines, "  "+ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Create")+
		"  "+ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Cancel"))
	if m.errorMessage != "" {
		lines = append(lines, "")
		lines = append(lines, "  "+ui.ErrorTextStyle.Render(m.errorMessage))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string
	parts = append(parts, ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Feature"))
	parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Submit"))
	parts = append(parts, ui.FooterKeyStyle.Render("Ctrl+N")+ui.FooterDescStyle.Render(" New Session"))
	parts = append(parts, ui.FooterKeyStyle.Render("Ctrl+S")+ui.FooterDescStyle.Render(" Switch Session"))
	if m.activeTab == TabASR {
		parts = append(parts, ui.FooterKeyStyle.Render("Ctrl+R")+ui.FooterDescStyle.Render(" Record"))
	}
	parts = append(parts, ui.FooterKeyStyle.Render("Ctrl+C")+ui.FooterDescStyle.Render(" Quit"))
	return strings.Join(parts, "  ")
}

// Helpers

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
