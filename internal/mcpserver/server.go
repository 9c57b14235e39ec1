// Package mcpserver exposes the sauti session registry and feature
// simulators as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sauti-app/sauti/internal/db"
	"github.com/sauti-app/sauti/internal/sim"
)

const (
	serverName    = "sauti"
	serverVersion = "0.1.0"
)

// sessionInfo is the wire form of a session.
type sessionInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	Active    bool   `json:"active,omitempty"`
}

type chatResult struct {
	UserText string `json:"userText"`
	BotReply string `json:"botReply"`
	Session  int64  `json:"sessionId"`
}

type transcriptResult struct {
	Source     string `json:"source"`
	FileName   string `json:"fileName,omitempty"`
	Transcript string `json:"transcript"`
	Session    int64  `json:"sessionId"`
}

type audioResult struct {
	Text    string `json:"text"`
	Audio   string `json:"audio"`
	Session int64  `json:"sessionId"`
}

type translationResult struct {
	English string `json:"english"`
	Swahili string `json:"swahili"`
	Session int64  `json:"sessionId"`
}

type historyEntry struct {
	Domain    string `json:"domain"`
	CreatedAt string `json:"createdAt"`

	Sender string `json:"sender,omitempty"`
	Text   string `json:"text,omitempty"`

	Source     string `json:"source,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	Transcript string `json:"transcript,omitempty"`

	English string `json:"english,omitempty"`
	Swahili string `json:"swahili,omitempty"`
}

type historyResult struct {
	Session int64          `json:"sessionId"`
	Entries []historyEntry `json:"entries"`
}

// Server wires the store and simulators into an MCP server. Simulators run
// on an inline scheduler so every tool call completes synchronously.
type Server struct {
	store      *db.Store
	chat       *sim.Chat
	asr        *sim.ASR
	tts        *sim.TTS
	translator *sim.Translator
	mcp        *server.MCPServer

	// last holds the most recent simulator event. Safe because stdio
	// serves one request at a time and the inline scheduler emits before
	// the simulator call returns.
	last any
}

// New builds a Server over the store with inline simulators.
func New(store *db.Store) *Server {
	s := &Server{store: store}
	sched := sim.InlineScheduler{}
	notify := sim.Notifier(func(event any) { s.last = event })

	s.chat = sim.NewChat(store, sched, notify)
	s.asr = sim.NewASR(store, sched, notify)
	s.tts = sim.NewTTS(store, sched, notify)
	s.translator = sim.NewTranslator(store, nil, sched, notify)

	m := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
	)
	s.register(m)
	s.mcp = m
	return s
}

// ServeStdio runs the server over stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) register(m *server.MCPServer) {
	m.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a named session and make it active"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Session name, must not be blank")),
	), s.handleCreateSession)

	m.AddTool(mcp.NewTool("set_active_session",
		mcp.WithDescription("Make an existing session the active one"),
		mcp.WithNumber("session_id", mcp.Required(), mcp.Description("ID of the session to activate")),
	), s.handleSetActiveSession)

	m.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all sessions in creation order, marking the active one"),
	), s.handleListSessions)

	m.AddTool(mcp.NewTool("chat_send",
		mcp.WithDescription("Send a chat message and receive the bot reply"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Message text")),
	), s.handleChatSend)

	m.AddTool(mcp.NewTool("transcribe_upload",
		mcp.WithDescription("Transcribe an uploaded audio file by name"),
		mcp.WithString("file_name", mcp.Required(), mcp.Description("Name of the audio file")),
	), s.handleTranscribeUpload)

	m.AddTool(mcp.NewTool("start_recording",
		mcp.WithDescription("Record from the microphone and transcribe the result"),
	), s.handleStartRecording)

	m.AddTool(mcp.NewTool("synthesize_speech",
		mcp.WithDescription("Synthesize speech audio from text"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to speak")),
	), s.handleSynthesizeSpeech)

	m.AddTool(mcp.NewTool("translate_text",
		mcp.WithDescription("Translate English text to Swahili"),
		mcp.WithString("text", mcp.Required(), mcp.Description("English text")),
	), s.handleTranslateText)

	m.AddTool(mcp.NewTool("session_history",
		mcp.WithDescription("Return all records for a session across every domain"),
		mcp.WithNumber("session_id", mcp.Description("Session ID, defaults to the active session")),
	), s.handleSessionHistory)
}

func (s *Server) handleCreateSession(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := s.store.CreateSession(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sessionInfo{
		ID:        sess.ID,
		Name:      sess.Name,
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
		Active:    true,
	})
}

func (s *Server) handleSetActiveSession(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.SetActive(int64(id)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %d is now active", id)), nil
}

func (s *Server) handleListSessions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.store.Sessions()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	active, err := s.store.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	infos := make([]sessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sessionInfo{
			ID:        sess.ID,
			Name:      sess.Name,
			CreatedAt: sess.CreatedAt.Format(time.RFC3339),
			Active:    sess.ID == active.ID,
		})
	}
	return jsonResult(infos)
}

func (s *Server) handleChatSend(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	user, err := s.chat.Send(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reply, ok := s.last.(sim.ChatReplyEvent)
	if !ok {
		return mcp.NewToolResultError("bot reply was not recorded"), nil
	}
	return jsonResult(chatResult{
		UserText: user.Text,
		BotReply: reply.Record.Text,
		Session:  reply.Record.SessionID,
	})
}

func (s *Server) handleTranscribeUpload(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileName, err := req.RequireString("file_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.asr.TranscribeUpload(fileName); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	event, ok := s.last.(sim.TranscriptEvent)
	if !ok {
		return mcp.NewToolResultError("transcript was not recorded"), nil
	}
	return jsonResult(transcriptResult{
		Source:     string(event.Record.Source),
		FileName:   event.Record.FileName,
		Transcript: event.Record.Transcript,
		Session:    event.Record.SessionID,
	})
}

func (s *Server) handleStartRecording(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.asr.StartRecording(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	event, ok := s.last.(sim.TranscriptEvent)
	if !ok {
		return mcp.NewToolResultError("transcript was not recorded"), nil
	}
	return jsonResult(transcriptResult{
		Source:     string(event.Record.Source),
		Transcript: event.Record.Transcript,
		Session:    event.Record.SessionID,
	})
}

func (s *Server) handleSynthesizeSpeech(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.tts.Synthesize(text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	event, ok := s.last.(sim.AudioReadyEvent)
	if !ok {
		return mcp.NewToolResultError("audio was not recorded"), nil
	}
	return jsonResult(audioResult{
		Text:    event.Record.Text,
		Audio:   event.Handle,
		Session: event.Record.SessionID,
	})
}

func (s *Server) handleTranslateText(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.translator.Translate(text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	event, ok := s.last.(sim.TranslationEvent)
	if !ok {
		return mcp.NewToolResultError("translation was not recorded"), nil
	}
	return jsonResult(translationResult{
		English: event.Record.English,
		Swahili: event.Record.Swahili,
		Session: event.Record.SessionID,
	})
}

func (s *Server) handleSessionHistory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sessionID int64
	if id, err := req.RequireInt("session_id"); err == nil {
		sessionID = int64(id)
	} else {
		active, err := s.store.Active()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sessionID = active.ID
	}

	history, err := s.store.QueryAll(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var entries []historyEntry
	for _, rec := range history.Chat {
		entries = append(entries, historyEntry{
			Domain:    string(db.DomainChat),
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
			Sender:    string(rec.Sender),
			Text:      rec.Text,
		})
	}
	for _, rec := range history.ASR {
		entries = append(entries, historyEntry{
			Domain:     string(db.DomainASR),
			CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
			Source:     string(rec.Source),
			FileName:   rec.FileName,
			Transcript: rec.Transcript,
		})
	}
	for _, rec := range history.TTS {
		entries = append(entries, historyEntry{
			Domain:    string(db.DomainTTS),
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
			Text:      rec.Text,
		})
	}
	for _, rec := range history.Translation {
		entries = append(entries, historyEntry{
			Domain:    string(db.DomainTranslation),
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
			English:   rec.English,
			Swahili:   rec.Swahili,
		})
	}

	return jsonResult(historyResult{Session: sessionID, Entries: entries})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
