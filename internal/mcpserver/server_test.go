package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sauti-app/sauti/internal/db"
	"github.com/sauti-app/sauti/internal/sim"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("content items = %d, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	if result.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, result))
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func TestCreateSessionTool(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleCreateSession(context.Background(), callRequest(map[string]any{"name": "Work"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var info sessionInfo
	decodeResult(t, result, &info)
	if info.Name != "Work" {
		t.Errorf("name = %q, want Work", info.Name)
	}
	if !info.Active {
		t.Error("created session should be active")
	}

	active, err := s.store.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.ID != info.ID {
		t.Errorf("active session = %d, want %d", active.ID, info.ID)
	}
}

func TestCreateSessionToolBlankName(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleCreateSession(context.Background(), callRequest(map[string]any{"name": "  "}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("blank name should return a tool error")
	}
	if !strings.Contains(resultText(t, result), "blank") {
		t.Errorf("error text = %q", resultText(t, result))
	}
}

func TestSetActiveSessionToolNotFound(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleSetActiveSession(context.Background(), callRequest(map[string]any{"session_id": 99}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("unknown session should return a tool error")
	}
}

func TestListSessionsTool(t *testing.T) {
	s := newTestServer(t)

	if _, err := s.store.CreateSession("Second"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	result, err := s.handleListSessions(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var infos []sessionInfo
	decodeResult(t, result, &infos)
	if len(infos) != 2 {
		t.Fatalf("sessions = %d, want 2", len(infos))
	}
	if infos[0].Name != db.DefaultSessionName || infos[0].Active {
		t.Errorf("first = %+v", infos[0])
	}
	if infos[1].Name != "Second" || !infos[1].Active {
		t.Errorf("second = %+v", infos[1])
	}
}

func TestChatSendTool(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleChatSend(context.Background(), callRequest(map[string]any{"text": "hello"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var chat chatResult
	decodeResult(t, result, &chat)
	if chat.UserText != "hello" {
		t.Errorf("user text = %q", chat.UserText)
	}
	if chat.BotReply != sim.BotReply {
		t.Errorf("bot reply = %q", chat.BotReply)
	}
}

func TestTranscribeUploadTool(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleTranscribeUpload(context.Background(), callRequest(map[string]any{"file_name": "clip.wav"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var transcript transcriptResult
	decodeResult(t, result, &transcript)
	if transcript.Source != string(db.SourceUpload) {
		t.Errorf("source = %q", transcript.Source)
	}
	if transcript.FileName != "clip.wav" {
		t.Errorf("file name = %q", transcript.FileName)
	}
	if transcript.Transcript != sim.UploadTranscript {
		t.Errorf("transcript = %q", transcript.Transcript)
	}
}

func TestStartRecordingTool(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleStartRecording(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var transcript transcriptResult
	decodeResult(t, result, &transcript)
	if transcript.Source != string(db.SourceRecording) {
		t.Errorf("source = %q", transcript.Source)
	}
	if transcript.Transcript != sim.RecordingTranscript {
		t.Errorf("transcript = %q", transcript.Transcript)
	}
	if s.asr.Recording() {
		t.Error("inline recording should have completed")
	}
}

func TestSynthesizeSpeechTool(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleSynthesizeSpeech(context.Background(), callRequest(map[string]any{"text": "habari"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var audio audioResult
	decodeResult(t, result, &audio)
	if audio.Text != "habari" {
		t.Errorf("text = %q", audio.Text)
	}
	if audio.Audio != sim.AudioPlaceholder {
		t.Errorf("audio = %q", audio.Audio)
	}
}

func TestTranslateTextTool(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleTranslateText(context.Background(), callRequest(map[string]any{"text": "hello"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var translation translationResult
	decodeResult(t, result, &translation)
	if translation.English != "hello" {
		t.Errorf("english = %q", translation.English)
	}
	if translation.Swahili != "Jambo" {
		t.Errorf("swahili = %q", translation.Swahili)
	}
}

func TestSessionHistoryToolDefaultsToActive(t *testing.T) {
	s := newTestServer(t)

	if _, err := s.handleChatSend(context.Background(), callRequest(map[string]any{"text": "hi"})); err != nil {
		t.Fatalf("chat send: %v", err)
	}
	if _, err := s.handleTranslateText(context.Background(), callRequest(map[string]any{"text": "water"})); err != nil {
		t.Fatalf("translate: %v", err)
	}

	result, err := s.handleSessionHistory(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var history historyResult
	decodeResult(t, result, &history)
	if len(history.Entries) != 3 {
		t.Fatalf("entries = %d, want 3 (user, bot, translation)", len(history.Entries))
	}
	if history.Entries[0].Domain != string(db.DomainChat) {
		t.Errorf("first domain = %q", history.Entries[0].Domain)
	}
	if history.Entries[2].Domain != string(db.DomainTranslation) {
		t.Errorf("last domain = %q", history.Entries[2].Domain)
	}
}

func TestSessionHistoryToolExplicitSession(t *testing.T) {
	s := newTestServer(t)

	defaultSession, err := s.store.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if _, err := s.handleChatSend(context.Background(), callRequest(map[string]any{"text": "hi"})); err != nil {
		t.Fatalf("chat send: %v", err)
	}
	if _, err := s.store.CreateSession("Empty"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	result, err := s.handleSessionHistory(context.Background(), callRequest(map[string]any{"session_id": int(defaultSession.ID)}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var history historyResult
	decodeResult(t, result, &history)
	if history.Session != defaultSession.ID {
		t.Errorf("session = %d, want %d", history.Session, defaultSession.ID)
	}
	if len(history.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(history.Entries))
	}

	result, err = s.handleSessionHistory(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	decodeResult(t, result, &history)
	if len(history.Entries) != 0 {
		t.Errorf("entries = %d, want 0 for the new active session", len(history.Entries))
	}
}
