package sim

import (
	"errors"
	"testing"

	"github.com/sauti-app/sauti/internal/db"
)

func TestChatSendBlank(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	chat := NewChat(store, sched, nil)

	for _, text := range []string{"", "   "} {
		if _, err := chat.Send(text); !errors.Is(err, ErrBlankInput) {
			t.Errorf("Send(%q) err = %v, want ErrBlankInput", text, err)
		}
	}

	if len(sched.pending) != 0 {
		t.Errorf("blank send scheduled %d completions, want 0", len(sched.pending))
	}
	records, _ := store.ChatForSession(1)
	if len(records) != 0 {
		t.Errorf("blank send appended %d records, want 0", len(records))
	}
}

func TestChatSendAppendsUserThenBot(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	sink := &eventSink{}
	chat := NewChat(store, sched, sink.notify)

	rec, err := chat.Send("hi")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if rec.Sender != db.SenderUser || rec.Text != "hi" {
		t.Errorf("user record = %+v", rec)
	}

	// User record lands immediately; the bot reply waits on the timer.
	records, _ := store.ChatForSession(1)
	if len(records) != 1 {
		t.Fatalf("got %d records before reply, want 1", len(records))
	}
	if len(sched.delays) != 1 || sched.delays[0] != DefaultReplyDelay {
		t.Errorf("scheduled delays = %v, want [%v]", sched.delays, DefaultReplyDelay)
	}

	sched.fire()

	records, _ = store.ChatForSession(1)
	if len(records) != 2 {
		t.Fatalf("got %d records after reply, want 2", len(records))
	}
	if records[1].Sender != db.SenderBot {
		t.Errorf("sender = %q, want bot", records[1].Sender)
	}
	if records[1].Text != BotReply {
		t.Errorf("reply = %q, want %q", records[1].Text, BotReply)
	}

	if len(sink.events) != 1 {
		t.Fatalf("got %d events, want 1", len(sink.events))
	}
	if _, ok := sink.events[0].(ChatReplyEvent); !ok {
		t.Errorf("event = %T, want ChatReplyEvent", sink.events[0])
	}
}

func TestChatReplyStampedAtCompletionTime(t *testing.T) {
	store := newTestStore(t)
	sched := &manualScheduler{}
	chat := NewChat(store, sched, nil)

	if _, err := chat.Send("hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// Switch sessions before the reply fires.
	work, _ := store.CreateSession("Work")
	sched.fire()

	defaultChat, _ := store.ChatForSession(1)
	if len(defaultChat) != 1 || defaultChat[0].Sender != db.SenderUser {
		t.Errorf("default session chat = %+v, want only the user message", defaultChat)
	}
	workChat, _ := store.ChatForSession(work.ID)
	if len(workChat) != 1 || workChat[0].Sender != db.SenderBot {
		t.Errorf("work session chat = %+v, want only the bot reply", workChat)
	}
}
