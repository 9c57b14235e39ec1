package sim

import (
	"strings"
	"time"

	"github.com/sauti-app/sauti/internal/db"
)

// BotReply is the canned response appended after every user message. This is
// not a conversational model.
const BotReply = "Samahani, ninafanya kazi bado. Tutawasiliana hivi punde."

// DefaultReplyDelay is the modeled latency of the chat backend.
const DefaultReplyDelay = 1000 * time.Millisecond

// Chat simulates a chat backend.
type Chat struct {
	store  *db.Store
	sched  Scheduler
	notify Notifier

	// ReplyDelay is how long the bot reply takes to arrive.
	ReplyDelay time.Duration
}

// NewChat returns a chat simulator with the default reply delay.
func NewChat(store *db.Store, sched Scheduler, notify Notifier) *Chat {
	return &Chat{store: store, sched: sched, notify: notify, ReplyDelay: DefaultReplyDelay}
}

// Send validates the message, appends the user's record immediately, and
// schedules the bot reply. The reply is stamped with whatever session is
// active when it fires, not when the message was sent.
func (c *Chat) Send(text string) (db.ChatRecord, error) {
	if strings.TrimSpace(text) == "" {
		return db.ChatRecord{}, ErrBlankInput
	}

	rec, err := c.store.AppendChat(db.SenderUser, text)
	if err != nil {
		return db.ChatRecord{}, err
	}

	c.sched.After(c.ReplyDelay, func() {
		reply, err := c.store.AppendChat(db.SenderBot, BotReply)
		if err != nil {
			return
		}
		c.notify.emit(ChatReplyEvent{Record: reply})
	})

	return rec, nil
}
