package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// Message is a single entry in a widget conversation. Messages are immutable
// once appended.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage builds a message with a fresh ID and timestamp.
func NewMessage(sender Sender, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// MessageLog is the append-only ordered transcript of one widget session.
// Appends never reorder or remove earlier entries.
type MessageLog struct {
	mu       sync.RWMutex
	messages []Message
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Append pushes a message to the end of the log and returns it.
func (l *MessageLog) Append(msg Message) Message {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
	return msg
}

// All returns a copy of the full ordered transcript.
func (l *MessageLog) All() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len reports the number of messages appended so far.
func (l *MessageLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
