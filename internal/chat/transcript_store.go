package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	transcriptKeyPrefix = "webchat_transcript:"

	// transcriptTTL bounds how long an idle session's history survives.
	// Refreshed on every append.
	transcriptTTL = 24 * time.Hour
)

// TranscriptStore mirrors a session's MessageLog into Redis so history
// survives WebSocket reconnects and page reloads within the TTL window.
// A nil store is a no-op, so callers don't have to branch on configuration.
type TranscriptStore struct {
	redis       *redis.Client
	maxMessages int64
}

// NewTranscriptStore creates a store. maxMessages <= 0 disables trimming.
func NewTranscriptStore(redisClient *redis.Client, maxMessages int64) *TranscriptStore {
	if redisClient == nil {
		return nil
	}
	return &TranscriptStore{redis: redisClient, maxMessages: maxMessages}
}

// Append pushes one message onto the session's transcript list.
func (s *TranscriptStore) Append(ctx context.Context, sessionID string, msg Message) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if sessionID == "" {
		return errors.New("chat: transcript sessionID required")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("chat: marshal transcript message: %w", err)
	}

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, transcriptTTL)
	if s.maxMessages > 0 {
		pipe.LTrim(ctx, key, -s.maxMessages, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("chat: append transcript message: %w", err)
	}
	return nil
}

// List returns up to limit most recent messages in chronological order.
// limit <= 0 returns the full transcript.
func (s *TranscriptStore) List(ctx context.Context, sessionID string, limit int64) ([]Message, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if sessionID == "" {
		return nil, errors.New("chat: transcript sessionID required")
	}

	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("chat: list transcript messages: %w", err)
	}

	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// Skip corrupt entries rather than failing the whole replay.
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}
