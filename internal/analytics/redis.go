package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// streamMaxLen caps the stream; trimming is approximate.
const streamMaxLen = 100_000

// RedisStreamLogger appends events to a Redis stream for downstream
// consumers.
type RedisStreamLogger struct {
	client *redis.Client
	stream string
}

func NewRedisStreamLogger(client *redis.Client, stream string) *RedisStreamLogger {
	return &RedisStreamLogger{client: client, stream: stream}
}

func (l *RedisStreamLogger) LogEvent(ctx context.Context, event Event) error {
	if l == nil || l.client == nil {
		return fmt.Errorf("event logger client is nil")
	}
	if err := event.validate(); err != nil {
		return err
	}

	values, err := streamValues(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err = l.client.XAdd(ctx, &redis.XAddArgs{
		Stream: l.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", l.stream, err)
	}

	logged(event, "redis")
	return nil
}

// streamValues flattens an event into stream entry fields.
func streamValues(event Event) (map[string]any, error) {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	values := map[string]any{
		"session_id": event.SessionID,
		"type":       event.EventType,
		"category":   event.CategoryKey,
		"topic":      event.TopicID,
		"created_at": createdAt.UTC().Format(time.RFC3339Nano),
	}
	if len(event.Data) > 0 {
		data, err := json.Marshal(event.Data)
		if err != nil {
			return nil, fmt.Errorf("marshal event data: %w", err)
		}
		values["data"] = string(data)
	}
	return values, nil
}
