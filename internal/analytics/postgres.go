package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS navigation_events (
	id           BIGSERIAL PRIMARY KEY,
	session_id   UUID        NOT NULL,
	event_type   TEXT        NOT NULL,
	category_key TEXT        NOT NULL DEFAULT '',
	topic_id     TEXT        NOT NULL DEFAULT '',
	data         JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS navigation_events_session_idx
	ON navigation_events (session_id, created_at);
`

// PostgresEventLogger inserts events into the navigation_events table.
type PostgresEventLogger struct {
	pool *pgxpool.Pool
}

func NewPostgresEventLogger(pool *pgxpool.Pool) *PostgresEventLogger {
	return &PostgresEventLogger{pool: pool}
}

// EnsureSchema creates the events table if it does not exist.
func (l *PostgresEventLogger) EnsureSchema(ctx context.Context) error {
	if l == nil || l.pool == nil {
		return fmt.Errorf("event logger pool is nil")
	}
	if _, err := l.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create navigation_events: %w", err)
	}
	return nil
}

func (l *PostgresEventLogger) LogEvent(ctx context.Context, event Event) error {
	if l == nil || l.pool == nil {
		return fmt.Errorf("event logger pool is nil")
	}
	if err := event.validate(); err != nil {
		return err
	}

	payload := event.Data
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err = l.pool.Exec(ctx,
		`INSERT INTO navigation_events (session_id, event_type, category_key, topic_id, data, created_at)
		 VALUES ($1::uuid, $2, $3, $4, $5::jsonb, $6)`,
		event.SessionID,
		event.EventType,
		event.CategoryKey,
		event.TopicID,
		string(data),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	logged(event, "postgres")
	return nil
}

// TopicCount is how often a topic was opened.
type TopicCount struct {
	CategoryKey string
	TopicID     string
	Views       int64
}

// TopTopics returns the most selected topics, most viewed first.
func (l *PostgresEventLogger) TopTopics(ctx context.Context, limit int) ([]TopicCount, error) {
	if l == nil || l.pool == nil {
		return nil, fmt.Errorf("event logger pool is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := l.pool.Query(ctx,
		`SELECT category_key, topic_id, count(*)
		 FROM navigation_events
		 WHERE event_type IN ($1, $2) AND topic_id <> ''
		 GROUP BY category_key, topic_id
		 ORDER BY count(*) DESC, category_key, topic_id
		 LIMIT $3`,
		EventCategorySelected, EventTopicSelected, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top topics: %w", err)
	}
	defer rows.Close()

	var out []TopicCount
	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.CategoryKey, &tc.TopicID, &tc.Views); err != nil {
			return nil, fmt.Errorf("scan top topics: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
