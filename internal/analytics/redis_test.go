package analytics

import (
	"testing"
	"time"
)

func TestStreamValues(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	values, err := streamValues(Event{
		SessionID:   "s",
		EventType:   EventQuestionToggled,
		CategoryKey: "oop",
		TopicID:     "encapsulation",
		Data:        map[string]any{"question": 3, "expanded": true},
		CreatedAt:   at,
	})
	if err != nil {
		t.Fatalf("streamValues() error = %v", err)
	}

	want := map[string]string{
		"session_id": "s",
		"type":       "question_toggled",
		"category":   "oop",
		"topic":      "encapsulation",
		"created_at": "2026-03-01T12:00:00Z",
		"data":       `{"expanded":true,"question":3}`,
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("values[%q] = %v, want %q", k, values[k], v)
		}
	}
}

func TestStreamValues_NoData(t *testing.T) {
	values, err := streamValues(Event{SessionID: "s", EventType: EventSessionStarted})
	if err != nil {
		t.Fatalf("streamValues() error = %v", err)
	}
	if _, ok := values["data"]; ok {
		t.Error("data field should be omitted when empty")
	}
	if values["created_at"] == "" {
		t.Error("created_at should default to now")
	}
}
