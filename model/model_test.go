package model_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/mbolis/quick-feedback/model"
)

func TestFeedbackAcceptsIDForms(t *testing.T) {
	cases := []struct {
		name string
		body string
		want model.FeedbackID
	}{
		{name: "numeric id", body: `{"id":1,"name":"Ada"}`, want: "1"},
		{name: "string id", body: `{"id":"abc","name":"Ada"}`, want: "abc"},
		{name: "mongo id", body: `{"_id":"65f0c1","name":"Ada"}`, want: "65f0c1"},
		{name: "missing id", body: `{"name":"Ada"}`, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fb model.Feedback
			if err := json.Unmarshal([]byte(tc.body), &fb); err != nil {
				t.Fatalf("unmarshal err: %v", err)
			}
			if fb.ID != tc.want {
				t.Fatalf("unexpected id: got %q want %q", fb.ID, tc.want)
			}
			if fb.Name != "Ada" {
				t.Fatalf("unexpected name: %q", fb.Name)
			}
		})
	}
}

func TestFeedbackCreatedAt(t *testing.T) {
	var fb model.Feedback
	body := `{"_id":"x","createdAt":"2024-03-05T09:30:00.000Z","message":"line one\nline two"}`
	if err := json.Unmarshal([]byte(body), &fb); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	want := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	if !fb.CreatedAt.Equal(want) {
		t.Fatalf("unexpected createdAt: %s", fb.CreatedAt)
	}
	if fb.Message != "line one\nline two" {
		t.Fatalf("line breaks lost: %q", fb.Message)
	}
}
