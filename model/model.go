package model

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
)

type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// Session is the client's belief about admin authentication. The server
// cookie is the only source of truth; nothing here expires on its own.
type Session struct {
	Authenticated bool
	User          *User
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type FeedbackInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Feedback struct {
	ID        FeedbackID `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UnmarshalJSON accepts the Mongo-style "_id" key as an alias of "id".
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        FeedbackID `json:"id"`
		MongoID   FeedbackID `json:"_id"`
		Name      string     `json:"name"`
		Email     string     `json:"email"`
		Message   string     `json:"message"`
		CreatedAt time.Time  `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Feedback{
		ID:        raw.ID,
		Name:      raw.Name,
		Email:     raw.Email,
		Message:   raw.Message,
		CreatedAt: raw.CreatedAt,
	}
	if f.ID == "" {
		f.ID = raw.MongoID
	}
	return nil
}

// FeedbackID is opaque to the client: servers send either numbers or strings.
type FeedbackID string

func (id *FeedbackID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FeedbackID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FeedbackID(n.String())
	return nil
}

// Envelope is the shape of every API response.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	User    *User           `json:"user,omitempty"`
}
