package apitest

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/mbolis/quick-feedback/model"
)

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    any         `json:"data,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

type feedbackRecord struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) checkAuth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, envelope{Success: true, User: s.adminUser(r)})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := render.DecodeJSON(r.Body, &creds); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, envelope{Success: false, Message: "invalid request body"})
		return
	}

	if err := s.credentials.ValidateUser(creds.Username, creds.Password); err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, envelope{Success: false, Message: "Invalid credentials"})
		return
	}

	_, token, err := s.tokenAuth.Encode(map[string]interface{}{
		"sub":  creds.Username,
		"role": "admin",
	})
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, envelope{Success: false, Message: "could not issue session"})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     sessionCookie,
		Value:    token,
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	render.JSON(w, r, envelope{Success: true, User: &model.User{ID: creds.Username, Username: creds.Username, Role: "admin"}})
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var input model.FeedbackInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, envelope{Success: false, Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Message) == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, envelope{Success: false, Message: "All fields are required"})
		return
	}

	record := feedbackRecord{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.feedbacks = append([]feedbackRecord{record}, s.feedbacks...)
	s.mu.Unlock()

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, envelope{Success: true, Data: record})
}

func (s *Server) listFeedbacks(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	records := append([]feedbackRecord{}, s.feedbacks...)
	s.mu.RUnlock()

	render.JSON(w, r, envelope{Success: true, Data: records})
}

func (s *Server) adminUser(r *http.Request) *model.User {
	_, claims, _ := jwtauth.FromContext(r.Context())
	name, _ := claims["sub"].(string)
	return &model.User{ID: name, Username: name, Role: "admin"}
}
