// Package apitest runs an in-process stand-in for the feedback API, with
// the same endpoints, envelopes and cookie session as the real one, plus
// hooks for counting calls and injecting failures.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/mbolis/quick-feedback/model"
)

const (
	CheckAuthPath      = "/api/check-auth"
	LoginPath          = "/api/admin/login"
	SubmitFeedbackPath = "/api/submit-feedback"
	FeedbacksPath      = "/api/feedbacks"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin"
)

// Fault describes how a route misbehaves. The first set field wins, in
// field order.
type Fault struct {
	Hang    bool // block until the client gives up
	Status  int  // reply with this status and success:false
	Reject  bool // reply 200 with success:false
	Garbage bool // reply 200 with a truncated body
}

type Server struct {
	*httptest.Server

	tokenAuth   *jwtauth.JWTAuth
	credentials *credentialsVerifier
	now         func() time.Time

	mu        sync.RWMutex
	feedbacks []feedbackRecord
	calls     map[string]int
	faultsBy  map[string]Fault
}

// NewServer starts a server seeded with the default admin account; it is
// closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		tokenAuth:   jwtauth.New("HS256", []byte(uuid.NewString()), nil),
		credentials: newCredentialsVerifier(),
		now:         time.Now,
		calls:       make(map[string]int),
		faultsBy:    make(map[string]Fault),
	}
	if err := s.credentials.AddUser(AdminUsername, AdminPassword); err != nil {
		t.Fatalf("apitest: %v", err)
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// APIURL is the base URL clients should be configured with.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

func (s *Server) routes() http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Recoverer, s.faults)

	root.Route("/api", func(api chi.Router) {
		api.Post("/admin/login", s.login)
		api.Post("/submit-feedback", s.submitFeedback)

		api.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(s.tokenAuth, jwtauth.TokenFromCookie), admin)
			r.Get("/check-auth", s.checkAuth)
			r.Get("/feedbacks", s.listFeedbacks)
		})
	})

	return root
}

// Seed replaces the stored feedbacks, newest first, and returns them as
// the client would decode them.
func (s *Server) Seed(inputs ...model.FeedbackInput) []model.Feedback {
	records := make([]feedbackRecord, len(inputs))
	out := make([]model.Feedback, len(inputs))
	base := s.now().UTC()
	for i, in := range inputs {
		records[i] = feedbackRecord{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Email:     in.Email,
			Message:   in.Message,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute).Truncate(time.Second),
		}
		out[i] = model.Feedback{
			ID:        model.FeedbackID(records[i].ID),
			Name:      in.Name,
			Email:     in.Email,
			Message:   in.Message,
			CreatedAt: records[i].CreatedAt,
		}
	}

	s.mu.Lock()
	s.feedbacks = records
	s.mu.Unlock()
	return out
}

// Stored returns how many feedbacks the server holds.
func (s *Server) Stored() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.feedbacks)
}

// Calls returns how many requests hit path, e.g. FeedbacksPath.
func (s *Server) Calls(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[path]
}

func (s *Server) SetFault(path string, fault Fault) {
	s.mu.Lock()
	s.faultsBy[path] = fault
	s.mu.Unlock()
}

func (s *Server) ClearFault(path string) {
	s.mu.Lock()
	delete(s.faultsBy, path)
	s.mu.Unlock()
}

func (s *Server) count(path string) {
	s.mu.Lock()
	s.calls[path]++
	s.mu.Unlock()
}

func (s *Server) fault(path string) (Fault, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fault, ok := s.faultsBy[path]
	return fault, ok
}
