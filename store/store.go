package store

import (
	"context"
	"sync"

	"github.com/mbolis/quick-feedback/api"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/model"
)

// Gateway is the remote side of the store. *api.Client implements it.
type Gateway interface {
	CheckAuth(ctx context.Context) api.Result[model.User]
	Login(ctx context.Context, creds model.Credentials) api.Result[model.User]
	SubmitFeedback(ctx context.Context, input model.FeedbackInput) (model.Feedback, error)
	FetchFeedbacks(ctx context.Context) api.Result[[]model.Feedback]
}

// Op names a store mutator, used to look up its last failure.
type Op string

const (
	OpCheckAuth      Op = "check_auth"
	OpLogin          Op = "login"
	OpSubmitFeedback Op = "submit_feedback"
	OpFetchFeedbacks Op = "fetch_feedbacks"
)

// State is a snapshot; mutating it does not affect the store.
type State struct {
	Session   model.Session
	Feedbacks []model.Feedback
}

// Store holds the session and the cached feedback list. It lives as long
// as the application and is shared by every view.
type Store struct {
	gw Gateway

	mu        sync.RWMutex
	session   model.Session
	feedbacks []model.Feedback
	failures  map[Op]error

	subMu       sync.Mutex
	nextSub     int
	subscribers map[int]func(State)
}

func New(gw Gateway) *Store {
	return &Store{
		gw:          gw,
		feedbacks:   []model.Feedback{},
		failures:    make(map[Op]error),
		subscribers: make(map[int]func(State)),
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated
}

// LastFailure returns why op last failed, or nil if its latest call succeeded.
func (s *Store) LastFailure(op Op) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[op]
}

// Subscribe registers fn to run after every mutation.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// CheckAuth re-validates the server session. Any failure, including a
// network error, leaves the store unauthenticated.
func (s *Store) CheckAuth(ctx context.Context) bool {
	res := s.gw.CheckAuth(ctx)
	s.setSession(OpCheckAuth, res)
	return res.OK()
}

// Login establishes a session. Wrong credentials and transport errors
// are not told apart.
func (s *Store) Login(ctx context.Context, creds model.Credentials) bool {
	res := s.gw.Login(ctx, creds)
	s.setSession(OpLogin, res)
	return res.OK()
}

// SubmitFeedback sends input and, on success, applies PrependWhenPopulated
// to the cached list. Failures are returned untouched.
func (s *Store) SubmitFeedback(ctx context.Context, input model.FeedbackInput) error {
	created, err := s.gw.SubmitFeedback(ctx, input)

	s.mu.Lock()
	s.failures[OpSubmitFeedback] = err
	changed := false
	if err == nil {
		s.feedbacks, changed = PrependWhenPopulated(s.feedbacks, created)
	}
	state := s.snapshot()
	s.mu.Unlock()

	if err != nil {
		log.Debugf("store.submit_feedback: %s", err)
		return err
	}
	if changed {
		s.publish(state)
	}
	return nil
}

// FetchFeedbacks replaces the cached list with the server's. On failure
// the list becomes empty rather than stale.
func (s *Store) FetchFeedbacks(ctx context.Context) []model.Feedback {
	res := s.gw.FetchFeedbacks(ctx)

	s.mu.Lock()
	s.failures[OpFetchFeedbacks] = res.Err
	if res.OK() && res.Value != nil {
		s.feedbacks = append([]model.Feedback(nil), res.Value...)
	} else {
		s.feedbacks = []model.Feedback{}
	}
	state := s.snapshot()
	s.mu.Unlock()

	s.publish(state)
	return state.Feedbacks
}

// ClearFeedbacks empties the cached list without contacting the server.
func (s *Store) ClearFeedbacks() {
	s.mu.Lock()
	s.feedbacks = []model.Feedback{}
	state := s.snapshot()
	s.mu.Unlock()

	s.publish(state)
}

func (s *Store) setSession(op Op, res api.Result[model.User]) {
	s.mu.Lock()
	s.failures[op] = res.Err
	if res.OK() {
		user := res.Value
		s.session = model.Session{Authenticated: true, User: &user}
	} else {
		s.session = model.Session{}
	}
	state := s.snapshot()
	s.mu.Unlock()

	s.publish(state)
}

// snapshot must be called with mu held.
func (s *Store) snapshot() State {
	state := State{
		Session:   s.session,
		Feedbacks: append([]model.Feedback{}, s.feedbacks...),
	}
	if s.session.User != nil {
		user := *s.session.User
		state.Session.User = &user
	}
	return state
}

func (s *Store) publish(state State) {
	s.subMu.Lock()
	subscribers := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}
