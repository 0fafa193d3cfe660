package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mbolis/quick-feedback/config"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/model"
	"github.com/pkg/errors"
)

// ErrRejected is returned when the server answers with success:false.
var ErrRejected = errors.New("request rejected by server")

const (
	checkAuthPath      = "/check-auth"
	loginPath          = "/admin/login"
	submitFeedbackPath = "/submit-feedback"
	feedbacksPath      = "/feedbacks"
)

// Client talks to the feedback API. Session-bound calls go through the
// credentialed client; submissions are anonymous.
type Client struct {
	baseURL string
	clients httpx.Clients
}

func New(baseURL string, clients httpx.Clients) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		clients: clients,
	}
}

// FromConfig builds a Client with its own cookie jar.
func FromConfig(cfg config.Config) (*Client, error) {
	clients, err := httpx.NewClients(nil, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return New(cfg.APIURL, clients), nil
}

func (c *Client) CheckAuth(ctx context.Context) Result[model.User] {
	user, err := c.session(ctx, http.MethodGet, checkAuthPath, nil)
	if err != nil {
		httpx.LogFailure(log.WarnLevel, "api.check_auth", err)
		return Failed[model.User](err)
	}
	return Succeeded(user)
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) Result[model.User] {
	user, err := c.session(ctx, http.MethodPost, loginPath, creds)
	if err != nil {
		httpx.LogFailure(log.ErrorLevel, "api.login", err)
		return Failed[model.User](err)
	}
	return Succeeded(user)
}

// SubmitFeedback is the only call whose failures are returned as errors:
// the caller decides what to tell the user.
func (c *Client) SubmitFeedback(ctx context.Context, input model.FeedbackInput) (model.Feedback, error) {
	var env model.Envelope
	err := httpx.DoJSON(ctx, c.clients.Anonymous, http.MethodPost, c.baseURL+submitFeedbackPath, input, &env)
	if err != nil {
		return model.Feedback{}, errors.Wrap(err, "submit feedback")
	}
	if !env.Success {
		return model.Feedback{}, errors.Wrap(rejection(env), "submit feedback")
	}

	var created model.Feedback
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &created); err != nil {
			return model.Feedback{}, errors.Wrap(err, "submit feedback: decode data")
		}
	}
	return created, nil
}

func (c *Client) FetchFeedbacks(ctx context.Context) Result[[]model.Feedback] {
	feedbacks, err := c.fetchFeedbacks(ctx)
	if err != nil {
		httpx.LogFailure(log.ErrorLevel, "api.fetch_feedbacks", err)
		return Failed[[]model.Feedback](err)
	}
	return Succeeded(feedbacks)
}

func (c *Client) fetchFeedbacks(ctx context.Context) ([]model.Feedback, error) {
	var env model.Envelope
	err := httpx.DoJSON(ctx, c.clients.Credentialed, http.MethodGet, c.baseURL+feedbacksPath, nil, &env)
	if err != nil {
		return nil, errors.Wrap(err, "fetch feedbacks")
	}
	if !env.Success {
		return nil, errors.Wrap(rejection(env), "fetch feedbacks")
	}

	feedbacks := []model.Feedback{}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &feedbacks); err != nil {
			return nil, errors.Wrap(err, "fetch feedbacks: decode data")
		}
	}
	return feedbacks, nil
}

// session performs a call whose success payload is the envelope's user.
func (c *Client) session(ctx context.Context, method, path string, body any) (model.User, error) {
	var env model.Envelope
	err := httpx.DoJSON(ctx, c.clients.Credentialed, method, c.baseURL+path, body, &env)
	if err != nil {
		return model.User{}, errors.Wrap(err, strings.TrimPrefix(path, "/"))
	}
	if !env.Success {
		return model.User{}, errors.Wrap(rejection(env), strings.TrimPrefix(path, "/"))
	}
	if env.User == nil {
		return model.User{}, nil
	}
	return *env.User, nil
}

func rejection(env model.Envelope) error {
	if env.Message != "" {
		return errors.Wrap(ErrRejected, env.Message)
	}
	return ErrRejected
}
