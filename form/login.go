package form

import (
	"context"
	"sync"

	"github.com/mbolis/quick-feedback/model"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

var ErrMissingCredentials = errors.New("username and password are required")

type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) bool
}

// LoginForm is the state behind the admin login modal.
type LoginForm struct {
	auth    Authenticator
	loading atomic.Bool

	mu    sync.Mutex
	creds model.Credentials
}

func NewLoginForm(auth Authenticator) *LoginForm {
	return &LoginForm{auth: auth}
}

func (f *LoginForm) SetUsername(username string) {
	f.mu.Lock()
	f.creds.Username = username
	f.mu.Unlock()
}

func (f *LoginForm) SetPassword(password string) {
	f.mu.Lock()
	f.creds.Password = password
	f.mu.Unlock()
}

func (f *LoginForm) Credentials() model.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds
}

func (f *LoginForm) Loading() bool {
	return f.loading.Load()
}

// Submit logs in with the current credentials. Both must be non-empty,
// otherwise nothing is sent.
func (f *LoginForm) Submit(ctx context.Context) (bool, error) {
	creds := f.Credentials()
	if creds.Username == "" || creds.Password == "" {
		return false, ErrMissingCredentials
	}
	if !f.loading.CAS(false, true) {
		return false, ErrBusy
	}
	defer f.loading.Store(false)

	if !f.auth.Login(ctx, creds) {
		return false, nil
	}

	f.mu.Lock()
	f.creds.Password = ""
	f.mu.Unlock()
	return true, nil
}
