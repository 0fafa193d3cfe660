package app

import (
	"context"
	"sync"

	"github.com/mbolis/quick-feedback/form"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/store"
	"github.com/pkg/errors"
)

type View int

const (
	FormView View = iota
	ListView
)

func (v View) String() string {
	if v == ListView {
		return "list"
	}
	return "form"
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// App is the root of the UI: it owns what only the screen cares about
// (active panel, modal, dark mode) and routes user actions to the store.
type App struct {
	*store.Store
	FeedbackForm *form.FeedbackForm
	LoginForm    *form.LoginForm

	notify Notifier

	mu        sync.Mutex
	view      View
	modalOpen bool
	darkMode  bool
}

func New(st *store.Store, notify Notifier) *App {
	return &App{
		Store:        st,
		FeedbackForm: form.NewFeedbackForm(st),
		LoginForm:    form.NewLoginForm(st),
		notify:       notify,
	}
}

// Mount runs once at startup.
func (a *App) Mount(ctx context.Context) {
	if a.CheckAuth(ctx) {
		log.Info("session restored")
	}
}

func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) DarkMode() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.darkMode
}

func (a *App) ToggleDarkMode() {
	a.mu.Lock()
	a.darkMode = !a.darkMode
	a.mu.Unlock()
}

// ModalVisible reports whether the login modal is on screen. An
// authenticated session hides it whatever the flag says.
func (a *App) ModalVisible() bool {
	a.mu.Lock()
	open := a.modalOpen
	a.mu.Unlock()
	return open && !a.Authenticated()
}

// ToggleAdminModal is the lock button. It does nothing once logged in.
func (a *App) ToggleAdminModal() {
	if a.Authenticated() {
		return
	}
	a.mu.Lock()
	a.modalOpen = !a.modalOpen
	a.mu.Unlock()
}

func (a *App) CloseModal() {
	a.mu.Lock()
	a.modalOpen = false
	a.mu.Unlock()
}

// ToggleView switches panels. Leaving the list is always allowed; entering
// it needs a session and always refetches.
func (a *App) ToggleView(ctx context.Context) {
	if a.View() == ListView {
		a.setView(FormView)
		return
	}

	if !a.Authenticated() {
		a.notify.Error("Please login as admin to view feedbacks")
		a.mu.Lock()
		a.modalOpen = true
		a.mu.Unlock()
		return
	}

	a.FetchFeedbacks(ctx)
	a.setView(ListView)
}

// SendFeedback submits the feedback form and reports the outcome.
func (a *App) SendFeedback(ctx context.Context) {
	err := a.FeedbackForm.Submit(ctx)
	switch {
	case err == nil:
		a.notify.Success("Feedback submitted successfully!")
	case errors.Is(err, form.ErrInvalid), errors.Is(err, form.ErrBusy):
		// the form shows its own errors; a busy form ignores the click
	default:
		a.notify.Error("Failed to submit feedback")
	}
}

// SubmitLogin sends the modal's credentials; success closes the modal.
func (a *App) SubmitLogin(ctx context.Context) {
	ok, err := a.LoginForm.Submit(ctx)
	switch {
	case errors.Is(err, form.ErrMissingCredentials):
		a.notify.Error("Please enter both username and password")
	case errors.Is(err, form.ErrBusy):
	case err != nil:
		a.notify.Error("Login failed")
	case ok:
		a.notify.Success("Login successful")
		a.CloseModal()
	default:
		a.notify.Error("Invalid credentials")
	}
}

func (a *App) setView(v View) {
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}
