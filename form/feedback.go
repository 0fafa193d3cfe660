package form

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/mbolis/quick-feedback/model"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

var (
	ErrInvalid = errors.New("form has invalid fields")
	ErrBusy    = errors.New("a request is already in flight")
)

type Field string

const (
	Name    Field = "name"
	Email   Field = "email"
	Message Field = "message"
)

// Fields lists the feedback form fields in display order.
var Fields = []Field{Name, Email, Message}

func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == strings.ToLower(s) {
			return f, true
		}
	}
	return "", false
}

// FieldError is one failing validation rule.
type FieldError struct {
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// space covers every Unicode space separator, not just ASCII whitespace.
const space = `\s\v\p{Z}\x{feff}`

var emailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)

// ValidateFeedback checks every rule and returns all failures as a
// *multierror.Error of *FieldError, or nil.
func ValidateFeedback(input model.FeedbackInput) error {
	var result *multierror.Error

	if strings.TrimSpace(input.Name) == "" {
		result = multierror.Append(result, &FieldError{Name, "Name is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		result = multierror.Append(result, &FieldError{Email, "Email is required"})
	} else if !emailPattern.MatchString(input.Email) {
		result = multierror.Append(result, &FieldError{Email, "Please enter a valid email"})
	}

	if strings.TrimSpace(input.Message) == "" {
		result = multierror.Append(result, &FieldError{Message, "Feedback message is required"})
	}

	return result.ErrorOrNil()
}

// FieldErrors flattens a validation error into field → message.
func FieldErrors(err error) map[Field]string {
	out := make(map[Field]string)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return out
	}
	for _, e := range merr.Errors {
		var ferr *FieldError
		if errors.As(e, &ferr) {
			out[ferr.Field] = ferr.Message
		}
	}
	return out
}

type Submitter interface {
	SubmitFeedback(ctx context.Context, input model.FeedbackInput) error
}

// FeedbackForm is the state behind the submission form.
type FeedbackForm struct {
	submitter Submitter
	loading   atomic.Bool

	mu     sync.Mutex
	values map[Field]string
	errors map[Field]string
}

func NewFeedbackForm(submitter Submitter) *FeedbackForm {
	return &FeedbackForm{
		submitter: submitter,
		values:    make(map[Field]string),
		errors:    make(map[Field]string),
	}
}

// Set updates a field and clears its error, if any.
func (f *FeedbackForm) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	if f.errors[field] != "" {
		f.errors[field] = ""
	}
}

func (f *FeedbackForm) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Error returns the message shown under field; empty means valid.
func (f *FeedbackForm) Error(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

func (f *FeedbackForm) Input() model.FeedbackInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input()
}

func (f *FeedbackForm) Loading() bool {
	return f.loading.Load()
}

// Validate replaces the current errors with the result of the rules.
func (f *FeedbackForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := ValidateFeedback(f.input())
	f.errors = FieldErrors(err)
	return err
}

// Submit validates and sends the form. A validation failure matches
// ErrInvalid and still carries the *FieldError list. On success every field is reset;
// on failure values and errors are left for the user to retry.
func (f *FeedbackForm) Submit(ctx context.Context) error {
	if err := f.Validate(); err != nil {
		return multierror.Append(ErrInvalid, err)
	}
	if !f.loading.CAS(false, true) {
		return ErrBusy
	}
	defer f.loading.Store(false)

	input := f.Input()
	if err := f.submitter.SubmitFeedback(ctx, input); err != nil {
		return err
	}

	f.mu.Lock()
	f.values = make(map[Field]string)
	f.errors = make(map[Field]string)
	f.mu.Unlock()
	return nil
}

func (f *FeedbackForm) input() model.FeedbackInput {
	return model.FeedbackInput{
		Name:    f.values[Name],
		Email:   f.values[Email],
		Message: f.values[Message],
	}
}
