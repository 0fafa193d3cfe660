package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/mbolis/quick-feedback/form"
	"github.com/mbolis/quick-feedback/model"
)

// Options carry what every renderer needs besides its data.
type Options struct {
	Palette Palette
	Time    TimeFormat
	Narrow  bool
}

var fieldLabels = map[form.Field]string{
	form.Name:    "Full Name",
	form.Email:   "Email Address",
	form.Message: "Feedback Message",
}

var fieldPlaceholders = map[form.Field]string{
	form.Name:    "John Doe",
	form.Email:   "email@example.com",
	form.Message: "Share your thoughts with us...",
}

func RenderHeader(w io.Writer, authenticated bool, opts Options) {
	p := opts.Palette
	lock := "[locked]"
	if authenticated {
		lock = p.paint(p.Success, "[unlocked]")
	}
	fmt.Fprintf(w, "%s  %s\n\n", p.paint(p.Title, "Formsly"), lock)
}

// RenderPanelTitle prints the heading of the active panel and the label of
// the button that switches to the other one.
func RenderPanelTitle(w io.Writer, listing bool, opts Options) {
	p := opts.Palette
	title, toggle := "Submit Your Feedback", "view: View Feedbacks"
	if listing {
		title, toggle = "Feedback Submissions", "view: Submit Feedback"
	}
	fmt.Fprintf(w, "%s    %s\n\n", p.paint(p.Title, title), p.paint(p.Accent, "("+toggle+")"))
}

func RenderForm(w io.Writer, f *form.FeedbackForm, opts Options) {
	p := opts.Palette
	for _, field := range form.Fields {
		fmt.Fprintf(w, "%s\n", fieldLabels[field])
		value := f.Value(field)
		if value == "" {
			fmt.Fprintf(w, "  %s\n", p.paint(p.Muted, fieldPlaceholders[field]))
		} else {
			fmt.Fprintf(w, "%s\n", indent(value, "  "))
		}
		if msg := f.Error(field); msg != "" {
			fmt.Fprintf(w, "  %s\n", p.paint(p.Error, msg))
		}
	}
	button := "[ Submit Feedback ]"
	if f.Loading() {
		button = "[ Submitting... ]"
	}
	fmt.Fprintf(w, "\n%s\n", p.paint(p.Accent, button))
}

// RenderFeedbackList prints feedbacks in the order given.
func RenderFeedbackList(w io.Writer, feedbacks []model.Feedback, opts Options) {
	p := opts.Palette
	if len(feedbacks) == 0 {
		fmt.Fprintln(w, "No feedback submissions yet.")
		return
	}

	rule := strings.Repeat("-", 40)
	if opts.Narrow {
		rule = strings.Repeat("-", 20)
	}
	for i, fb := range feedbacks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		stamp := p.paint(p.Muted, opts.Time.Format(fb.CreatedAt, opts.Narrow))
		if opts.Narrow {
			fmt.Fprintf(w, "%s\n%s\n", stamp, fb.Name)
		} else {
			fmt.Fprintf(w, "%s    %s\n", fb.Name, stamp)
		}
		fmt.Fprintf(w, "%s\n", p.paint(p.Muted, fb.Email))
		fmt.Fprintf(w, "%s\n", p.paint(p.Muted, rule))
		fmt.Fprintf(w, "%s\n", indent(fb.Message, "  "))
	}
}

func RenderLogin(w io.Writer, f *form.LoginForm, opts Options) {
	p := opts.Palette
	creds := f.Credentials()
	fmt.Fprintf(w, "%s\n", p.paint(p.Title, "Admin Login"))

	username := creds.Username
	if username == "" {
		username = p.paint(p.Muted, "Admin username")
	}
	password := strings.Repeat("*", len(creds.Password))
	if password == "" {
		password = p.paint(p.Muted, "Admin password")
	}
	fmt.Fprintf(w, "Username  %s\n", username)
	fmt.Fprintf(w, "Password  %s\n", password)

	button := "[ Login ]"
	if f.Loading() {
		button = "[ Logging in... ]"
	}
	fmt.Fprintf(w, "%s    %s\n", p.paint(p.Accent, button), p.paint(p.Muted, "(close: dismiss)"))
}

func indent(s, prefix string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
