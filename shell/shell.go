package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/form"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/views"
)

const help = `commands:
  set name|email|message <value>   fill a form field (\n for a new line)
  submit                           send the feedback form
  view                             switch between form and feedback list
  lock                             open/close the admin login
  user <name> / pass <password>    fill the admin login
  login                            send the admin login
  close                            dismiss the admin login
  dark                             toggle dark mode
  help                             show this text
  quit                             exit`

// Shell is a line-oriented front end for an App.
type Shell struct {
	app     *app.App
	toaster *views.Toaster
	out     io.Writer
	opts    views.Options
	noColor bool
}

func New(a *app.App, toaster *views.Toaster, out io.Writer, opts views.Options, noColor bool) *Shell {
	return &Shell{app: a, toaster: toaster, out: out, opts: opts, noColor: noColor}
}

// Run mounts the app and executes commands from in until quit, EOF or ctx
// is done.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	sh.app.Mount(ctx)
	sh.Render()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(sh.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(sh.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := sh.Exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// Exec runs a single command and re-renders. It reports whether the
// command asked to quit.
func (sh *Shell) Exec(ctx context.Context, line string) (quit bool) {
	cmd, arg := splitCommand(line)
	log.Debugf("shell.exec: %s", cmd)

	switch cmd {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(sh.out, help)
		return false
	case "set":
		name, value := splitCommand(arg)
		field, ok := form.ParseField(name)
		if !ok {
			fmt.Fprintf(sh.out, "unknown field %q\n", name)
			return false
		}
		sh.app.FeedbackForm.Set(field, unescape(value))
	case "submit":
		sh.app.SendFeedback(ctx)
	case "view":
		sh.app.ToggleView(ctx)
	case "lock":
		sh.app.ToggleAdminModal()
	case "user":
		sh.app.LoginForm.SetUsername(arg)
	case "pass":
		sh.app.LoginForm.SetPassword(arg)
	case "login":
		if !sh.app.ModalVisible() {
			fmt.Fprintln(sh.out, "the admin login is not open")
			return false
		}
		sh.app.SubmitLogin(ctx)
	case "close":
		sh.app.CloseModal()
	case "dark":
		sh.app.ToggleDarkMode()
		sh.opts.Palette = views.PaletteFor(sh.app.DarkMode(), sh.noColor)
		sh.toaster.SetPalette(sh.opts.Palette)
	default:
		fmt.Fprintf(sh.out, "unknown command %q, try help\n", cmd)
		return false
	}

	sh.Render()
	return false
}

// Render draws the whole screen for the current state.
func (sh *Shell) Render() {
	state := sh.app.State()
	views.RenderHeader(sh.out, state.Session.Authenticated, sh.opts)

	listing := sh.app.View() == app.ListView
	views.RenderPanelTitle(sh.out, listing, sh.opts)
	if listing {
		views.RenderFeedbackList(sh.out, state.Feedbacks, sh.opts)
	} else {
		views.RenderForm(sh.out, sh.app.FeedbackForm, sh.opts)
	}

	if sh.app.ModalVisible() {
		fmt.Fprintln(sh.out)
		views.RenderLogin(sh.out, sh.app.LoginForm, sh.opts)
	}
	fmt.Fprintln(sh.out)
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
