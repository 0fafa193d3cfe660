package views

import (
	"fmt"
	"io"
	"sync"

	"github.com/mbolis/quick-feedback/log"
)

// Toaster prints notifications as single lines, top-right style toasts
// being out of reach in a terminal.
type Toaster struct {
	mu      sync.Mutex
	w       io.Writer
	palette Palette
}

func NewToaster(w io.Writer, palette Palette) *Toaster {
	return &Toaster{w: w, palette: palette}
}

func (t *Toaster) SetPalette(palette Palette) {
	t.mu.Lock()
	t.palette = palette
	t.mu.Unlock()
}

func (t *Toaster) Success(msg string) {
	log.Debugf("toast.success: %s", msg)
	t.print(true, "✔ "+msg)
}

func (t *Toaster) Error(msg string) {
	log.Debugf("toast.error: %s", msg)
	t.print(false, "✖ "+msg)
}

func (t *Toaster) print(ok bool, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	color := t.palette.Error
	if ok {
		color = t.palette.Success
	}
	fmt.Fprintln(t.w, t.palette.paint(color, msg))
}
