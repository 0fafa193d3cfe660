package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mbolis/quick-feedback/api"
	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/config"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/shell"
	"github.com/mbolis/quick-feedback/store"
	"github.com/mbolis/quick-feedback/views"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.SetOutput(os.Stderr)

	client, err := api.FromConfig(cfg)
	if err != nil {
		log.Fatal("main.api:", err)
	}

	timeFormat, err := views.NewTimeFormat(cfg.Timezone)
	if err != nil {
		log.Fatal("main.timezone:", err)
	}
	noColor := cfg.NoColor || !views.ColorEnabled(os.Stdout)
	opts := views.Options{
		Palette: views.PaletteFor(false, noColor),
		Time:    timeFormat,
		Narrow:  cfg.Narrow(),
	}

	toaster := views.NewToaster(os.Stdout, opts.Palette)
	root := app.New(store.New(client), toaster)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	log.Infof("using API at %s", cfg.APIURL)
	err = shell.New(root, toaster, os.Stdout, opts, noColor).Run(ctx, os.Stdin)
	stop()
	if err != nil {
		log.Errorf("main.shell: %s", err)
		os.Exit(1)
	}
}
