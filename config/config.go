package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/mbolis/quick-feedback/log"
)

const (
	DefaultAPIURL   = "http://localhost:5000/api"
	DefaultTimezone = "Asia/Kolkata"
	DefaultWidth    = 100
)

type Config struct {
	APIURL   string
	Timeout  time.Duration
	Timezone string
	Width    int
	NoColor  bool
	Debug    bool
}

// ParseFlags reads the command line, seeding each default from the
// environment (and an optional .env file in the working directory).
func ParseFlags() (Config, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(flags *flag.FlagSet, args []string) (cfg Config, err error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("config.dotenv: %s", err)
	}

	columns, err := envInt("COLUMNS", DefaultWidth)
	if err != nil {
		return
	}
	width, err := envInt("FORMSLY_WIDTH", columns)
	if err != nil {
		return
	}
	debug, err := envBool("FORMSLY_DEBUG", false)
	if err != nil {
		return
	}
	noColor, err := envBool("FORMSLY_NO_COLOR", false)
	if err != nil {
		return
	}

	flags.StringVar(&cfg.APIURL, "api-url", envString("FORMSLY_API_URL", DefaultAPIURL), "base URL of the feedback API, e.g. https://host/api")
	flags.DurationVar(&cfg.Timeout, "timeout", 0, "per-request timeout (default none)")
	flags.StringVar(&cfg.Timezone, "tz", envString("FORMSLY_TIMEZONE", DefaultTimezone), "IANA time zone used to display submission times")
	flags.IntVar(&cfg.Width, "width", width, "terminal width in columns; below 64 the compact date format is used")
	flags.BoolVar(&cfg.NoColor, "no-color", noColor, "disable ANSI colors")
	flags.BoolVar(&cfg.Debug, "debug", debug, "log at DEBUG level")
	if err = flags.Parse(args); err != nil {
		return
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	err = cfg.Validate()
	return
}

func (cfg Config) Validate() error {
	if cfg.APIURL == "" {
		return errors.New("missing parameter -api-url")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid -api-url %q: %w", cfg.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid -api-url %q: scheme must be http or https", cfg.APIURL)
	}
	if cfg.Timeout < 0 {
		return errors.New("-timeout must not be negative")
	}
	if cfg.Width <= 0 {
		return fmt.Errorf("invalid -width %d", cfg.Width)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid -tz %q: %w", cfg.Timezone, err)
	}
	return nil
}

// Narrow reports whether the terminal is too small for the full date format.
func (cfg Config) Narrow() bool {
	return cfg.Width < 64
}

func envString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func envBool(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
