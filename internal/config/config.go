package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	APIBaseURL  string        // backend REST base, e.g. http://localhost:5600/api
	HTTPTimeout time.Duration // explicit per-request timeout
	SessionFile string        // where the bearer token and profile persist
	SentryDSN   string        // optional, enables server error capture
	Env         string        // either prod or dev
}

func LoadConfig() (Config, error) {
	// .env is a local convenience, absence is not an error
	_ = godotenv.Load()

	apiBaseURL := os.Getenv("JOBPORT_API_BASE_URL")
	if apiBaseURL == "" {
		return Config{}, fmt.Errorf("JOBPORT_API_BASE_URL cannot be empty")
	}
	timeout := 15 * time.Second
	if raw := os.Getenv("JOBPORT_HTTP_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to parse JOBPORT_HTTP_TIMEOUT %q", raw)
		}
		timeout = parsed
	}
	sessionFile := os.Getenv("JOBPORT_SESSION_FILE")
	if sessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, errors.Wrap(err, "unable to locate user config dir for session file")
		}
		sessionFile = filepath.Join(dir, "jobport", "session.json")
	}
	env := os.Getenv("JOBPORT_ENV")
	if env == "" {
		env = "dev"
	}

	return Config{
		APIBaseURL:  apiBaseURL,
		HTTPTimeout: timeout,
		SessionFile: sessionFile,
		SentryDSN:   os.Getenv("JOBPORT_SENTRY_DSN"),
		Env:         env,
	}, nil
}
