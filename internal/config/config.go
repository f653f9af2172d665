// Package config loads application settings from the environment and
// optional dotenv files.
//
// Every section reuses the Config type of the package it configures, so a
// setting is declared once, next to the code that reads it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/pkg/cookie"
	"github.com/moethet/portfolio/pkg/logger"
	"github.com/moethet/portfolio/pkg/mailer"
	"github.com/moethet/portfolio/pkg/mailer/resend"
	"github.com/moethet/portfolio/pkg/ratelimit"
	"github.com/moethet/portfolio/pkg/redis"
	"github.com/moethet/portfolio/pkg/storage"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full application configuration.
type Config struct {
	HTTP      HTTP
	Cookie    Cookie
	I18n      I18n
	Contact   Contact `envPrefix:"CONTACT_"`
	CV        CV      `envPrefix:"CV_"`
	Log       logger.Config
	Sentry    logger.SentryConfig
	Mailer    mailer.Config
	Resend    resend.Config
	Redis     redis.Config
	RateLimit ratelimit.Config
}

// HTTP configures the server.
type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// TrustProxy makes the rate limiter key on X-Forwarded-For.
	TrustProxy bool `env:"HTTP_TRUST_PROXY"`
}

// Cookie configures the signed cookies that carry the visitor id.
type Cookie struct {
	Secret          string   `env:"COOKIE_SECRET"`
	// PreviousSecrets still verify cookies signed before a rotation.
	PreviousSecrets []string `env:"COOKIE_PREVIOUS_SECRETS" envSeparator:","`
	Domain          string   `env:"COOKIE_DOMAIN"`
	Secure          bool     `env:"COOKIE_SECURE" envDefault:"true"`
}

// I18n lists the served languages.
type I18n struct {
	Languages       []string `env:"I18N_LANGUAGES" envSeparator:"," envDefault:"en,my"`
	DefaultLanguage string   `env:"I18N_DEFAULT_LANGUAGE" envDefault:"en"`

	// CookieMaxAge is how long a chosen language is remembered.
	CookieMaxAge time.Duration `env:"I18N_COOKIE_MAX_AGE" envDefault:"8760h"`
}

// Contact configures the contact form workflow and its per-visitor registry.
type Contact struct {
	// Recipient receives contact messages. Empty means the email in the
	// default-language profile.
	Recipient       string        `env:"RECIPIENT"`
	ResetDelay      time.Duration `env:"RESET_DELAY" envDefault:"5s"`
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1m"`
	MaxVisitors     int           `env:"MAX_VISITORS" envDefault:"10000"`
	Rules           contact.Rules
}

// CV selects where the résumé is served from. Without a bucket the bundled
// file is used.
type CV struct {
	Storage  storage.Config
	Key      string        `env:"KEY" envDefault:"cv-resume.pdf"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	MaxSize  int64         `env:"MAX_SIZE" envDefault:"10485760"`
}

// Load reads the configuration like Read and validates it.
func Load(files ...string) (*Config, error) {
	cfg, err := Read(files...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read parses the given dotenv files, then the process environment, which
// takes precedence. Missing files are skipped. The process environment is
// never modified.
func Read(files ...string) (*Config, error) {
	vars, err := readDotenv(files...)
	if err != nil {
		return nil, err
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	if err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return &cfg, nil
}

// readDotenv merges files in order; the first file to set a key wins.
func readDotenv(files ...string) (map[string]string, error) {
	vars := make(map[string]string)
	for _, name := range files {
		m, err := godotenv.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", name, err)
		}
		for k, v := range m {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}
	return vars, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if err := cookie.CheckSecret(c.Cookie.Secret); err != nil {
		errs = append(errs, fmt.Errorf("COOKIE_SECRET: %w", err))
	}
	for _, prev := range c.Cookie.PreviousSecrets {
		if err := cookie.CheckSecret(prev); err != nil {
			errs = append(errs, fmt.Errorf("COOKIE_PREVIOUS_SECRETS: %w", err))
			break
		}
	}
	if len(c.I18n.Languages) == 0 {
		errs = append(errs, errors.New("I18N_LANGUAGES: at least one language is required"))
	} else if !slices.Contains(c.I18n.Languages, c.I18n.DefaultLanguage) {
		errs = append(errs, fmt.Errorf("I18N_DEFAULT_LANGUAGE: %q is not in I18N_LANGUAGES", c.I18n.DefaultLanguage))
	}
	if err := c.Contact.Rules.Check(); err != nil {
		errs = append(errs, err)
	}
	if c.Contact.ResetDelay <= 0 || c.Contact.DispatchTimeout <= 0 {
		errs = append(errs, errors.New("CONTACT_RESET_DELAY and CONTACT_DISPATCH_TIMEOUT must be positive"))
	}
	if err := c.RateLimit.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.CV.Storage.Enabled() && c.CV.Key == "" {
		errs = append(errs, errors.New("CV_KEY: required when CV_S3_BUCKET is set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
