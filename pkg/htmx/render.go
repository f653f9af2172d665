package htmx

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// Renderable is anything that renders itself; templ.Component satisfies it.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config holds per-response HTMX settings.
type Config struct {
	OOBComponents []Renderable
	Retarget      string
	Reswap        SwapStrategy
	Reselect      string
	PushURL       string
	Triggers      []string
	Refresh       bool
	StopPolling   bool
}

// RenderOption configures a Config.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders sets the HTMX response headers. It must run before
// WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}

	h := w.Header()
	h.Add(HeaderVary, HeaderHXRequest)

	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if c.Reselect != "" {
		h.Set(HeaderHXReselect, c.Reselect)
	}
	if c.PushURL != "" {
		h.Set(HeaderHXPushURL, c.PushURL)
	}
	if len(c.Triggers) > 0 {
		h.Set(HeaderHXTrigger, strings.Join(c.Triggers, ", "))
	}
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// Write renders main followed by every out-of-band component.
func Write(ctx context.Context, w io.Writer, main Renderable, c *Config) error {
	if main != nil {
		if err := main.Render(ctx, w); err != nil {
			return err
		}
	}
	if c == nil {
		return nil
	}
	for _, oob := range c.OOBComponents {
		if err := oob.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// WithOOB appends out-of-band components.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

// WithRetarget changes the swap target.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap changes the swap strategy.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithReselect picks a subset of the response to swap.
func WithReselect(selector string) RenderOption {
	return func(c *Config) {
		c.Reselect = selector
	}
}

// WithPushURL updates browser history. "false" prevents the update.
func WithPushURL(url string) RenderOption {
	return func(c *Config) {
		c.PushURL = url
	}
}

// WithTrigger fires client-side events once the response is received.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, events...)
	}
}

// WithRefresh forces a full page refresh.
func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}

// WithStopPolling answers a polling request with 286 semantics: the client
// stops its hx-trigger="every ..." loop.
func WithStopPolling() RenderOption {
	return func(c *Config) {
		c.StopPolling = true
	}
}

// StatusStopPolling is the status HTMX treats as "stop polling".
const StatusStopPolling = 286

// Status returns the status code to write: 286 when polling should stop,
// otherwise fallback.
func (c *Config) Status(fallback int) int {
	if c != nil && c.StopPolling {
		return StatusStopPolling
	}
	return fallback
}
