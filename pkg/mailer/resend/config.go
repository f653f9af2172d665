package resend

// Config holds Resend credentials, parsed with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" envDefault:"portfolio@resend.dev"`
	SenderName  string `env:"RESEND_FROM_NAME" envDefault:"Portfolio"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
