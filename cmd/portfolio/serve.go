package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/moethet/portfolio/assets"
	"github.com/moethet/portfolio/internal/config"
	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/internal/cv"
	"github.com/moethet/portfolio/internal/handlers"
	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/middlewares"
	"github.com/moethet/portfolio/pkg/cookie"
	"github.com/moethet/portfolio/pkg/i18n"
	"github.com/moethet/portfolio/pkg/logger"
	"github.com/moethet/portfolio/pkg/mailer"
	"github.com/moethet/portfolio/pkg/mailer/resend"
	"github.com/moethet/portfolio/pkg/ratelimit"
	"github.com/moethet/portfolio/pkg/redis"
	"github.com/moethet/portfolio/pkg/storage"
)

const sentryFlushTimeout = 2 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.envFiles...)
			if err != nil {
				return err
			}

			sentryCfg := cfg.Sentry
			if sentryCfg.Release == "" {
				sentryCfg.Release = version
			}
			log := logger.NewWithSentry(cfg.Log, sentryCfg,
				middlewares.RequestIDExtractor(),
				middlewares.VisitorIDExtractor(),
				middlewares.LanguageExtractor(),
			)
			defer logger.Flush(sentryFlushTimeout)

			srv, err := newServer(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("startup failed", "error", err)
				return err
			}
			return srv.run(cmd.Context(), cfg)
		},
	}
}

// server is the wired application plus everything that must be released
// on shutdown.
type server struct {
	app     *web.App
	log     *slog.Logger
	closers []func(context.Context) error
}

func newServer(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *server, err error) {
	s := &server{log: log}
	defer func() {
		if err != nil {
			err = errors.Join(err, s.shutdown(context.Background()))
		}
	}()

	catalog, err := content.NewCatalog(assets.FS, cfg.I18n.Languages...)
	if err != nil {
		return nil, err
	}
	translations, err := newI18n(cfg.I18n, log)
	if err != nil {
		return nil, err
	}

	dispatcher, err := newDispatcher(cfg, log)
	if err != nil {
		return nil, err
	}
	recipient := cfg.Contact.Recipient
	if recipient == "" {
		recipient = catalog.Site(cfg.I18n.DefaultLanguage).Profile.Email
	}
	registry := newRegistry(cfg.Contact, dispatcher, recipient, log)
	s.onShutdown(registry.Shutdown)

	var checks []web.HealthOption

	limiter, err := s.newLimiter(ctx, cfg, &checks)
	if err != nil {
		return nil, err
	}
	var limitOpts []middlewares.RateLimitOption
	if cfg.HTTP.TrustProxy {
		limitOpts = append(limitOpts, middlewares.WithTrustedProxy())
	}

	source, err := s.newCVSource(cfg.CV, &checks)
	if err != nil {
		return nil, err
	}

	site := handlers.NewSite(catalog, registry,
		handlers.WithLanguages(translations.Languages()...),
		handlers.WithLanguageMaxAge(cfg.I18n.CookieMaxAge),
		handlers.WithContactLimit(middlewares.RateLimit(limiter, limitOpts...)),
		handlers.WithCV(content.CV),
	)

	s.app = web.New(
		web.WithLogger(log),
		web.WithCookieOptions(
			cookie.WithSecret(cfg.Cookie.Secret, cfg.Cookie.PreviousSecrets...),
			cookie.WithSecure(cfg.Cookie.Secure),
			cookie.WithDomain(cfg.Cookie.Domain),
		),
		web.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Visitor(),
			middlewares.I18n(translations, middlewares.WithI18nNamespace(uiNamespace)),
		),
		web.WithStaticFiles("/static/", assets.FS, assets.StaticDir),
		web.WithHealthChecks(checks...),
		web.WithHandlers(site, cv.NewHandler(source, content.CV)),
		web.WithErrorHandler(site.HandleError),
		web.WithNotFoundHandler(site.NotFound),
		web.WithMethodNotAllowedHandler(site.MethodNotAllowed),
	)
	return s, nil
}

func (s *server) run(ctx context.Context, cfg *config.Config) error {
	return s.app.Run(cfg.HTTP.Addr,
		web.WithContext(ctx),
		web.Logger(s.log),
		web.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		web.ShutdownHook(s.shutdown),
	)
}

func (s *server) onShutdown(fn func(context.Context) error) {
	s.closers = append(s.closers, fn)
}

// shutdown releases resources in reverse order of acquisition.
func (s *server) shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range slices.Backward(s.closers) {
		errs = append(errs, fn(ctx))
	}
	s.closers = nil
	return errors.Join(errs...)
}

func newI18n(cfg config.I18n, log *slog.Logger) (*i18n.I18n, error) {
	locales, err := fs.Sub(assets.FS, assets.LocalesDir)
	if err != nil {
		return nil, err
	}
	return i18n.New(
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLanguages(cfg.Languages...),
		i18n.WithYAMLDir(locales),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			log.Warn("missing translation", "lang", lang, "namespace", namespace, "key", key)
		}),
	)
}

func newRenderer(layout string) (*mailer.Renderer, error) {
	r := mailer.NewRenderer(assets.FS, mailer.RendererConfig{
		TemplateDir: assets.MailDir,
		LayoutDir:   path.Join(assets.MailDir, "layouts"),
	})
	if err := r.Preload(layout, contact.TemplateContactMessage); err != nil {
		return nil, err
	}
	return r, nil
}

func newDispatcher(cfg *config.Config, log *slog.Logger) (contact.Dispatcher, error) {
	renderer, err := newRenderer(cfg.Mailer.DefaultLayout)
	if err != nil {
		return nil, err
	}

	var sender mailer.Sender
	if cfg.Resend.Enabled() {
		sender = resend.New(cfg.Resend)
	} else {
		log.Warn("RESEND_API_KEY is not set, contact messages are only logged")
		sender = mailer.NewLogSender(log)
	}
	return contact.NewMailDispatcher(mailer.New(sender, renderer, cfg.Mailer)), nil
}

func newRegistry(cfg config.Contact, d contact.Dispatcher, recipient string, log *slog.Logger) *contact.Registry {
	return contact.NewRegistry(func(visitorID string) *contact.Workflow {
		return contact.NewWorkflow(d, recipient,
			contact.WithRules(cfg.Rules),
			contact.WithResetDelay(cfg.ResetDelay),
			contact.WithDispatchTimeout(cfg.DispatchTimeout),
			contact.WithLogger(log.With("visitor_id", visitorID)),
		)
	},
		contact.WithIdleTimeout(cfg.IdleTimeout),
		contact.WithMaxVisitors(cfg.MaxVisitors),
		contact.WithCleanupInterval(cfg.CleanupInterval),
	)
}

// newLimiter uses Redis when configured so limits hold across instances.
func (s *server) newLimiter(ctx context.Context, cfg *config.Config, checks *[]web.HealthOption) (ratelimit.Limiter, error) {
	if !cfg.Redis.Enabled() {
		mem, err := ratelimit.NewMemory(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		s.onShutdown(func(context.Context) error { return mem.Close() })
		return mem, nil
	}

	client, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	s.onShutdown(func(context.Context) error { return client.Close() })
	*checks = append(*checks, web.WithReadinessCheck("redis", redis.Healthcheck(client)))

	return ratelimit.NewRedis(client, cfg.RateLimit)
}

// newCVSource serves the résumé from object storage when a bucket is
// configured, falling back to the bundled copy.
func (s *server) newCVSource(cfg config.CV, checks *[]web.HealthOption) (cv.Source, error) {
	embedded := cv.NewEmbeddedSource(assets.FS, path.Join(assets.StaticDir, assets.CVFile))
	if !cfg.Storage.Enabled() {
		return embedded, nil
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("cv storage: %w", err)
	}
	remote := cv.NewStorageSource(store, cfg.Key,
		cv.WithCacheTTL(cfg.CacheTTL),
		cv.WithMaxSize(cfg.MaxSize),
	)
	s.onShutdown(func(context.Context) error { return remote.Close() })
	*checks = append(*checks, web.WithReadinessCheck("cv-storage", remote.Healthcheck))

	return cv.Fallback(remote, embedded, s.log), nil
}
