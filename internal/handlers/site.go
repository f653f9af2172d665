package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/internal/views"
	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/middlewares"
	"github.com/moethet/portfolio/pkg/i18n"
)

// DefaultLanguageMaxAge is how long the language choice is remembered.
const DefaultLanguageMaxAge = 365 * 24 * time.Hour

// Site serves the page and the contact form.
type Site struct {
	catalog      *content.Catalog
	registry     *contact.Registry
	matcher      *i18n.Matcher
	cv           content.CVAsset
	languages    []string
	contactLimit []web.Middleware
	langMaxAge   time.Duration
}

// Option configures a Site.
type Option func(*Site)

// WithLanguages sets the languages offered by the switcher. The first one
// is the default.
func WithLanguages(langs ...string) Option {
	return func(s *Site) {
		if len(langs) > 0 {
			s.languages = langs
		}
	}
}

// WithContactLimit adds middleware to POST /contact only, typically
// middlewares.RateLimit.
func WithContactLimit(mw ...web.Middleware) Option {
	return func(s *Site) {
		s.contactLimit = append(s.contactLimit, mw...)
	}
}

// WithCV sets the résumé linked from the page.
func WithCV(asset content.CVAsset) Option {
	return func(s *Site) {
		s.cv = asset
	}
}

// WithLanguageMaxAge sets the lifetime of the language cookie.
func WithLanguageMaxAge(d time.Duration) Option {
	return func(s *Site) {
		if d > 0 {
			s.langMaxAge = d
		}
	}
}

// NewSite creates the page handler.
func NewSite(catalog *content.Catalog, registry *contact.Registry, opts ...Option) *Site {
	s := &Site{
		catalog:    catalog,
		registry:   registry,
		cv:         content.CV,
		languages:  []string{content.DefaultLanguage},
		langMaxAge: DefaultLanguageMaxAge,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.matcher = i18n.NewMatcher(s.languages...)
	return s
}

// Routes implements web.Handler.
func (s *Site) Routes(r web.Router) {
	r.GET("/", s.home)
	r.POST(views.ContactPath, s.submit, s.contactLimit...)
	r.POST(views.ContactValidatePath, s.validate)
	r.GET(views.ContactStatusPath, s.status)
	r.POST("/lang/{code}", s.setLanguage)
}

func (s *Site) meta(c web.Context) views.Meta {
	site := s.catalog.Site(c.Language())
	lang := c.Language()
	if lang == "" {
		lang = site.Language
	}
	return views.Meta{T: c.T, Site: site, Lang: lang, Languages: s.languages}
}

func (s *Site) home(c web.Context) error {
	wf, err := s.workflow(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Home(views.Page{
		Meta: s.meta(c),
		Form: views.NewForm(c.T, wf.Snapshot(), wf.Rules()),
		CV:   s.cv,
	}))
}

func (s *Site) setLanguage(c web.Context) error {
	lang, err := s.matcher.Normalize(c.Param("code"))
	if err != nil {
		return web.ErrBadRequest("unsupported language", web.WithError(err))
	}
	c.SetCookie(middlewares.LanguageCookie, lang, int(s.langMaxAge/time.Second))
	return c.Redirect(http.StatusSeeOther, backURL(c.Request()))
}

// backURL returns the referring path when it points at this host, or "/".
func backURL(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Host != r.Host || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.RequestURI()
}
