package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown templates into HTML and plain text.
// Parsed templates and layouts are cached; rendering is safe for concurrent use.
type Renderer struct {
	fs          fs.FS
	md          goldmark.Markdown
	templates   map[string]*parsedTemplate
	layouts     map[string]*template.Template
	templateDir string
	layoutDir   string
	mu          sync.RWMutex
}

type parsedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template // markdown for the HTML part
	text     *texttemplate.Template // the plain text part
	subject  *texttemplate.Template
}

// RendererConfig configures template locations inside the filesystem.
type RendererConfig struct {
	TemplateDir string // default "."
	LayoutDir   string // default "layouts"
}

// NewRenderer creates a Renderer reading from fsys.
func NewRenderer(fsys fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          fsys,
		templateDir: cfg.TemplateDir,
		layoutDir:   cfg.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
	}
}

// RenderResult is a rendered template.
type RenderResult struct {
	Metadata map[string]any
	Subject  string
	HTML     string
	Text     string
}

// markdownFuncs feed the markdown converter. mdescape neutralizes inline
// syntax so values cannot become links, images or emphasis.
var markdownFuncs = texttemplate.FuncMap{
	"quote":    quote,
	"mdescape": mdescape,
}

// textFuncs produce the plain text part and the subject, which are never
// converted, so values are written as they are.
var textFuncs = texttemplate.FuncMap{
	"quote":    quote,
	"mdescape": func(s string) string { return s },
}

// mdescape backslash-escapes every ASCII punctuation character, which
// CommonMark then renders as the literal character.
func mdescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quote prefixes every line with "> " so that user text renders as a
// blockquote and cannot start markdown blocks of its own.
func quote(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

// Render executes name with data and wraps the HTML in layout.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var md bytes.Buffer
	if err := tmpl.body.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var text bytes.Buffer
	if err := tmpl.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: %s: text: %v", ErrRenderFailed, name, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: %s: markdown: %v", ErrRenderFailed, name, err)
	}

	var subject string
	if tmpl.subject != nil {
		var buf bytes.Buffer
		if err := tmpl.subject.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%w: %s: subject: %v", ErrRenderFailed, name, err)
		}
		subject = strings.TrimSpace(buf.String())
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err = lt.Execute(&out, map[string]any{
		"Subject":  subject,
		"Content":  template.HTML(content.String()), //nolint:gosec // goldmark output with raw HTML disabled
		"Metadata": tmpl.metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		Metadata: tmpl.metadata,
		Subject:  subject,
		HTML:     out.String(),
		Text:     text.String(),
	}, nil
}

// Preload parses every listed template and layout, reporting the first
// broken one. Used at startup so a bad template fails fast.
func (r *Renderer) Preload(layout string, names ...string) error {
	if _, err := r.layout(layout); err != nil {
		return err
	}
	for _, n := range names {
		if _, err := r.template(n); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.templates[name]; ok {
		return t, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	body, err := texttemplate.New(name).Funcs(markdownFuncs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	text, err := texttemplate.New(name + ":text").Funcs(textFuncs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	t = &parsedTemplate{metadata: parsed.Metadata, body: body, text: text}
	if s, ok := parsed.Subject(); ok {
		t.subject, err = texttemplate.New(name + ":subject").Funcs(textFuncs).Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: subject: %v", ErrRenderFailed, name, err)
		}
	}

	r.templates[name] = t
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if lt, ok := r.layouts[name]; ok {
		return lt, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	lt, err = template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = lt
	return lt, nil
}
