package views

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/pkg/i18n"
)

//go:generate templ generate

// Translate resolves a UI translation key.
type Translate func(key string, placeholders ...i18n.M) string

// Identity returns keys untranslated.
func Identity(key string, _ ...i18n.M) string { return key }

// Contact form endpoints and element ids.
const (
	ContactPath         = "/contact"
	ContactValidatePath = "/contact/validate"
	ContactStatusPath   = "/contact/status"

	FormID   = "contact-form"
	StatusID = "contact-status"
	SubmitID = "contact-submit"
)

// HTMXScript is the HTMX build the pages load.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// BannerKind selects the banner style.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
	BannerInfo    BannerKind = "info"
)

// Banner is a message above the form fields.
type Banner struct {
	Kind    BannerKind
	Message string
}

func (b Banner) role() string {
	if b.Kind == BannerError {
		return "alert"
	}
	return "status"
}

// Form is the contact form state to render.
type Form struct {
	T Translate
	// Errors maps field names to translated messages.
	Errors map[string]string
	// Notice replaces the banner derived from Status.
	Notice *Banner
	Input  contact.Input
	Rules  contact.Rules
	Status contact.Status
}

// NewForm builds a Form from a workflow snapshot.
func NewForm(t Translate, snap contact.Snapshot, rules contact.Rules) Form {
	return Form{T: t, Input: snap.Input, Status: snap.Status, Rules: rules}
}

func (f Form) banner() (Banner, bool) {
	if f.Notice != nil {
		return *f.Notice, true
	}
	switch f.Status {
	case contact.StatusSuccess:
		return Banner{Kind: BannerSuccess, Message: f.T("contact.form.success")}, true
	case contact.StatusError:
		return Banner{Kind: BannerError, Message: f.T("contact.form.error")}, true
	case contact.StatusSubmitting:
		return Banner{Kind: BannerInfo, Message: f.T("contact.form.sending")}, true
	}
	return Banner{}, false
}

// Polling reports whether the status region keeps asking for updates.
// Only success and submitting change without the visitor doing anything.
func (f Form) Polling() bool {
	return f.Status == contact.StatusSuccess || f.Status == contact.StatusSubmitting
}

func (f Form) busy() bool {
	return f.Status == contact.StatusSubmitting
}

func (f Form) submitLabel() string {
	if f.busy() {
		return f.T("contact.form.sending")
	}
	return f.T("contact.form.submit")
}

func fieldID(name string) string { return "contact-" + name }

func errorID(name string) string { return name + "-error" }

// fieldAttrs are shared by the input and the textarea. A field with an error
// is marked touched so it revalidates while the visitor types.
func fieldAttrs(f Form, name, autocomplete string, maxLength int) templ.OrderedAttributes {
	invalid := f.Errors[name] != ""
	attrs := templ.OrderedAttributes{
		{Key: "id", Value: fieldID(name)},
		{Key: "name", Value: name},
		{Key: "placeholder", Value: f.T("contact.form." + name + "_placeholder")},
		{Key: "autocomplete", Value: autocomplete},
	}
	if maxLength > 0 {
		attrs = append(attrs, templ.KeyValue[string, any]{Key: "maxlength", Value: maxLength})
	}
	attrs = append(attrs, templ.OrderedAttributes{
		{Key: "required", Value: true},
		{Key: "aria-describedby", Value: errorID(name)},
		{Key: "aria-invalid", Value: templ.KV("true", invalid)},
		{Key: "hx-post", Value: ContactValidatePath + "?field=" + name},
		{Key: "hx-trigger", Value: "blur, input[this.dataset.touched] changed delay:400ms"},
		{Key: "hx-target", Value: "#" + errorID(name)},
		{Key: "hx-swap", Value: "outerHTML"},
		{Key: "hx-sync", Value: "closest form:abort"},
		{Key: "hx-on::after-request", Value: "this.dataset.touched='1'"},
		{Key: "data-touched", Value: templ.KV("1", invalid)},
	}...)
	return attrs
}

// Meta is the document head and the chrome shared by every page.
type Meta struct {
	T         Translate
	Site      *content.Site
	Lang      string
	Languages []string
}

func (m Meta) title() string {
	if m.Site == nil {
		return ""
	}
	return m.T("meta.title", i18n.M{"name": m.Site.Profile.Name, "role": m.Site.Profile.Role})
}

func (m Meta) description() string {
	return m.T("meta.description", i18n.M{"name": m.Site.Profile.Name, "role": m.Site.Profile.Role})
}

// Page is the data of the single portfolio page.
type Page struct {
	Meta
	Form Form
	CV   content.CVAsset
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func barWidth(level int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("width:%d%%;", level))
}

func statusText(code int, message string) string {
	if message == "" {
		return http.StatusText(code)
	}
	return message
}
