package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/internal/views"
	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/middlewares"
	"github.com/moethet/portfolio/pkg/htmx"
	"github.com/moethet/portfolio/pkg/validator"
)

const contactAnchor = "/#contact"

func (s *Site) workflow(c web.Context) (*contact.Workflow, error) {
	wf, err := s.registry.Get(c, middlewares.GetVisitorID(c))
	switch {
	case errors.Is(err, contact.ErrNoVisitor):
		return nil, web.ErrBadRequest("missing visitor", web.WithError(err))
	case err != nil:
		return nil, web.ErrServiceUnavailable("contact form unavailable", web.WithError(err))
	}
	return wf, nil
}

func bindInput(c web.Context) contact.Input {
	return contact.Input{
		Name:    c.Form(contact.FieldName),
		Email:   c.Form(contact.FieldEmail),
		Message: c.Form(contact.FieldMessage),
	}
}

// fieldErrors translates errs and keeps the first message per field.
func fieldErrors(c web.Context, errs validator.ValidationErrors) map[string]string {
	if t := c.Translator(); t != nil {
		errs.Translate(t.TranslateMessage)
	}
	return errs.Fields()
}

func (s *Site) submit(c web.Context) error {
	wf, err := s.workflow(c)
	if err != nil {
		return err
	}

	snap, err := wf.Submit(c, bindInput(c))
	form := views.NewForm(c.T, snap, wf.Rules())
	code := http.StatusOK

	var verr *contact.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		code = http.StatusUnprocessableEntity
		form.Errors = fieldErrors(c, verr.Errors)
	case errors.Is(err, contact.ErrSubmitInProgress):
		code = http.StatusConflict
		form.Notice = &views.Banner{Kind: views.BannerInfo, Message: c.T("contact.form.busy")}
	case contact.IsDispatchError(err):
		// Logged by the workflow; the form shows the generic banner.
	case errors.Is(err, contact.ErrClosed):
		return web.ErrServiceUnavailable("contact form closed", web.WithError(err))
	default:
		return err
	}

	if c.IsHTMX() {
		return c.Render(code, views.ContactForm(form))
	}
	if code == http.StatusUnprocessableEntity {
		return c.Render(code, views.Home(views.Page{Meta: s.meta(c), Form: form, CV: s.cv}))
	}
	return c.Redirect(http.StatusSeeOther, contactAnchor)
}

func (s *Site) validate(c web.Context) error {
	field := c.Query("field")
	if !slices.Contains(contact.Fields, field) {
		return web.ErrBadRequest("unknown field")
	}

	wf, err := s.workflow(c)
	if err != nil {
		return err
	}

	in := bindInput(c)
	wf.SetInput(in)

	var msg string
	if errs := contact.ValidateField(field, in.Normalize(), wf.Rules()); !errs.IsEmpty() {
		msg = fieldErrors(c, errs)[field]
	}
	return c.Render(http.StatusOK, views.FieldError(field, msg))
}

func (s *Site) status(c web.Context) error {
	if !c.IsHTMX() {
		return c.Redirect(http.StatusSeeOther, contactAnchor)
	}

	wf, err := s.workflow(c)
	if err != nil {
		return err
	}

	form := views.NewForm(c.T, wf.Snapshot(), wf.Rules())
	opts := []htmx.RenderOption{htmx.WithOOB(views.SubmitButton(form, true))}
	if !form.Polling() {
		opts = append(opts, htmx.WithStopPolling())
	}
	return c.Render(http.StatusOK, views.StatusRegion(form), opts...)
}
