package content

import (
	"errors"
	"io/fs"
)

// Catalog holds the parsed content of every language. It is read-only
// after NewCatalog and safe for concurrent use.
type Catalog struct {
	sites map[string]*Site
}

// NewCatalog loads and validates content for each language. Errors for all
// languages are reported together.
func NewCatalog(fsys fs.FS, langs ...string) (*Catalog, error) {
	c := &Catalog{sites: make(map[string]*Site, len(langs)+1)}
	if len(langs) == 0 {
		langs = []string{DefaultLanguage}
	}

	var errs []error
	for _, lang := range langs {
		site, err := load(fsys, lang)
		if err == nil {
			err = site.Validate()
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.sites[lang] = site
	}
	if _, ok := c.sites[DefaultLanguage]; !ok && len(errs) == 0 {
		site, err := Load(fsys, DefaultLanguage)
		if err != nil {
			errs = append(errs, err)
		} else {
			c.sites[DefaultLanguage] = site
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Site returns the content for lang, or the default language's content.
func (c *Catalog) Site(lang string) *Site {
	if s, ok := c.sites[lang]; ok {
		return s
	}
	return c.sites[DefaultLanguage]
}

// Len returns how many languages were loaded.
func (c *Catalog) Len() int {
	return len(c.sites)
}
