package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/moethet/portfolio/pkg/slug"
)

// DefaultLanguage is served when a language has no content file.
const DefaultLanguage = "en"

// Dir is the directory of the content files inside the asset FS.
const Dir = "content"

// Load reads content/{lang}.yaml from fsys, falling back to the default
// language when the file does not exist. The result is validated.
func Load(fsys fs.FS, lang string) (*Site, error) {
	site, err := load(fsys, lang)
	if errors.Is(err, ErrNotFound) && lang != DefaultLanguage {
		site, err = load(fsys, DefaultLanguage)
	}
	if err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

func load(fsys fs.FS, lang string) (*Site, error) {
	name := path.Join(Dir, lang+".yaml")
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, lang)
		}
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}

	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidContent, name, err)
	}

	site.Language = lang
	site.fillSlugs()
	return &site, nil
}

// fillSlugs derives missing project slugs from titles.
func (s *Site) fillSlugs() {
	for i := range s.Projects {
		p := &s.Projects[i]
		if p.Slug == "" {
			p.Slug = slug.Make(p.Title, slug.MaxLength(64))
		}
	}
}

// Project returns the project with the given slug.
func (s *Site) Project(slug string) (Project, bool) {
	for _, p := range s.Projects {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}
