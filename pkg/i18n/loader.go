package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads every {lang}/{namespace}.yaml (or .yml) file in fsys.
//
//	en/ui.yaml
//	my/ui.yaml
func WithYAMLDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			ext := strings.ToLower(path.Ext(p))
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}

			dir := path.Dir(p)
			if dir == "." {
				return fmt.Errorf("%w: file %q must be inside a language directory", ErrInvalidFile, p)
			}

			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("reading %q: %w", p, err)
			}

			var translations map[string]any
			if err := yaml.Unmarshal(data, &translations); err != nil {
				return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, p, err)
			}

			i.add(path.Base(dir), strings.TrimSuffix(path.Base(p), path.Ext(p)), translations)
			return nil
		})
	}
}
