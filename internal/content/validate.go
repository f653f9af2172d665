package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moethet/portfolio/pkg/validator"
)

// Validate reports every problem in the document at once.
func (s *Site) Validate() error {
	rules := []validator.Rule{
		validator.RequiredString("profile.name", s.Profile.Name),
		validator.Email("profile.email", s.Profile.Email),
		validator.RequiredString("hero.greeting", s.Hero.Greeting),
	}

	anchors := make(map[string]bool, len(s.Nav))
	for i, n := range s.Nav {
		field := fmt.Sprintf("nav[%d]", i)
		rules = append(rules,
			validator.RequiredString(field+".label", n.Label),
			validator.RequiredString(field+".anchor", n.Anchor),
			unique(field+".anchor", n.Anchor, anchors),
		)
	}

	for i, c := range s.Skills {
		field := fmt.Sprintf("skills[%d]", i)
		rules = append(rules, validator.RequiredString(field+".name", c.Name))
		for j, sk := range c.Skills {
			sf := fmt.Sprintf("%s.skills[%d]", field, j)
			rules = append(rules,
				validator.RequiredString(sf+".name", sk.Name),
				validator.RangeInt(sf+".level", sk.Level, 0, 100),
			)
		}
	}

	slugs := make(map[string]bool, len(s.Projects))
	for i, p := range s.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		rules = append(rules,
			validator.RequiredString(field+".title", p.Title),
			validator.RequiredString(field+".slug", p.Slug),
			unique(field+".slug", p.Slug, slugs),
			validator.URL(field+".image", p.Image),
			validator.URL(field+".github_url", p.GitHubURL),
			validator.URL(field+".live_url", p.LiveURL),
		)
	}

	for i, l := range s.Contact.Social {
		field := fmt.Sprintf("contact.social[%d]", i)
		rules = append(rules,
			validator.RequiredString(field+".label", l.Label),
			validator.URL(field+".url", l.URL),
		)
	}

	err := validator.Apply(rules...)
	if err == nil {
		return nil
	}
	return errors.Join(fmt.Errorf("%w (%s)", ErrInvalidContent, s.Language), err)
}

// unique fails when value was already seen. Empty values are left to
// RequiredString.
func unique(field, value string, seen map[string]bool) validator.Rule {
	key := strings.ToLower(value)
	dup := key != "" && seen[key]
	seen[key] = true
	return validator.Rule{
		Check: func() bool { return !dup },
		Error: validator.ValidationError{
			Field:          field,
			Message:        "is duplicated",
			TranslationKey: "validation.unique",
		},
	}
}
