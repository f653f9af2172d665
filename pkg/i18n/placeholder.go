package i18n

import (
	"fmt"
	"strings"
)

// M holds placeholder values.
type M = map[string]any

// ReplacePlaceholders substitutes {{name}} markers with values from
// placeholders. Unknown markers are left untouched.
//
//	ReplacePlaceholders("At least {{min}} characters", M{"min": 10})
//	// "At least 10 characters"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
