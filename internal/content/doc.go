// Package content holds the portfolio's page data: profile, hero, about,
// skills, projects, contact details and navigation. Each language has its
// own YAML document, content/{lang}.yaml, and a missing language falls back
// to the default one.
package content
