// Package assets embeds the files the server ships with: page content,
// translations, mail templates and static files.
package assets

import "embed"

// FS holds content/, locales/, mail/ and static/.
//
//go:embed content locales mail static
var FS embed.FS

// Directory names inside FS.
const (
	ContentDir = "content"
	LocalesDir = "locales"
	MailDir    = "mail"
	StaticDir  = "static"
)

// CVFile is the bundled résumé inside StaticDir.
const CVFile = "cv-resume.pdf"
