// Package mailer renders markdown email templates and hands the result to a
// delivery provider.
//
// Templates are markdown files with optional YAML frontmatter. The body is a
// text/template; the rendered markdown doubles as the plain-text part and is
// converted to HTML with goldmark, then wrapped in an HTML layout:
//
//	---
//	Subject: New message from {{.SenderName}}
//	---
//	**{{.SenderName}}** wrote:
//
//	{{quote .Body}}
//
// Providers implement [Sender]. The resend subpackage talks to the Resend
// API; [LogSender] only logs and is used when no API key is configured.
package mailer
