// Package slug turns titles into URL-safe identifiers.
//
//	slug.Make("Café & Restaurant")             // "cafe-restaurant"
//	slug.Make("Very long title", slug.MaxLength(9)) // "very-long"
//
// Latin diacritics are folded to ASCII through Unicode decomposition.
// Letters and digits of other scripts are kept as they are, so Burmese
// titles still produce readable slugs.
package slug
