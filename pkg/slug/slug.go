package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type options struct {
	separator string
	maxLength int
	lowercase bool
}

// Option configures Make.
type Option func(*options)

// MaxLength cuts the slug at n runes, on a separator when possible.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = n
	}
}

// Separator sets the word separator. Default "-".
func Separator(s string) Option {
	return func(o *options) {
		o.separator = s
	}
}

// Lowercase toggles lowercasing. Default true.
func Lowercase(on bool) Option {
	return func(o *options) {
		o.lowercase = on
	}
}

// foldMarks is built per call: a chained transformer holds buffers and is
// not safe for concurrent use.
func foldMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Latin letters that do not decompose.
var replacer = strings.NewReplacer(
	"ß", "ss", "ø", "o", "Ø", "O", "đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
)

// Make builds a slug from s.
func Make(s string, opts ...Option) string {
	o := &options{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(o)
	}

	if folded, _, err := transform.String(foldMarks(), replacer.Replace(s)); err == nil && isLatin(s) {
		s = folded
	}
	if o.lowercase {
		s = strings.ToLower(s)
	}

	var (
		b       strings.Builder
		pending bool
	)
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) {
			if pending && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	return truncate(b.String(), o.separator, o.maxLength)
}

// isLatin reports whether s contains no letters outside the Latin script.
// Combining marks are only stripped from Latin text; in scripts such as
// Myanmar they carry vowels.
func isLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}

func truncate(s, sep string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	cut := string(r[:n])
	if sep != "" && !strings.HasPrefix(string(r[n:]), sep) {
		if i := strings.LastIndex(cut, sep); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimSuffix(cut, sep)
}
