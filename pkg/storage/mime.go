package storage

import (
	"bytes"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MIMEOctetStream is used when detection finds nothing better.
const MIMEOctetStream = "application/octet-stream"

// DetectMIME sniffs the content type from the leading bytes of r. The
// returned reader yields the full content, sniffed bytes included.
func DetectMIME(r io.Reader) (string, io.Reader, error) {
	var head bytes.Buffer
	m, err := mimetype.DetectReader(io.TeeReader(r, &head))
	if err != nil {
		return "", nil, err
	}
	return baseMIME(m), io.MultiReader(&head, r), nil
}

// IsMIME reports whether data's sniffed type is expected or one of its
// aliases and children ("application/pdf" matches "application/x-pdf").
func IsMIME(data []byte, expected string) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is(expected) {
			return true
		}
	}
	return false
}

func baseMIME(m *mimetype.MIME) string {
	if m == nil {
		return MIMEOctetStream
	}
	s, _, _ := strings.Cut(m.String(), ";")
	return s
}
