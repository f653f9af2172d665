package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
)

// Manager applies shared attributes to every cookie it writes.
type Manager struct {
	keys     [][]byte // current secret first
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager. Defaults: path "/", HttpOnly, SameSite=Lax.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret sets the signing secret. Previous secrets still verify
// existing cookies but never sign new ones, so the secret can be rotated
// without resetting visitors. Secrets shorter than MinSecretLength are
// ignored; without a usable current secret signed operations return
// ErrNoSecret.
func WithSecret(secret string, previous ...string) Option {
	return func(m *Manager) {
		if len(secret) < MinSecretLength {
			return
		}
		m.keys = [][]byte{[]byte(secret)}
		for _, p := range previous {
			if len(p) >= MinSecretLength {
				m.keys = append(m.keys, []byte(p))
			}
		}
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// CheckSecret validates a secret before it is handed to WithSecret.
func CheckSecret(secret string) error {
	if secret == "" {
		return ErrNoSecret
	}
	if len(secret) < MinSecretLength {
		return ErrBadSecret
	}
	return nil
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. maxAge 0 makes a session cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// GetSigned returns the verified value of a signed cookie. Signatures made
// with any configured secret are accepted.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if len(m.keys) == 0 {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	value, sig, err := decodeSigned(raw)
	if err != nil {
		return "", err
	}

	for _, key := range m.keys {
		if hmac.Equal(sig, mac(key, name, value)) {
			return string(value), nil
		}
	}
	return "", ErrBadSig
}

// SetSigned writes a cookie signed with the current secret.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if len(m.keys) == 0 {
		return ErrNoSecret
	}

	v := []byte(value)
	http.SetCookie(w, m.cookie(name, b64.EncodeToString(v)+"."+b64.EncodeToString(mac(m.keys[0], name, v)), maxAge))
	return nil
}

var b64 = base64.RawURLEncoding

// decodeSigned splits base64(value).base64(mac).
func decodeSigned(raw string) (value, sig []byte, err error) {
	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return nil, nil, ErrBadSig
	}
	if value, err = b64.DecodeString(encValue); err != nil {
		return nil, nil, ErrBadSig
	}
	if sig, err = b64.DecodeString(encSig); err != nil {
		return nil, nil, ErrBadSig
	}
	return value, sig, nil
}

// mac binds the cookie name into the signature so a value cannot be moved
// to another cookie.
func mac(key []byte, name string, value []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(value)
	return h.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
