// Package cookie reads and writes the portfolio's cookies.
//
// Values that identify a visitor are signed with HMAC-SHA256 so that a
// client cannot forge or swap them. The signature covers the cookie name as
// well as the value, which keeps a valid value of one cookie from being
// replayed under another name.
//
//	m := cookie.New(cookie.WithSecret(secret), cookie.WithSecure(true))
//	_ = m.SetSigned(w, "pf_visitor", id, 30*24*3600)
//	id, err := m.GetSigned(r, "pf_visitor")
package cookie
