// Package htmx holds the HTMX request and response helpers used by the
// portfolio handlers.
//
// Handlers detect HTMX requests with IsHTMX and shape the swap with render
// options:
//
//	cfg := htmx.NewConfig(
//		htmx.WithRetarget("#contact-form"),
//		htmx.WithReswap(htmx.SwapOuterHTML),
//		htmx.WithOOB(banner),
//	)
//	cfg.ApplyHeaders(w)
//	htmx.Write(ctx, w, form, cfg)
//
// Out-of-band components are written after the main fragment and must carry
// their own id and hx-swap-oob attributes.
package htmx
