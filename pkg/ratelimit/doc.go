// Package ratelimit counts requests per key in fixed windows.
//
// Two backends share the Limiter interface. Redis keeps counters across
// instances with an atomic INCR+PEXPIRE script; Memory keeps them in process
// on top of pkg/cache. The contact endpoints use a limit of 5 submissions per
// 10 minutes per client.
package ratelimit
