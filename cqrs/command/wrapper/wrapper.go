// Package wrapper provides the middleware applied around command handlers:
// logging, tracing, metadata injection, timeouts, alerting and panic
// recovery.
package wrapper
