// Package wrapper provides the middleware applied around query handlers:
// logging and tracing.
package wrapper
