// Package cqrs holds the command and query handler abstractions and their
// middleware wrappers. Commands change state, queries read it; both are
// wrapped in the same composable WrapFunc chains for logging, tracing,
// alerting and recovery.
package cqrs
