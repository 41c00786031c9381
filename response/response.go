// Package response defines the uniform envelope every handler returns.
//
// Handlers are total functions: they never let an error escape. Callers branch
// on Succeeded and on the machine-readable Code drawn from the msgcat
// taxonomies instead of inspecting errors.
package response

import "github.com/crudkit-go/crudkit/msgcat"

// Response wraps a handler outcome: success flag, payload, human-readable
// message, machine code and an error list.
//
// Invariant: when Succeeded is false, Data holds the zero value of T and
// Message/Code come from the msgcat error taxonomy.
type Response[T any] struct {
	Succeeded bool   `json:"succeeded"`
	Data      T      `json:"data"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	Errors    []any  `json:"errors"`
}

// Ok builds a success response carrying data and a catalog message.
func Ok[T any](data T, m msgcat.Message) Response[T] {
	return Response[T]{
		Succeeded: true,
		Data:      data,
		Message:   m.Text,
		Code:      m.CodeString(),
	}
}

// OkData builds a success response with data and no catalog message.
func OkData[T any](data T) Response[T] {
	return Response[T]{Succeeded: true, Data: data, Message: "Succeeded"}
}

// Fail builds a failure response from a catalog message. Data stays zero.
func Fail[T any](m msgcat.Message) Response[T] {
	return Response[T]{
		Succeeded: false,
		Message:   m.Text,
		Code:      m.CodeString(),
	}
}

// FailErrors builds a failure response that also carries per-item errors,
// e.g. row-level failures of a bulk operation.
func FailErrors[T any](errs []any, m msgcat.Message) Response[T] {
	r := Fail[T](m)
	r.Errors = errs
	return r
}
