package query

import (
	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/pagination"
	"github.com/crudkit-go/crudkit/response"
)

// Pager is implemented by paged list queries to expose their page request.
type Pager interface {
	Pagination() pagination.Request
}

// recoverToSystem converts a panic inside a handler into a SystemError
// response.
func recoverToSystem[V any](resp *response.Response[V]) {
	if r := recover(); r != nil {
		*resp = response.Fail[V](msgcat.SystemError)
	}
}
