package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crudkit-go/crudkit/status"
)

type document struct {
	st status.Status
}

func (d *document) Status() status.Status      { return d.st }
func (d *document) SetStatus(st status.Status) { d.st = st }

type plain struct{ Name string }

func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		st   status.Status
		want string
	}{
		{status.Unverified, "unverified"},
		{status.Verified, "verified"},
		{status.Active, "active"},
		{status.Inactive, "inactive"},
		{status.Deleted, "deleted"},
		{status.Status(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.st.String())
	}
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, status.Verified.Valid())
	assert.False(t, status.Status(-1).Valid())
	assert.False(t, status.Status(99).Valid())
}

func TestApply(t *testing.T) {
	t.Parallel()

	d := &document{}
	assert.True(t, status.Apply(d, status.Verified))
	assert.Equal(t, status.Verified, d.Status())

	// entities without the capability pass through untouched
	assert.False(t, status.Apply(&plain{Name: "n"}, status.Verified))
	assert.False(t, status.Apply(nil, status.Verified))
}
