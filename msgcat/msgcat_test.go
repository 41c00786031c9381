package msgcat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crudkit-go/crudkit/msgcat"
)

func TestCatalogRanges(t *testing.T) {
	t.Parallel()

	for code, m := range msgcat.All() {
		if m.Category == msgcat.CategorySuccess {
			assert.GreaterOrEqual(t, code, 20000, "success code %d out of range", code)
			assert.Less(t, code, 30000, "success code %d out of range", code)
			continue
		}
		assert.GreaterOrEqual(t, code, 10000, "error code %d out of range", code)
		assert.Less(t, code, 20000, "error code %d out of range", code)
	}
}

func TestCategoryBlocks(t *testing.T) {
	t.Parallel()

	blocks := map[msgcat.Category][2]int{
		msgcat.CategoryDatabase:   {10001, 10099},
		msgcat.CategoryValidation: {10100, 10199},
		msgcat.CategoryBusiness:   {10200, 10299},
		msgcat.CategoryAuth:       {10300, 10399},
		msgcat.CategoryExternal:   {10400, 10499},
		msgcat.CategoryFile:       {10500, 10599},
		msgcat.CategorySystem:     {10600, 10699},
	}

	for code, m := range msgcat.All() {
		block, ok := blocks[m.Category]
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, code, block[0], "code %d below its %s block", code, m.Category)
		assert.LessOrEqual(t, code, block[1], "code %d above its %s block", code, m.Category)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	m, ok := msgcat.Lookup(10101)
	require.True(t, ok)
	assert.Equal(t, msgcat.ExistOnCreate, m)
	assert.Equal(t, "10101", m.CodeString())

	_, ok = msgcat.Lookup(99999)
	assert.False(t, ok)
}

func TestWellKnownCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		m    msgcat.Message
		code string
	}{
		{msgcat.FailOnGet, "10001"},
		{msgcat.FailOnCreate, "10002"},
		{msgcat.FailOnUpdate, "10003"},
		{msgcat.ExistOnCreate, "10101"},
		{msgcat.NotExistOnUpdate, "10103"},
		{msgcat.InvalidInputData, "10104"},
		{msgcat.SystemError, "10601"},
		{msgcat.SuccessOnGet, "20001"},
		{msgcat.SuccessOnCreate, "20002"},
		{msgcat.SuccessOnUpdate, "20003"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.m.CodeString())
		assert.NotEmpty(t, tt.m.Text)
	}
}

func TestMessageString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10601: a system error occurred", msgcat.SystemError.String())
}

func TestAllReturnsCopy(t *testing.T) {
	t.Parallel()

	first := msgcat.All()
	delete(first, 10601)

	_, ok := msgcat.Lookup(10601)
	assert.True(t, ok, "mutating the All() copy must not touch the catalog")
}
