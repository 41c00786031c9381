package response_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crudkit-go/crudkit/msgcat"
	"github.com/crudkit-go/crudkit/response"
)

func TestOk(t *testing.T) {
	t.Parallel()

	resp := response.Ok(42, msgcat.SuccessOnGet)

	assert.True(t, resp.Succeeded)
	assert.Equal(t, 42, resp.Data)
	assert.Equal(t, "20001", resp.Code)
	assert.Equal(t, msgcat.SuccessOnGet.Text, resp.Message)
	assert.Empty(t, resp.Errors)
}

func TestOkData(t *testing.T) {
	t.Parallel()

	resp := response.OkData("payload")

	assert.True(t, resp.Succeeded)
	assert.Equal(t, "payload", resp.Data)
	assert.Equal(t, "Succeeded", resp.Message)
	assert.Empty(t, resp.Code)
}

func TestFail_DataStaysZero(t *testing.T) {
	t.Parallel()

	type view struct{ Name string }

	resp := response.Fail[*view](msgcat.FailOnCreate)

	assert.False(t, resp.Succeeded)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "10002", resp.Code)
	assert.Equal(t, msgcat.FailOnCreate.Text, resp.Message)
}

func TestFailErrors(t *testing.T) {
	t.Parallel()

	errs := []any{"row 3: missing sku", "row 7: missing sku"}
	resp := response.FailErrors[int](errs, msgcat.InvalidInputData)

	assert.False(t, resp.Succeeded)
	assert.Equal(t, "10104", resp.Code)
	assert.Equal(t, errs, resp.Errors)
}

func TestResponseJSONShape(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(response.Ok([]int{1, 2}, msgcat.SuccessOnGet))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, key := range []string{"succeeded", "data", "message", "code", "errors"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, true, decoded["succeeded"])
}
