package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypes(t *testing.T) {
	notFound := New(ErrorTypeNotFound, "item missing", nil)
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsInvalidInput(notFound))
	assert.False(t, IsInternal(notFound))

	invalid := New(ErrorTypeInvalidInput, "bad body", nil)
	assert.True(t, IsInvalidInput(invalid))

	internal := New(ErrorTypeInternal, "boom", fmt.Errorf("cause"))
	assert.True(t, IsInternal(internal))
	assert.Equal(t, "INTERNAL: boom (cause)", internal.Error())
	assert.EqualError(t, internal.Unwrap(), "cause")
}

func TestRecoverError(t *testing.T) {
	assert.NoError(t, RecoverError(nil))

	err := RecoverError("something broke")
	require.Error(t, err)
	assert.True(t, IsInternal(err))

	err = RecoverError(fmt.Errorf("wrapped"))
	require.Error(t, err)
	assert.True(t, IsInternal(err))
	assert.EqualError(t, err.(*APIError).Unwrap(), "wrapped")
}
