package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	io := errors.New("connection reset")
	err := Wrap(fmt.Errorf("list persons: %w", io), CodeInternal, "failed to list persons")

	assert.True(t, errors.Is(err, io))
	assert.True(t, HasCode(err, CodeInternal))
	assert.Equal(t, "failed to list persons", MessageOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "dup")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.False(t, Is(errors.New("plain"), CodeNotFound))
	assert.Nil(t, Wrap(nil, CodeInternal, "noop"))
}
