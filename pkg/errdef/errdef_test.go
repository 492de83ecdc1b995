package errdef

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(CodeFilesystem, nil, "read %s", "x"))
	})

	t.Run("keeps cause and code", func(t *testing.T) {
		err := Wrap(CodeFilesystem, fs.ErrNotExist, "read %s", "requests")
		assert.True(t, Is(err, CodeFilesystem))
		assert.False(t, Is(err, CodeParse))
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, "filesystem: read requests: file does not exist", err.Error())
	})

	t.Run("empty code becomes unknown", func(t *testing.T) {
		err := Wrap("", errors.New("boom"), "")
		assert.Equal(t, CodeUnknown, CodeOf(err))
		assert.Equal(t, "unknown: boom", err.Error())
	})
}

func TestNew(t *testing.T) {
	err := New(CodeCrash, "poller died")
	assert.Equal(t, CodeCrash, CodeOf(err))
	assert.Equal(t, "crash: poller died", err.Error())
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
}
