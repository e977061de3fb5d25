package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendLogCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depop.txt")

	log, err := NewAppendLog(path)
	require.NoError(t, err)
	assert.Equal(t, path, log.Filename())

	require.NoError(t, log.Append([]byte("first\n")))
	require.NoError(t, log.Append([]byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestAppendLogKeepsExistingContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depop.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	log, err := NewAppendLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Append([]byte("this run\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous run\nthis run\n", string(data))
}

func TestAppendLogOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "depop.txt")

	log, err := NewAppendLog(path)
	require.NoError(t, err)

	err = log.Append([]byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLogFile))
}

func TestNewAppendLogRequiresFilename(t *testing.T) {
	_, err := NewAppendLog("")
	assert.True(t, errors.Is(err, ErrLogFile))
}
