package global

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackcoderx/pigeon/pkg/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DirName)

	state, err := Load(dir)
	require.NoError(t, err)

	assert.Empty(t, state.Secrets)
	assert.DirExists(t, dir)
	assert.FileExists(t, filepath.Join(dir, SecretsFile))
}

func TestLoad_BootstrapSurvivesRestart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DirName)

	_, err := Load(dir)
	require.NoError(t, err)

	// Nothing saved in between, as after a read-only command or a crash.
	state, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, state.Secrets)
}

func TestLoad_FailsWithoutSecretsFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)

	require.Error(t, err)
	assert.True(t, errdef.Is(err, errdef.CodeFilesystem))
}

func TestLoad_FailsOnMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SecretsFile), []byte(`{"a": {"Other": "x"}}`), 0600))

	_, err := Load(dir)

	require.Error(t, err)
	assert.True(t, errdef.Is(err, errdef.CodeParse))
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	state := NewState()
	state.Set("api_token", "abc123")
	state.Set("db_pass", "hunter2")

	require.NoError(t, Save(dir, state))

	data, err := os.ReadFile(filepath.Join(dir, SecretsFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"api_token":{"RawValue":"abc123"},"db_pass":{"RawValue":"hunter2"}}`, string(data))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, state.Secrets, got.Secrets)
}

func TestSave_SkipsMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	state := NewState()
	state.Set("k", "v")

	require.NoError(t, Save(dir, state))

	assert.NoDirExists(t, dir)
}

func TestState_Accessors(t *testing.T) {
	state := NewState()
	state.Set("b", "2")
	state.Set("a", "1")

	v, ok := state.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, []string{"a", "b"}, state.Names())

	assert.True(t, state.Delete("a"))
	assert.False(t, state.Delete("a"))
	_, ok = state.Lookup("a")
	assert.False(t, ok)

	var nilState *State
	_, ok = nilState.Lookup("a")
	assert.False(t, ok)
}
