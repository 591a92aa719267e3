package envx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_EnvironmentBeatsDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENVX_A=from-file\nENVX_B=file-only\n"), 0o600))
	t.Setenv("ENVX_A", "from-env")

	lookup, err := Lookup(path)
	require.NoError(t, err)

	v, ok := lookup("ENVX_A")
	require.True(t, ok)
	assert.Equal(t, "from-env", v)

	v, ok = lookup("ENVX_B")
	require.True(t, ok)
	assert.Equal(t, "file-only", v)

	_, ok = lookup("ENVX_MISSING")
	assert.False(t, ok)
}

func TestLookup_MissingFileIsFine(t *testing.T) {
	lookup, err := Lookup(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	_, ok := lookup("ENVX_MISSING")
	assert.False(t, ok)
}

func TestLookup_EmptyPath(t *testing.T) {
	t.Setenv("ENVX_C", "x")
	lookup, err := Lookup("")
	require.NoError(t, err)
	v, _ := lookup("ENVX_C")
	assert.Equal(t, "x", v)
}
