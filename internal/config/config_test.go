package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkipFunctionBodiesMode_YAMLRoundTrip(t *testing.T) {
	for _, mode := range []SkipFunctionBodiesMode{SkipNone, SkipInlinable, SkipAll} {
		cfg := Default()
		cfg.SkipFunctionBodies = mode

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, Save(cfg, path))

		loaded, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, mode, loaded.SkipFunctionBodies)
	}
}

func TestSkipFunctionBodiesMode_InvalidValueRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skip_function_bodies: bogus\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSkipFunctionBodiesMode_DefaultsToNone(t *testing.T) {
	require.Equal(t, SkipNone, Default().SkipFunctionBodies)
	require.Equal(t, "none", SkipNone.String())
	require.Equal(t, "inlinable", SkipInlinable.String())
	require.Equal(t, "all", SkipAll.String())
}
