package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/moneta-labs/moneta/internal/resource"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestLoaderSettings_Defaults(t *testing.T) {
	setup(t)
	Load()

	s := LoaderSettings()
	assert.Equal(t, resource.DefaultPrimaryPath, s.PrimaryPath)
	assert.Equal(t, resource.DefaultDistPath, s.DistPath)
	assert.True(t, s.KeepDist)
	assert.True(t, s.Optional)
	assert.Empty(t, s.PreserveFields)
	assert.Equal(t, zerolog.InfoLevel, s.Level())
}

func TestLoaderSettings_Environment(t *testing.T) {
	setup(t)
	t.Setenv("MONETA_KEEP_DIST", "false")
	t.Setenv("MONETA_PRESERVE_FIELDS", "weights, version")
	t.Setenv("MONETA_ISO_LIKE", "true")
	t.Setenv("MONETA_LOG_LEVEL", "debug")
	Load()

	s := LoaderSettings()
	assert.False(t, s.KeepDist)
	assert.True(t, s.ISOLike)
	assert.Equal(t, []string{"weights", "version"}, s.PreserveFields)
	assert.Equal(t, zerolog.DebugLevel, s.Level())

	opts, err := s.Options(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []registry.Field{registry.FieldWeights, registry.FieldVersion}, opts.Merge.PreserveFields)
	assert.True(t, opts.Merge.ISOLike)
	assert.False(t, opts.KeepDist)
}

func TestSettings_OptionsRejectsUnknownField(t *testing.T) {
	_, err := Settings{PreserveFields: []string{"amounts"}}.Options(zerolog.Nop())
	assert.ErrorContains(t, err, KeyPreserveFields)
}

func TestSetAndGet(t *testing.T) {
	home := setup(t)
	Load()

	require.NoError(t, Set(KeyPrimaryPath, "data/currencies.yaml"))
	assert.Equal(t, "data/currencies.yaml", Get(KeyPrimaryPath))

	_, err := os.Stat(filepath.Join(home, ".moneta", "config.yaml"))
	assert.NoError(t, err)

	viper.Reset()
	Load()
	assert.Equal(t, "data/currencies.yaml", LoaderSettings().PrimaryPath)
}

func TestSet_UnknownKey(t *testing.T) {
	setup(t)
	Load()

	assert.Error(t, Set("mirror_url", "x"))
}
