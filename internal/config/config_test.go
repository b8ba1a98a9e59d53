package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("POCKET_TEST_DIR", "/srv/ledger")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "pocket.db"), ExpandPath("~/pocket.db"))
	assert.Equal(t, "/srv/ledger/pocket.db", ExpandPath("$POCKET_TEST_DIR/pocket.db"))
	assert.Equal(t, "/abs/pocket.db", ExpandPath("/abs/pocket.db"))
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabasePath(), cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "literal", cfg.SearchMode)
	assert.Equal(t, "en", cfg.Locale)
	assert.False(t, cfg.StrictDates)
}

func TestLoadFrom_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("database.path", "~/ledgers/test.db")
	v.Set("search.mode", "pattern")
	v.Set("validation.strict_dates", true)
	v.Set("display.locale", "sv")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "ledgers", "test.db"), cfg.DatabasePath)
	assert.Equal(t, "pattern", cfg.SearchMode)
	assert.True(t, cfg.StrictDates)
	assert.Equal(t, "sv", cfg.Locale)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("POCKET_DATABASE_PATH", "/tmp/env.db")
	t.Setenv("POCKET_SEARCH_MODE", "pattern")

	v := viper.New()
	BindEnv(v)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.DatabasePath)
	assert.Equal(t, "pattern", cfg.SearchMode)
}
