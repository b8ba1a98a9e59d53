package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/pocket/internal/common"
	"github.com/spf13/viper"
)

// Config is the typed view of the settings read by viper.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	SearchMode   string
	Locale       string
	StrictDates  bool
}

// DefaultDatabasePath returns $HOME/.local/share/pocket/pocket.db, or a path in
// the working directory when the home directory is unknown.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pocket.db"
	}
	return filepath.Join(home, ".local", "share", "pocket", "pocket.db")
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("search.mode", "literal")
	v.SetDefault("validation.strict_dates", false)
	v.SetDefault("display.locale", "en")
}

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. POCKET_DATABASE_PATH for database.path.
const EnvPrefix = "POCKET"

// BindEnv makes v read POCKET_* environment variables for every key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
		SearchMode:   v.GetString("search.mode"),
		StrictDates:  v.GetBool("validation.strict_dates"),
		Locale:       v.GetString("display.locale"),
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	return cfg, nil
}
