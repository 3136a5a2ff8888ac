// Package config loads panel settings from flags, environment and an
// optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kk-code-lab/dirpanel/internal/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DIRPANEL_WORKSPACE.
const EnvPrefix = "DIRPANEL"

// DefaultSearchDebounce coalesces bursts of keystrokes into one listing pass.
const DefaultSearchDebounce = 300 * time.Millisecond

// Config keys.
const (
	KeyWorkspace      = "workspace"
	KeyNoWorkspace    = "no_workspace"
	KeyEditor         = "editor"
	KeySearchDebounce = "search_debounce"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyLogFile        = "log.file"
)

// Config is the resolved configuration.
type Config struct {
	Workspace      string
	NoWorkspace    bool
	Editor         string
	SearchDebounce time.Duration
	Log            logging.Config
}

// NewViper returns a viper instance with defaults and env bindings set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWorkspace, "")
	v.SetDefault(KeyNoWorkspace, false)
	v.SetDefault(KeyEditor, "")
	v.SetDefault(KeySearchDebounce, DefaultSearchDebounce)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (cfgFile, or $HOME/.config/dirpanel/config.yaml
// when empty) into v and returns the merged result. A missing default file
// is not an error; a missing explicit file is.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dirpanel"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("cannot read config: %w", err)
		}
	}

	debounce := v.GetDuration(KeySearchDebounce)
	if debounce < 0 {
		return Config{}, fmt.Errorf("%s must not be negative, got %s", KeySearchDebounce, debounce)
	}

	return Config{
		Workspace:      v.GetString(KeyWorkspace),
		NoWorkspace:    v.GetBool(KeyNoWorkspace),
		Editor:         v.GetString(KeyEditor),
		SearchDebounce: debounce,
		Log: logging.Config{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
			File:   expandHome(v.GetString(KeyLogFile)),
		},
	}, nil
}

// WorkspaceRoot resolves the base directory: none when disabled, the
// configured one made absolute, or cwd.
func (c Config) WorkspaceRoot(cwd string) (string, error) {
	if c.NoWorkspace {
		return "", nil
	}
	root := expandHome(c.Workspace)
	if root == "" {
		root = cwd
	}
	if root == "" {
		return "", nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("cannot resolve workspace %s: %w", root, err)
	}
	return abs, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
