package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/filter"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// DefaultGroupThreshold is the collection size above which grouped export falls back to flat.
const DefaultGroupThreshold = 10000

// Config holds defaults that flags override.
//
//	[export]
//	format = "netscape"
//	grouped = true
//	group_threshold = 5000
//
//	[filter]
//	search = "session"
//	search_mode = "regex"
//	show_expired = false
type Config struct {
	Export ExportConfig    `toml:"export"`
	Filter filter.Criteria `toml:"filter"`
}

type ExportConfig struct {
	Format         string `toml:"format"`
	Grouped        bool   `toml:"grouped"`
	GroupThreshold int    `toml:"group_threshold"`
}

func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{
			Format:         codec.JSON.String(),
			GroupThreshold: DefaultGroupThreshold,
		},
		Filter: filter.DefaultCriteria(),
	}
}

// DefaultConfigPath returns $HOME/.biscuit/config.toml, or "" when there is no home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".biscuit", "config.toml")
}

// LoadConfig reads a TOML config over the defaults. An empty path means the
// default location, which may be missing; an explicit path must exist.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	c := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return c, nil
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if _, err := codec.LookupFormat(c.Export.Format); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if c.Export.GroupThreshold <= 0 {
		c.Export.GroupThreshold = DefaultGroupThreshold
	}

	GetLogger().Debug("config loaded", "path", path, "format", c.Export.Format, "grouped", c.Export.Grouped)
	return c, nil
}
