package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlFile mirrors the INI layout. Pointers tell "unset" apart from false
// or empty.
type tomlFile struct {
	Filter struct {
		Deny          *[]string `toml:"deny"`
		DenyFile      string    `toml:"deny_file"`
		CheckOriginal *bool     `toml:"check_original"`
		Enabled       *bool     `toml:"enabled"`
	} `toml:"filter"`
	Input struct {
		FoldWidth *bool `toml:"fold_width"`
	} `toml:"input"`
	Server struct {
		Socket string `toml:"socket"`
	} `toml:"server"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

func loadTOML(path string, cfg *Config) error {
	var raw tomlFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if raw.Filter.Deny != nil {
		cfg.DenyList = *raw.Filter.Deny
	}
	if raw.Filter.DenyFile != "" {
		cfg.DenyFile = raw.Filter.DenyFile
	}
	if raw.Filter.CheckOriginal != nil {
		cfg.CheckOriginal = *raw.Filter.CheckOriginal
	}
	if raw.Filter.Enabled != nil {
		cfg.Filter = *raw.Filter.Enabled
	}
	if raw.Input.FoldWidth != nil {
		cfg.FoldWidth = *raw.Input.FoldWidth
	}
	if raw.Server.Socket != "" {
		cfg.SocketPath = raw.Server.Socket
	}
	if raw.Log.Level != "" {
		cfg.LogLevel = strings.ToLower(raw.Log.Level)
	}
	if raw.Log.Format != "" {
		cfg.LogFormat = strings.ToLower(raw.Log.Format)
	}
	return nil
}
