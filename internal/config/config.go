package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ini "github.com/go-ini/ini"

	"hanswap/internal/filter"
	"hanswap/internal/wordlist"
	"hanswap/pkg/ime"
)

type Config struct {
	DenyList      []string
	DenyFile      string
	CheckOriginal bool
	Filter        bool
	FoldWidth     bool
	SocketPath    string
	LogLevel      string
	LogFormat     string
}

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "pretty"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"pretty", "json"}
)

type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func Default() Config {
	return Config{
		DenyList:  append([]string(nil), filter.DefaultDenyList...),
		Filter:    true,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// Load reads path on top of Default. An empty path or a missing file yields
// the defaults. Files ending in .toml are TOML, anything else is INI.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &ConfigError{Path: path, Err: err}
	}
	if info.IsDir() {
		return cfg, &ConfigError{Path: path, Err: errors.New("is a directory")}
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = loadTOML(path, &cfg)
	} else {
		err = loadINI(path, &cfg)
	}
	if err != nil {
		return cfg, &ConfigError{Path: path, Err: err}
	}

	if cfg.DenyFile != "" {
		denyPath := cfg.DenyFile
		if !filepath.IsAbs(denyPath) {
			denyPath = filepath.Join(filepath.Dir(path), denyPath)
		}
		words, err := wordlist.Load(denyPath)
		if err != nil {
			return cfg, &ConfigError{Path: path, Err: err}
		}
		cfg.DenyList = append(cfg.DenyList, words...)
	}

	return cfg, nil
}

func loadINI(path string, cfg *Config) error {
	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return err
	}

	section := file.Section("filter")
	if section.HasKey("deny") {
		cfg.DenyList = section.Key("deny").Strings(",")
	}
	cfg.DenyFile = section.Key("deny_file").MustString(cfg.DenyFile)
	cfg.CheckOriginal = section.Key("check_original").MustBool(cfg.CheckOriginal)
	cfg.Filter = section.Key("enabled").MustBool(cfg.Filter)

	cfg.FoldWidth = file.Section("input").Key("fold_width").MustBool(cfg.FoldWidth)
	cfg.SocketPath = file.Section("server").Key("socket").MustString(cfg.SocketPath)

	section = file.Section("log")
	cfg.LogLevel = strings.ToLower(section.Key("level").MustString(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(section.Key("format").MustString(cfg.LogFormat))
	return nil
}

func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return &ConfigError{Err: fmt.Errorf("invalid log level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))}
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return &ConfigError{Err: fmt.Errorf("invalid log format %q (want one of %s)", c.LogFormat, strings.Join(logFormats, ", "))}
	}
	for i, word := range c.DenyList {
		if strings.TrimSpace(word) == "" {
			return &ConfigError{Err: fmt.Errorf("deny list entry %d is empty", i)}
		}
	}
	return nil
}

// Options translates the config into converter options.
func (c Config) Options() []ime.Option {
	return []ime.Option{
		ime.WithDenyList(c.DenyList),
		ime.WithOriginalCheck(c.CheckOriginal),
		ime.WithFilter(c.Filter),
		ime.WithFoldWidth(c.FoldWidth),
	}
}

// Converter builds a converter for the config.
func (c Config) Converter() *ime.Converter {
	return ime.New(c.Options()...)
}
