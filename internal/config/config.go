// Package config loads the sawinhet tool configuration.
//
// Values are layered: built-in defaults, then an optional YAML or JSON
// file, then SAWINHET_* environment variables. Command-line flags are
// applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hajduko/SaWinHETUtility/internal/logging"
)

// Default locations, relative to the working directory.
const (
	DefaultBaseDir   = ".sawinhet"
	DefaultInboxDir  = DefaultBaseDir + "/inbox"
	DefaultOutputDir = DefaultBaseDir + "/output"
	DefaultDBPath    = DefaultBaseDir + "/sawinhet.db"
	DefaultWorkers   = 4
)

// Environment variables consulted by ApplyEnv.
const (
	EnvInbox     = "SAWINHET_INBOX"
	EnvOutput    = "SAWINHET_OUTPUT"
	EnvDB        = "SAWINHET_DB"
	EnvWorkers   = "SAWINHET_WORKERS"
	EnvKeepInput = "SAWINHET_KEEP_INPUT"
	EnvLogLevel  = "SAWINHET_LOG_LEVEL"
	EnvLogFormat = "SAWINHET_LOG_FORMAT"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the tool configuration.
type Config struct {
	InboxDir  string `json:"inbox_dir" yaml:"inbox_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	DBPath    string `json:"db_path" yaml:"db_path"`
	Workers   int    `json:"workers" yaml:"workers"`
	KeepInput bool   `json:"keep_input" yaml:"keep_input"` // keep inbox records after a successful conversion
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"` // "text" or "json"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InboxDir:  DefaultInboxDir,
		OutputDir: DefaultOutputDir,
		DBPath:    DefaultDBPath,
		Workers:   DefaultWorkers,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadFromPath returns the defaults overlaid with the file at path.
// Keys absent from the file keep their default value. Relative
// directories in the file are resolved against the file's directory.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	var file Config
	if err := DecodeFile(path, &file); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	base := filepath.Dir(path)
	cfg.merge(file, base)
	return cfg, nil
}

func (c *Config) merge(o Config, base string) {
	if o.InboxDir != "" {
		c.InboxDir = resolve(base, o.InboxDir)
	}
	if o.OutputDir != "" {
		c.OutputDir = resolve(base, o.OutputDir)
	}
	if o.DBPath != "" {
		c.DBPath = resolve(base, o.DBPath)
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.KeepInput {
		c.KeepInput = true
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}

// ApplyEnv overrides fields from SAWINHET_* variables using lookup
// (os.LookupEnv when nil). Empty variables are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvInbox); ok {
		c.InboxDir = v
	}
	if v, ok := get(EnvOutput); ok {
		c.OutputDir = v
	}
	if v, ok := get(EnvDB); ok {
		c.DBPath = v
	}
	if v, ok := get(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvWorkers, v)
		}
		c.Workers = n
	}
	if v, ok := get(EnvKeepInput); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalid, EnvKeepInput, v)
		}
		c.KeepInput = b
	}
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvLogFormat); ok {
		c.LogFormat = v
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.InboxDir == "":
		return fmt.Errorf("%w: inbox_dir is empty", ErrInvalid)
	case c.OutputDir == "":
		return fmt.Errorf("%w: output_dir is empty", ErrInvalid)
	case c.DBPath == "":
		return fmt.Errorf("%w: db_path is empty", ErrInvalid)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := logging.CheckFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}
