package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems such as
// fstest.MapFS.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Loader reads a Config from a file and the environment.
type Loader struct {
	fs     FileSystem
	env    *EnvLoader
	logger zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS sets the file system config files are read from.
func WithFS(fsys FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithEnv replaces the environment loader.
func WithEnv(env *EnvLoader) Option {
	return func(l *Loader) {
		l.env = env
	}
}

// WithLogger sets the logger used to report which sources were read.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader reading from the OS file system and SEGSCAN_
// environment variables.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:     OSFS{},
		env:    NewEnvLoader(EnvPrefix),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds a validated Config from defaults, the file at path and the
// environment. An empty path or a missing file leaves the defaults in place.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		found, err := l.loadFile(path, cfg)
		if err != nil {
			return nil, err
		}
		l.logger.Debug().Str("path", path).Bool("found", found).Msg("config file")
	}

	applied := l.env.Apply(cfg)
	if len(applied) > 0 {
		l.logger.Debug().Strs("vars", applied).Msg("config environment overrides")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the settings in path onto cfg. It reports whether the
// file existed.
func (l *Loader) loadFile(path string, cfg *Config) (bool, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var file Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(path, data, &file)
	case ".yaml", ".yml":
		err = decodeYAML(path, data, &file)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return true, err
	}
	overlay(cfg, &file)
	return true, nil
}

// overlay copies every setting present in src onto dst. A rules list in src
// replaces the default rules rather than extending them.
func overlay(dst, src *Config) {
	setString(&dst.Log.Level, src.Log.Level)
	setString(&dst.Input.Unit, src.Input.Unit)
	setString(&dst.Output.Format, src.Output.Format)
	if src.Output.Color != nil {
		dst.Output.Color = src.Output.Color
	}
	if src.Lexer.Rules != nil {
		dst.Lexer.Rules = src.Lexer.Rules
	}
	setString(&dst.Lexer.Fallback, src.Lexer.Fallback)
	setString(&dst.Lexer.Script, src.Lexer.Script)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// decodeTOML decodes data into cfg, rejecting unknown keys.
func decodeTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// decodeYAML decodes data into cfg, rejecting unknown keys. An empty document
// is not an error.
func decodeYAML(path string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}
