// Package config loads the optional sitegen.yaml build configuration.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "sitegen.yaml"

// Config represents the build configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Paths   PathsConfig   `yaml:"paths"`
	Build   BuildConfig   `yaml:"build"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SiteConfig holds literal site identity.
type SiteConfig struct {
	Title string `yaml:"title" validate:"required"`
	Lang  string `yaml:"lang" validate:"required,bcp47_language_tag"`
}

// PathsConfig locates the inputs and the output root. Relative paths are
// resolved against the working directory.
type PathsConfig struct {
	Content string `yaml:"content" validate:"required"`
	Source  string `yaml:"source"`
	Output  string `yaml:"output" validate:"required"`
}

// BuildConfig tunes the build run.
type BuildConfig struct {
	Concurrency int `yaml:"concurrency" validate:"min=1,max=64"`
	// StrictSections fails the build when an article names an unknown section.
	StrictSections bool `yaml:"strict_sections"`
	VerifyLinks    bool `yaml:"verify_links"`
}

// MetricsConfig controls the Prometheus textfile written after a build.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Site:  SiteConfig{Title: "Politica & Geopolitica", Lang: "it"},
		Paths: PathsConfig{Content: "core.json", Source: "src", Output: "."},
		Build: BuildConfig{Concurrency: 4, VerifyLinks: true},
	}
}

// LoadEnvFiles loads .env and .env.local from dir. Variables already in the
// process environment win; missing files are ignored.
func LoadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load env file", "path", p, "error", err)
		}
	}
}

// Load reads configPath over the defaults. A missing file yields the
// defaults; ${VAR} references are expanded before decoding.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, cfg.Validate()
	}

	// #nosec G304 -- configuration path is operator supplied
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("path", configPath).Build()
	}

	dec := yaml.NewDecoder(bytes.NewBufferString(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			Fatal().WithContext("path", configPath).Build()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid configuration").Fatal().Build()
	}
	return nil
}

// SourcePath joins name onto the source directory, or returns "" when no
// source directory is configured.
func (c *Config) SourcePath(name string) string {
	if c.Paths.Source == "" {
		return ""
	}
	return filepath.Join(c.Paths.Source, name)
}
