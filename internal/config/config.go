// Package config loads the vault2hugo configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/frontmatter"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "vault2hugo.yaml"

// Config represents the application configuration.
type Config struct {
	Vault       VaultConfig       `yaml:"vault"`
	Site        SiteConfig        `yaml:"site"`
	Frontmatter FrontmatterConfig `yaml:"frontmatter"`
	LogLevel    slog.Level        `yaml:"log_level"`
}

// VaultConfig describes the source note vault.
type VaultConfig struct {
	Path        string   `yaml:"path"`
	IgnoreDirs  []string `yaml:"ignore_dirs,omitempty"`
	DocumentExt string   `yaml:"document_ext,omitempty"`

	// Exclude holds doublestar patterns relative to Path.
	Exclude []string `yaml:"exclude,omitempty"`
}

// SiteConfig describes the Hugo site receiving converted content.
// ContentDir and ImagesDir are resolved against Root unless absolute.
type SiteConfig struct {
	Root       string `yaml:"root"`
	ContentDir string `yaml:"content_dir"`
	ImagesDir  string `yaml:"images_dir"`

	// LinkPrefix replaces the images directory in rewritten links, e.g. "/images".
	LinkPrefix string `yaml:"link_prefix,omitempty"`
}

// ContentPath returns the absolute directory converted documents are written to.
func (s SiteConfig) ContentPath() (string, error) {
	return s.resolve(s.ContentDir)
}

// ImagesPath returns the absolute directory resources are copied to.
func (s SiteConfig) ImagesPath() (string, error) {
	return s.resolve(s.ImagesDir)
}

func (s SiteConfig) resolve(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.Root, dir)
	}
	return filepath.Abs(dir)
}

// FrontmatterConfig controls header normalization.
type FrontmatterConfig struct {
	// Defaults are injected in order when the header lacks the key.
	Defaults        []DefaultField `yaml:"defaults"`
	DefaultCategory string         `yaml:"default_category"`
}

// DefaultField is one injected header key. Value is emitted verbatim.
type DefaultField struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Policy converts the configuration into the header normalization policy.
func (f FrontmatterConfig) Policy() frontmatter.Policy {
	p := frontmatter.Policy{DefaultCategory: f.DefaultCategory}
	for _, d := range f.Defaults {
		p.Defaults = append(p.Defaults, frontmatter.Field{Key: d.Key, Value: frontmatter.StringValue(d.Value)})
	}
	return p
}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from configPath. A missing file yields the
// defaults. Environment variables are expanded after .env files in the
// working directory have been loaded. The result is not validated.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "load .env file").Build()
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		slog.Debug("Configuration file not found, using defaults", slog.String("path", configPath))
		return NewDefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "read config file").
			WithContext("path", configPath).
			Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse config file").
			WithContext("path", configPath).
			Build()
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Init writes an example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigurationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	example := NewDefaultConfig()
	example.Vault.Path = "./vault"
	example.Site.LinkPrefix = "/images"

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal example config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
