package config

import (
	"git.home.luguber.info/inful/vault2hugo/internal/frontmatter"
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

var defaultAppliers = []DefaultApplier{
	VaultDefaultApplier{},
	SiteDefaultApplier{},
	FrontmatterDefaultApplier{},
}

func applyDefaults(cfg *Config) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}

// VaultDefaultApplier handles vault defaults.
type VaultDefaultApplier struct{}

func (VaultDefaultApplier) Domain() string { return "vault" }

func (VaultDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Vault.Path == "" {
		cfg.Vault.Path = "."
	}
	if len(cfg.Vault.IgnoreDirs) == 0 {
		cfg.Vault.IgnoreDirs = []string{".trash", ".git"}
	}
	if cfg.Vault.DocumentExt == "" {
		cfg.Vault.DocumentExt = ".md"
	}
}

// SiteDefaultApplier handles site defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Site.Root == "" {
		cfg.Site.Root = "."
	}
	if cfg.Site.ContentDir == "" {
		cfg.Site.ContentDir = "content/post"
	}
	if cfg.Site.ImagesDir == "" {
		cfg.Site.ImagesDir = "static/images"
	}
}

// FrontmatterDefaultApplier handles header normalization defaults. An
// explicitly empty defaults list in the file is kept empty.
type FrontmatterDefaultApplier struct{}

func (FrontmatterDefaultApplier) Domain() string { return "frontmatter" }

func (FrontmatterDefaultApplier) ApplyDefaults(cfg *Config) {
	p := frontmatter.DefaultPolicy()
	if cfg.Frontmatter.Defaults == nil {
		for _, f := range p.Defaults {
			cfg.Frontmatter.Defaults = append(cfg.Frontmatter.Defaults, DefaultField{Key: f.Key, Value: f.Value.String()})
		}
	}
	if cfg.Frontmatter.DefaultCategory == "" {
		cfg.Frontmatter.DefaultCategory = p.DefaultCategory
	}
}
