package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Vault.Validate(); err != nil {
		return invalid("vault", err)
	}
	if err := c.Site.Validate(); err != nil {
		return invalid("site", err)
	}
	if err := c.Frontmatter.Validate(); err != nil {
		return invalid("frontmatter", err)
	}
	return nil
}

func invalid(section string, err error) error {
	return errors.WrapError(err, errors.CategoryConfig, "invalid "+section+" configuration").Build()
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.DocumentExt, validation.Required, validation.By(leadingDot)),
		validation.Field(&c.IgnoreDirs, validation.Each(validation.Required, validation.By(plainName))),
		validation.Field(&c.Exclude, validation.Each(validation.Required, validation.By(globPattern))),
	)
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.ImagesDir, validation.Required),
	)
}

// Validate validates the header normalization configuration.
func (c *FrontmatterConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DefaultCategory, validation.Required),
	); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Defaults))
	for i, d := range c.Defaults {
		if strings.TrimSpace(d.Key) == "" {
			return fmt.Errorf("defaults[%d]: key is required", i)
		}
		if _, dup := seen[d.Key]; dup {
			return fmt.Errorf("defaults[%d]: duplicate key %q", i, d.Key)
		}
		seen[d.Key] = struct{}{}
	}
	return nil
}

func leadingDot(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, ".") {
		return validation.NewError("validation_leading_dot", "must start with a dot")
	}
	return nil
}

func plainName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return validation.NewError("validation_plain_name", "must be a directory name, not a path")
	}
	return nil
}

func globPattern(value any) error {
	s, _ := value.(string)
	if !doublestar.ValidatePattern(s) {
		return validation.NewError("validation_glob", "must be a valid glob pattern")
	}
	return nil
}
