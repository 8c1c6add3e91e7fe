// Package vault walks a note vault and drives the conversion of every
// document it contains.
package vault

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/logfields"
)

// Defaults used when DiscoveryOptions leaves a field empty.
var (
	DefaultIgnoreDirs  = []string{".trash", ".git"}
	DefaultDocumentExt = ".md"
)

// Inventory is the result of walking a vault.
type Inventory struct {
	Root string

	// Documents are converted in this order.
	Documents []string

	// Candidates are every non-document file, as absolute paths.
	Candidates []string
}

// DiscoveryOptions controls which files the walk reports.
type DiscoveryOptions struct {
	IgnoreDirs  []string
	DocumentExt string

	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the root, e.g. "templates/**" or "**/*.excalidraw.md".
	Exclude []string
}

func (o DiscoveryOptions) withDefaults() DiscoveryOptions {
	if len(o.IgnoreDirs) == 0 {
		o.IgnoreDirs = DefaultIgnoreDirs
	}
	if o.DocumentExt == "" {
		o.DocumentExt = DefaultDocumentExt
	}
	return o
}

// Discover walks root recursively. Ignored and dot-prefixed directories are
// not descended into and dot-prefixed files are skipped. Files ending in the
// document extension are documents; every other file is a resource
// candidate.
func Discover(root string, opts DiscoveryOptions) (Inventory, error) {
	opts = opts.withDefaults()

	abs, err := filepath.Abs(root)
	if err != nil {
		return Inventory{}, errors.WrapError(err, errors.CategoryFileSystem, "resolve vault root").
			WithContext("path", root).
			Build()
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return Inventory{}, errors.NotFoundError("vault root not found").
			WithCause(ErrRootNotFound).
			WithContext("path", abs).
			Build()
	}

	inv := Inventory{Root: abs}
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == abs {
			return nil
		}
		name := d.Name()
		excluded := excludedPath(abs, path, opts.Exclude)
		if d.IsDir() {
			if ignoredDir(name, opts.IgnoreDirs) || excluded {
				slog.Debug("Skipping directory", logfields.Path(path))
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || excluded {
			return nil
		}
		if strings.HasSuffix(name, opts.DocumentExt) {
			inv.Documents = append(inv.Documents, path)
		} else {
			inv.Candidates = append(inv.Candidates, path)
		}
		return nil
	})
	if walkErr != nil {
		return Inventory{}, errors.WrapError(fmt.Errorf("%w: %w", ErrWalkFailed, walkErr), errors.CategoryFileSystem, "walk vault").
			WithContext("path", abs).
			Build()
	}

	slog.Info("Vault discovered",
		logfields.Path(abs),
		slog.Int("documents", len(inv.Documents)),
		slog.Int("candidates", len(inv.Candidates)))
	return inv, nil
}

func ignoredDir(name string, ignore []string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(ignore, name)
}

func excludedPath(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
