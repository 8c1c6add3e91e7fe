package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/vault"
)

// FileCmd implements the 'file' command.
type FileCmd struct {
	Document  string   `arg:"" help:"Document to convert" type:"existingfile"`
	Resources []string `name:"resource" short:"r" help:"Resource candidate path (repeatable). Defaults to every resource of the vault." type:"path"`
	DryRun    bool     `name:"dry-run" help:"Log resource copies instead of performing them"`
}

func (f *FileCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(g, root, "")
	if err != nil {
		return err
	}
	p, err := NewPipeline(cfg, f.DryRun, nil, g.Logger)
	if err != nil {
		return err
	}

	candidates := f.Resources
	if len(candidates) == 0 {
		inv, err := vault.Discover(cfg.Vault.Path, discoveryOptions(cfg))
		if err != nil {
			return err
		}
		candidates = inv.Candidates
	}

	doc, err := filepath.Abs(f.Document)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "resolve document path").Build()
	}
	res, err := p.Converter.Convert(context.Background(), doc, candidates)
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Printf("Skipped %s (%s)\n", doc, res.Reason)
		return nil
	}
	fmt.Printf("Wrote %s (%d tags, %d resources)\n", res.Output, len(res.Tags), len(res.Assets))
	return nil
}
