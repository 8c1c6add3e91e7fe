package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/vault"
	"git.home.luguber.info/inful/vault2hugo/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Vault    string        `arg:"" optional:"" help:"Vault root (overrides vault.path)" type:"path"`
	Every    time.Duration `name:"every" help:"Also run a full conversion at this interval (e.g. 10m)"`
	Debounce time.Duration `name:"debounce" help:"Quiet period before a change triggers a run" default:"300ms"`
	DryRun   bool          `name:"dry-run" help:"Log resource copies instead of performing them"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	if w.Every < 0 {
		return errors.ValidationError("--every must not be negative").Build()
	}
	cfg, err := LoadConfig(g, root, w.Vault)
	if err != nil {
		return err
	}
	p, err := NewPipeline(cfg, w.DryRun, nil, g.Logger)
	if err != nil {
		return err
	}

	// Output trees may live inside the vault; their writes must not retrigger runs.
	contentDir, _ := cfg.Site.ContentPath()
	imagesDir, _ := cfg.Site.ImagesPath()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher := watch.New(cfg.Vault.Path, p.Driver,
		watch.WithDebounce(w.Debounce),
		watch.WithInterval(w.Every),
		watch.WithIgnoreDirs(cfg.Vault.IgnoreDirs),
		watch.WithExcludedPaths(contentDir, imagesDir),
		watch.WithLogger(g.Logger),
		watch.WithRunHook(func(sum vault.Summary, err error) {
			if err == nil {
				printSummary(sum)
			}
		}),
	)
	return watcher.Run(ctx)
}
