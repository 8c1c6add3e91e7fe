package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/logfields"
	"git.home.luguber.info/inful/vault2hugo/internal/metrics"
	"git.home.luguber.info/inful/vault2hugo/internal/vault"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	Vault           string `arg:"" optional:"" help:"Vault root (overrides vault.path)" type:"path"`
	DryRun          bool   `name:"dry-run" help:"Log resource copies instead of performing them"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics to this file after the run" type:"path"`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(g, root, c.Vault)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var rec *metrics.PrometheusRecorder
	if c.MetricsTextfile != "" {
		rec = metrics.NewPrometheusRecorder(nil)
	}
	p, err := NewPipeline(cfg, c.DryRun, recorderOrNoop(rec), g.Logger)
	if err != nil {
		return err
	}

	sum, runErr := p.Driver.Run(ctx, cfg.Vault.Path)
	if rec != nil {
		if err := rec.WriteTextfile(c.MetricsTextfile); err != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(c.MetricsTextfile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	printSummary(sum)
	if sum.Failed > 0 {
		return errors.DocsError(fmt.Sprintf("%d of %d documents failed to convert", sum.Failed, sum.Documents)).
			WithContext("path", cfg.Vault.Path).
			Build()
	}
	return nil
}

func recorderOrNoop(rec *metrics.PrometheusRecorder) metrics.Recorder {
	if rec == nil {
		return metrics.NoopRecorder{}
	}
	return rec
}

func printSummary(sum vault.Summary) {
	fmt.Printf("Converted %d, skipped %d, failed %d of %d documents (%d resource candidates)\n",
		sum.Converted, sum.Skipped, sum.Failed, sum.Documents, sum.Candidates)
	for _, f := range sum.Failures {
		fmt.Printf("  failed: %s: %v\n", f.Path, f.Err)
	}
}
