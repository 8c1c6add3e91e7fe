package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vault2hugo/internal/assets"
	"git.home.luguber.info/inful/vault2hugo/internal/config"
	"git.home.luguber.info/inful/vault2hugo/internal/convert"
	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/metrics"
	"git.home.luguber.info/inful/vault2hugo/internal/obsidian"
	"git.home.luguber.info/inful/vault2hugo/internal/vault"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (optional)" default:"vault2hugo.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" help:"Convert every document of a vault into Hugo content"`
	File    FileCmd    `cmd:"" help:"Convert a single document"`
	Watch   WatchCmd   `cmd:"" help:"Reconvert the vault whenever it changes"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = newLogger(level)
	slog.SetDefault(g.Logger)
	return nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// LoadConfig loads and validates the configuration named by the global
// flag. The vault argument, when set, overrides vault.path. A configured
// log level below the current one takes effect unless --verbose is set.
func LoadConfig(g *Global, root *CLI, vaultPath string) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	if vaultPath != "" {
		cfg.Vault.Path = vaultPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !root.Verbose && cfg.LogLevel != slog.LevelInfo {
		g.Logger = newLogger(cfg.LogLevel)
		slog.SetDefault(g.Logger)
	}
	return cfg, nil
}

// Pipeline is the wired conversion stack for one command invocation.
type Pipeline struct {
	Assets    *assets.Materializer
	Converter *convert.Converter
	Driver    *vault.Driver
}

// NewPipeline wires the materializer, link resolver, converter and driver
// from cfg.
func NewPipeline(cfg *config.Config, dryRun bool, rec metrics.Recorder, logger *slog.Logger) (*Pipeline, error) {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	contentDir, err := cfg.Site.ContentPath()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "resolve content directory").Build()
	}
	imagesDir, err := cfg.Site.ImagesPath()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "resolve images directory").Build()
	}

	m := assets.NewMaterializer(
		assets.WithDryRun(dryRun),
		assets.WithRecorder(rec),
		assets.WithLogger(logger),
	)
	links := obsidian.NewLinkResolver(imagesDir, cfg.Site.LinkPrefix, m, logger)
	conv := convert.New(contentDir, links,
		convert.WithPolicy(cfg.Frontmatter.Policy()),
		convert.WithRecorder(rec),
		convert.WithLogger(logger),
	)
	driver := vault.NewDriver(conv,
		vault.WithDiscoveryOptions(discoveryOptions(cfg)),
		vault.WithRecorder(rec),
		vault.WithLogger(logger),
	)
	return &Pipeline{Assets: m, Converter: conv, Driver: driver}, nil
}

func discoveryOptions(cfg *config.Config) vault.DiscoveryOptions {
	return vault.DiscoveryOptions{
		IgnoreDirs:  cfg.Vault.IgnoreDirs,
		DocumentExt: cfg.Vault.DocumentExt,
		Exclude:     cfg.Vault.Exclude,
	}
}
