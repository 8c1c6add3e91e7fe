package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vault2hugo/internal/config"
	"git.home.luguber.info/inful/vault2hugo/internal/errors"
)

type siteFixture struct {
	dir    string
	vault  string
	site   string
	config string
}

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	fx := &siteFixture{
		dir:    dir,
		vault:  filepath.Join(dir, "vault"),
		site:   filepath.Join(dir, "site"),
		config: filepath.Join(dir, "vault2hugo.yaml"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(fx.vault, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(fx.vault, "assets", "cat.jpg"), []byte("jpg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fx.vault, "cats.md"),
		[]byte("---\npublished: true\n---\n![[cat.jpg]] #pets\n"), 0o644))
	require.NoError(t, os.WriteFile(fx.config, []byte(
		"vault:\n  path: "+fx.vault+"\nsite:\n  root: "+fx.site+"\n  link_prefix: /images\n"), 0o644))
	return fx
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	global := &Global{}
	parser, err := kong.New(&cli,
		kong.Name("vault2hugo"),
		kong.Vars{"version": "test"},
		kong.Bind(global),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(global, &cli)
}

func TestConvertCommand(t *testing.T) {
	fx := newSiteFixture(t)
	textfile := filepath.Join(fx.dir, "vault2hugo.prom")

	require.NoError(t, run(t, "-c", fx.config, "convert", "--metrics-textfile", textfile))

	out, err := os.ReadFile(filepath.Join(fx.site, "content", "post", "cats.md"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n![image](/images/cat.jpg)\n")
	assert.Contains(t, string(out), `tags: ["pets"]`)
	assert.FileExists(t, filepath.Join(fx.site, "static", "images", "cat.jpg"))

	metrics, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `vault2hugo_documents_total{outcome="converted"} 1`)
	assert.Contains(t, string(metrics), `vault2hugo_assets_total{outcome="copied"} 1`)
}

func TestConvertCommand_DryRunSkipsCopies(t *testing.T) {
	fx := newSiteFixture(t)

	require.NoError(t, run(t, "-c", fx.config, "convert", "--dry-run", fx.vault))

	assert.FileExists(t, filepath.Join(fx.site, "content", "post", "cats.md"))
	assert.NoFileExists(t, filepath.Join(fx.site, "static", "images", "cat.jpg"))
}

func TestConvertCommand_FailedDocumentIsDocsError(t *testing.T) {
	fx := newSiteFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(fx.vault, "broken.md"),
		[]byte("---\ndraft: true\n- item\n---\nbody\n"), 0o644))

	err := run(t, "-c", fx.config, "convert")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryDocs))
	assert.FileExists(t, filepath.Join(fx.site, "content", "post", "cats.md"))
}

func TestFileCommand(t *testing.T) {
	fx := newSiteFixture(t)
	doc := filepath.Join(fx.vault, "cats.md")

	require.NoError(t, run(t, "-c", fx.config, "file", doc, "--resource", filepath.Join(fx.vault, "assets", "cat.jpg")))

	out, err := os.ReadFile(filepath.Join(fx.site, "content", "post", "cats.md"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "/images/cat.jpg")
}

func TestFileCommand_RelativeResourceIsConfigError(t *testing.T) {
	fx := newSiteFixture(t)
	require.NoError(t, os.WriteFile(fx.config, []byte("site:\n  root: "+fx.site+"\n"), 0o644))
	doc := filepath.Join(fx.vault, "cats.md")

	p, err := NewPipeline(mustLoad(t, fx.config), false, nil, nil)
	require.NoError(t, err)
	_, err = p.Converter.Convert(t.Context(), doc, []string{"assets/cat.jpg"})
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Equal(t, 7, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfgPath := filepath.Join(dir, "new.yaml")

	require.NoError(t, run(t, "-c", cfgPath, "init"))
	assert.FileExists(t, cfgPath)

	err := run(t, "-c", cfgPath, "init")
	assert.True(t, errors.IsConfiguration(err))
	require.NoError(t, run(t, "-c", cfgPath, "init", "--force"))
}

func mustLoad(t *testing.T, path string) *config.Config {
	t.Helper()
	g := &Global{Logger: newLogger(0)}
	cfg, err := LoadConfig(g, &CLI{Config: path}, "")
	require.NoError(t, err)
	return cfg
}
