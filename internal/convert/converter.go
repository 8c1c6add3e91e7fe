// Package convert turns a single vault note into a Hugo content document.
package convert

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/frontmatter"
	"git.home.luguber.info/inful/vault2hugo/internal/logfields"
	"git.home.luguber.info/inful/vault2hugo/internal/metrics"
	"git.home.luguber.info/inful/vault2hugo/internal/obsidian"
)

// DefaultFence toggles a fenced code region when it appears anywhere in a line.
const DefaultFence = "```"

// Result describes the outcome of converting one document.
type Result struct {
	Source  string
	Output  string
	Skipped bool
	Reason  SkipReason
	Tags    []string
	Assets  []obsidian.Resolution
}

// Converter converts documents one at a time. It keeps no state between
// documents.
type Converter struct {
	contentDir string
	links      LineRewriter
	policy     frontmatter.Policy
	fence      string
	times      TimeSource
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithPolicy sets the header normalization policy.
func WithPolicy(p frontmatter.Policy) Option {
	return func(c *Converter) { c.policy = p }
}

// WithFence overrides the fenced code toggle token.
func WithFence(fence string) Option {
	return func(c *Converter) {
		if fence != "" {
			c.fence = fence
		}
	}
}

// WithTimeSource injects the timestamp source for date and lastmod.
func WithTimeSource(ts TimeSource) Option {
	return func(c *Converter) { c.times = ts }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Converter) { c.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// New returns a Converter writing into contentDir.
func New(contentDir string, links LineRewriter, opts ...Option) *Converter {
	c := &Converter{
		contentDir: contentDir,
		links:      links,
		policy:     frontmatter.DefaultPolicy(),
		fence:      DefaultFence,
		times:      StatTimes{},
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OutputPath returns where the document at path is written.
func (c *Converter) OutputPath(path string) string {
	return filepath.Join(c.contentDir, filepath.Base(path))
}

// Convert reads the document at path and writes its converted form.
//
// Skipped documents return a Result with Skipped set and a nil error. On
// error no output file is written.
func (c *Converter) Convert(ctx context.Context, path string, candidates []string) (Result, error) {
	start := time.Now()
	res, err := c.convert(ctx, path, candidates)
	c.recorder.ObserveDocumentDuration(time.Since(start))

	switch {
	case err != nil:
		c.recorder.IncDocument(metrics.DocumentFailed)
	case res.Skipped:
		c.recorder.IncDocument(metrics.DocumentSkipped)
		c.recorder.IncSkip(string(res.Reason))
	default:
		c.recorder.IncDocument(metrics.DocumentConverted)
	}
	return res, err
}

func (c *Converter) convert(ctx context.Context, path string, candidates []string) (Result, error) {
	res := Result{Source: path}
	c.logger.Info("Converting document", logfields.Path(path))

	f, err := os.Open(path)
	if err != nil {
		return res, errors.WrapError(err, errors.CategoryFileSystem, "open document").
			WithContext("path", path).
			Build()
	}
	defer func() {
		_ = f.Close()
	}()

	m, err := c.run(ctx, f, candidates)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	res.Tags = m.tags
	res.Assets = m.assets

	if m.skip != SkipNone {
		res.Skipped = true
		res.Reason = m.skip
		c.logger.Debug("Skipping document", logfields.Path(path), logfields.Reason(string(m.skip)))
		return res, nil
	}

	times, err := c.times.Times(path)
	if err != nil {
		return res, errors.WrapError(err, errors.CategoryFileSystem, "read document timestamps").
			WithContext("path", path).
			Build()
	}

	frontmatter.Normalize(m.fields, c.policy)
	out := render(m, times, c.policy)

	res.Output = c.OutputPath(path)
	if err := writeAtomic(res.Output, out); err != nil {
		return res, errors.WrapError(err, errors.CategoryFileSystem, "write converted document").
			WithContext("path", res.Output).
			Build()
	}

	c.logger.Info("Document converted",
		logfields.Path(path),
		logfields.Output(res.Output),
		slog.Int("tags", len(m.tags)),
		slog.Int("assets", len(m.assets)))
	return res, nil
}

// run drives the state machine over r.
func (c *Converter) run(ctx context.Context, r io.Reader, candidates []string) (*machine, error) {
	m := newMachine(c.fence, c.links, candidates)
	br := bufio.NewReader(r)
	lineNo := 0
	for !m.done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.WrapError(readErr, errors.CategoryFileSystem, "read document").Build()
		}
		if line == "" && readErr == io.EOF {
			break
		}
		lineNo++
		if err := m.feed(trimNewline(line)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if readErr == io.EOF {
			break
		}
	}
	m.end()
	return m, nil
}

func render(m *machine, times frontmatter.FileTimes, p frontmatter.Policy) []byte {
	var buf bytes.Buffer
	buf.Write(frontmatter.Encode(m.fields, m.tags, times, p))
	for _, line := range m.body {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// writeAtomic writes data next to path and renames it into place so readers
// never observe a partial document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".vault2hugo-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
