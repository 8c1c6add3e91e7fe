// Package assets materializes resources referenced from notes into the
// site's static asset tree.
package assets

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/logfields"
	"git.home.luguber.info/inful/vault2hugo/internal/metrics"
)

// Outcome describes what Materialize did for one resource.
type Outcome string

const (
	// OutcomeFresh means the destination is newer than the source; nothing was copied.
	OutcomeFresh  Outcome = "fresh"
	OutcomeCopied Outcome = "copied"
	OutcomeDryRun Outcome = "dry_run"
)

// Copier copies src to dst, creating dst's parent directories.
type Copier interface {
	CopyFile(src, dst string) error
}

// Materializer applies the copy policy for resolved resources.
type Materializer struct {
	dryRun   bool
	copier   Copier
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithDryRun replaces copies with a logged intention.
func WithDryRun(dryRun bool) Option {
	return func(m *Materializer) { m.dryRun = dryRun }
}

// WithCopier injects the copy capability.
func WithCopier(c Copier) Option {
	return func(m *Materializer) { m.copier = c }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(m *Materializer) { m.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Materializer) { m.logger = l }
}

// NewMaterializer returns a Materializer copying with FileCopier by default.
func NewMaterializer(opts ...Option) *Materializer {
	m := &Materializer{
		copier:   FileCopier{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DryRun reports whether copies are only logged.
func (m *Materializer) DryRun() bool {
	return m.dryRun
}

// Materialize ensures dst holds a copy of src.
//
// The copy is skipped when dst exists and its modification time is strictly
// newer than src's, whatever the dry-run setting.
func (m *Materializer) Materialize(src, dst string) (Outcome, error) {
	if dstInfo, err := os.Stat(dst); err == nil {
		srcInfo, err := os.Stat(src)
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryAssets, "stat resource").
				WithContext("path", src).
				Build()
		}
		if dstInfo.ModTime().After(srcInfo.ModTime()) {
			m.logger.Debug("Asset up to date", logfields.Path(src), logfields.Asset(dst))
			m.recorder.IncAsset(string(OutcomeFresh))
			return OutcomeFresh, nil
		}
	}

	if m.dryRun {
		m.logger.Info("[dryrun] copy asset", logfields.Path(src), logfields.Asset(dst), logfields.DryRun(true))
		m.recorder.IncAsset(string(OutcomeDryRun))
		return OutcomeDryRun, nil
	}

	if err := m.copier.CopyFile(src, dst); err != nil {
		return "", errors.WrapError(err, errors.CategoryAssets, "copy resource").
			WithContext("path", src).
			WithContext("destination", dst).
			Build()
	}
	m.logger.Debug("Asset copied", logfields.Path(src), logfields.Asset(dst))
	m.recorder.IncAsset(string(OutcomeCopied))
	return OutcomeCopied, nil
}
