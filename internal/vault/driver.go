package vault

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/vault2hugo/internal/convert"
	"git.home.luguber.info/inful/vault2hugo/internal/logfields"
	"git.home.luguber.info/inful/vault2hugo/internal/metrics"
)

// DocumentConverter converts one document against the candidate list.
type DocumentConverter interface {
	Convert(ctx context.Context, path string, candidates []string) (convert.Result, error)
}

// Failure is a document that could not be converted.
type Failure struct {
	Path string
	Err  error
}

// Summary aggregates the outcome of a Run.
type Summary struct {
	Documents  int
	Converted  int
	Skipped    int
	Failed     int
	Failures   []Failure
	Skips      map[convert.SkipReason]int
	Duration   time.Duration
	Candidates int
}

// Driver converts every document of a vault sequentially.
type Driver struct {
	converter DocumentConverter
	discovery DiscoveryOptions
	recorder  metrics.Recorder
	logger    *slog.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithDiscoveryOptions sets the directories to ignore and the document extension.
func WithDiscoveryOptions(o DiscoveryOptions) DriverOption {
	return func(d *Driver) { d.discovery = o }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) DriverOption {
	return func(d *Driver) { d.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// NewDriver returns a Driver using conv for each document.
func NewDriver(conv DocumentConverter, opts ...DriverOption) *Driver {
	d := &Driver{
		converter: conv,
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run discovers the vault under root and converts each document with the
// full candidate list. A failing document is logged and recorded in the
// Summary; the run continues with the next one. The returned error is
// non-nil only when the vault cannot be walked or ctx is canceled.
func (d *Driver) Run(ctx context.Context, root string) (Summary, error) {
	start := time.Now()
	defer func() {
		d.recorder.ObserveRunDuration(time.Since(start))
	}()

	inv, err := Discover(root, d.discovery)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Documents:  len(inv.Documents),
		Candidates: len(inv.Candidates),
		Skips:      make(map[convert.SkipReason]int),
	}
	for _, doc := range inv.Documents {
		if err := ctx.Err(); err != nil {
			sum.Duration = time.Since(start)
			return sum, err
		}

		res, err := d.converter.Convert(ctx, doc, inv.Candidates)
		switch {
		case err != nil:
			sum.Failed++
			sum.Failures = append(sum.Failures, Failure{Path: doc, Err: err})
			d.logger.Error("Document conversion failed", logfields.Path(doc), logfields.Error(err))
		case res.Skipped:
			sum.Skipped++
			sum.Skips[res.Reason]++
		default:
			sum.Converted++
		}
	}

	sum.Duration = time.Since(start)
	d.logger.Info("Vault conversion complete",
		logfields.Path(inv.Root),
		slog.Int("converted", sum.Converted),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed),
		logfields.DurationMS(float64(sum.Duration.Milliseconds())))
	return sum, nil
}
