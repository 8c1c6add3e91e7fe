// Package watch reconverts a vault whenever its files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/logfields"
	"git.home.luguber.info/inful/vault2hugo/internal/vault"
)

// DefaultDebounce coalesces bursts of filesystem events into one run.
const DefaultDebounce = 300 * time.Millisecond

// Runner converts the whole vault under root.
type Runner interface {
	Run(ctx context.Context, root string) (vault.Summary, error)
}

// Watcher runs a full conversion once at start, after every burst of
// changes below the vault root and optionally on a fixed interval. Runs
// never overlap.
type Watcher struct {
	root       string
	runner     Runner
	debounce   time.Duration
	interval   time.Duration
	ignoreDirs []string
	excluded   []string
	onRun      func(vault.Summary, error)
	logger     *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last event before a run starts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithInterval schedules an additional full run every d. Zero disables it.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) { w.interval = d }
}

// WithIgnoreDirs sets directory names that are never watched.
func WithIgnoreDirs(names []string) Option {
	return func(w *Watcher) { w.ignoreDirs = names }
}

// WithExcludedPaths ignores events below the given directories. Used for
// output trees that live inside the vault.
func WithExcludedPaths(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			if abs, err := filepath.Abs(p); err == nil {
				w.excluded = append(w.excluded, abs)
			}
		}
	}
}

// WithRunHook is called after every run.
func WithRunHook(fn func(vault.Summary, error)) Option {
	return func(w *Watcher) { w.onRun = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New returns a Watcher for the vault at root.
func New(root string, runner Runner, opts ...Option) *Watcher {
	w := &Watcher{
		root:       root,
		runner:     runner,
		debounce:   DefaultDebounce,
		ignoreDirs: vault.DefaultIgnoreDirs,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is canceled. It returns after the in-flight
// conversion, if any, has finished.
func (w *Watcher) Run(ctx context.Context) error {
	root, err := filepath.Abs(w.root)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "resolve vault root").Build()
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return errors.NotFoundError("vault root not found").
			WithCause(vault.ErrRootNotFound).
			WithContext("path", root).
			Build()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "create file watcher").Build()
	}
	defer func() { _ = fsw.Close() }()
	w.addDirsRecursive(fsw, root)

	requests := make(chan struct{}, 1)
	trigger, stopDebounce := newDebouncer(w.debounce, func() { request(requests) })
	defer stopDebounce()

	if w.interval > 0 {
		s, err := w.schedule(requests)
		if err != nil {
			return err
		}
		defer func() { _ = s.Shutdown() }()
	}

	workerCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(workerCtx, root, requests)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	request(requests)
	w.logger.Info("Watching vault for changes", logfields.Path(root), slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watcher", logfields.Path(root))
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// schedule registers the periodic full run with gocron.
func (w *Watcher) schedule(requests chan struct{}) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			w.logger.Debug("Scheduled conversion requested")
			request(requests)
		}),
		gocron.WithName("vault-convert"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic conversion job: %w", err)
	}
	s.Start()
	return s, nil
}

// worker serializes runs. A request arriving during a run is held in the
// channel buffer and starts exactly one follow-up run.
func (w *Watcher) worker(ctx context.Context, root string, requests <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-requests:
			w.logger.Info("Converting vault", logfields.Path(root))
			sum, err := w.runner.Run(ctx, root)
			if err != nil && ctx.Err() == nil {
				w.logger.Warn("Conversion run failed", logfields.Error(err))
			}
			if w.onRun != nil {
				w.onRun(sum, err)
			}
		}
	}
}

func request(requests chan<- struct{}) {
	select {
	case requests <- struct{}{}:
	default:
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || w.excludedPath(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if w.ignoredDir(filepath.Base(ev.Name)) {
				return
			}
			w.addDirsRecursive(fsw, ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && (w.ignoredDir(d.Name()) || w.excludedPath(path)) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func (w *Watcher) ignoredDir(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(w.ignoreDirs, name)
}

func (w *Watcher) excludedPath(path string) bool {
	for _, ex := range w.excluded {
		if path == ex || strings.HasPrefix(path, ex+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// shouldIgnoreEvent reports events for hidden, editor swap and OS metadata
// files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
