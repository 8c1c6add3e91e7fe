package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyAsset      = "asset"
	KeyTarget     = "target"
	KeyReason     = "reason"
	KeyOutcome    = "outcome"
	KeyDryRun     = "dry_run"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Asset(p string) slog.Attr        { return slog.String(KeyAsset, p) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func DryRun(b bool) slog.Attr         { return slog.Bool(KeyDryRun, b) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
