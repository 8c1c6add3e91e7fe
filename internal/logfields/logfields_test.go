package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Path", KeyPath, "/vault/a.md", Path("/vault/a.md")},
		{"File", KeyFile, "a.md", File("a.md")},
		{"Output", KeyOutput, "content/post/a.md", Output("content/post/a.md")},
		{"Asset", KeyAsset, "static/images/x.png", Asset("static/images/x.png")},
		{"Target", KeyTarget, "x.png", Target("x.png")},
		{"Reason", KeyReason, "no_header", Reason("no_header")},
		{"Outcome", KeyOutcome, "copied", Outcome("copied")},
		{"ErrorNil", KeyError, "", Error(nil)},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s: expected key %s got %s", c.name, c.attrKey, c.attr.Key)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s: expected value %s got %s", c.name, c.attrVal, c.attr.Value.String())
		}
	}
}

func TestNonStringHelpers(t *testing.T) {
	if a := DryRun(true); a.Key != KeyDryRun || !a.Value.Bool() {
		t.Fatalf("DryRun attr mismatch: %v", a)
	}
	if a := Count(3); a.Key != KeyCount || a.Value.Int64() != 3 {
		t.Fatalf("Count attr mismatch: %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("DurationMS attr mismatch: %v", a)
	}
}
