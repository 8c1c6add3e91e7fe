package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vault2hugo/internal/errors"
)

type recordingCopier struct {
	calls [][2]string
}

func (r *recordingCopier) CopyFile(src, dst string) error {
	r.calls = append(r.calls, [2]string{src, dst})
	return nil
}

func writeFile(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestMaterialize_CopiesWhenDestinationMissing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "vault", "img.png")
	dst := filepath.Join(dir, "static", "images", "nested", "img.png")
	writeFile(t, src, "png-bytes", time.Now())

	m := NewMaterializer()
	outcome, err := m.Materialize(src, dst)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCopied, outcome)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestMaterialize_DryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "img.png")
	dst := filepath.Join(dir, "static", "images", "img.png")
	writeFile(t, src, "x", time.Now())

	copier := &recordingCopier{}
	m := NewMaterializer(WithDryRun(true), WithCopier(copier))
	outcome, err := m.Materialize(src, dst)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDryRun, outcome)
	assert.Empty(t, copier.calls)

	_, err = os.Stat(filepath.Join(dir, "static"))
	assert.True(t, os.IsNotExist(err))
}

func TestMaterialize_FreshnessShortCircuit(t *testing.T) {
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	tests := []struct {
		name     string
		srcTime  time.Time
		dstTime  time.Time
		dryRun   bool
		expected Outcome
		copies   int
	}{
		{"destination newer skips copy", base, base.Add(time.Minute), false, OutcomeFresh, 0},
		{"destination newer skips dry run log", base, base.Add(time.Minute), true, OutcomeFresh, 0},
		{"destination older copies", base.Add(time.Minute), base, false, OutcomeCopied, 1},
		// Equal timestamps are not strictly newer, so the copy still happens.
		{"equal timestamps copy", base, base, false, OutcomeCopied, 1},
		{"destination older dry run", base.Add(time.Minute), base, true, OutcomeDryRun, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src.png")
			dst := filepath.Join(dir, "dst.png")
			writeFile(t, src, "new", tt.srcTime)
			writeFile(t, dst, "old", tt.dstTime)

			copier := &recordingCopier{}
			m := NewMaterializer(WithDryRun(tt.dryRun), WithCopier(copier))
			outcome, err := m.Materialize(src, dst)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, outcome)
			assert.Len(t, copier.calls, tt.copies)
		})
	}
}

func TestMaterialize_MissingSourceIsAssetError(t *testing.T) {
	dir := t.TempDir()
	m := NewMaterializer()
	_, err := m.Materialize(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out", "missing.png"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryAssets))
}

func TestFileCopier_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o750))

	dst := filepath.Join(dir, "a", "b", "script.sh")
	require.NoError(t, FileCopier{}.CopyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
}
