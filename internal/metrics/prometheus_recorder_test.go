package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncDocument(DocumentConverted)
	pr.IncDocument(DocumentConverted)
	pr.IncDocument(DocumentSkipped)
	pr.IncSkip("no_header")
	pr.IncAsset("copied")
	pr.ObserveDocumentDuration(2 * time.Millisecond)
	pr.ObserveRunDuration(150 * time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.documents.WithLabelValues(string(DocumentConverted))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.skips.WithLabelValues("no_header")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.assets.WithLabelValues("copied")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncDocument(DocumentFailed)

	path := filepath.Join(t.TempDir(), "vault2hugo.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `vault2hugo_documents_total{outcome="failed"} 1`))
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncDocument(DocumentConverted)
	pr.IncSkip("x")
	pr.IncAsset("copied")
	pr.ObserveDocumentDuration(time.Second)
	pr.ObserveRunDuration(time.Second)
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
