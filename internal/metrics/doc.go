// Package metrics provides conversion metrics for vault2hugo.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed:
//
//	m := assets.NewMaterializer(assets.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder registers counters and histograms on a private
// registry. The CLI can dump that registry in the node_exporter textfile
// format after a run with WriteTextfile.
package metrics
