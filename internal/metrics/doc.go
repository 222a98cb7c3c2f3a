// Package metrics records build metrics.
//
// Components receive a Recorder and default to NoopRecorder. PrometheusRecorder
// backs the interface with client_golang collectors on a private registry,
// which is written to a node exporter textfile after the build.
package metrics
