// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package metrics exposes the figures of the reliability computations as
// Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/junkawahara/reliability-tdzdd/reliability"
)

var (
	DiagramNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reliability_diagram_nodes",
		Help: "Number of nodes of the last diagram built, labelled by diagram.",
	}, []string{"diagram"})

	Reliability = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reliability_probability",
		Help: "Last computed reliability, labelled by kind (edge or vertex).",
	}, []string{"kind"})

	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reliability_phase_duration_seconds",
		Help:    "Duration of each phase of a computation.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
	}, []string{"phase"})

	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reliability_verifications_total",
		Help: "Number of verifications of the edge-vertex diagram, labelled by result.",
	}, []string{"result"})

	Runs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reliability_runs_total",
		Help: "Number of completed computations.",
	})
)

// Observe records the figures of res. The gauges of the phases that did not
// run are removed, so that they do not report an older computation.
func Observe(res *reliability.Result) {
	Runs.Inc()
	DiagramNodes.WithLabelValues("edge").Set(float64(res.EdgeNodes))
	Reliability.WithLabelValues("edge").Set(res.EdgeReliability)
	if res.EdgeVertex.BDD != nil {
		DiagramNodes.WithLabelValues("edge_vertex").Set(float64(res.VertexNodes))
		Reliability.WithLabelValues("vertex").Set(res.VertexReliability)
	} else {
		DiagramNodes.DeleteLabelValues("edge_vertex")
		Reliability.DeleteLabelValues("vertex")
	}
	if !res.Verified {
		DiagramNodes.DeleteLabelValues("alg_k")
	} else {
		DiagramNodes.WithLabelValues("alg_k").Set(float64(res.AlgKNodes))
		result := "match"
		if !res.Match || !res.Restriction {
			result = "mismatch"
		}
		Verifications.WithLabelValues(result).Inc()
	}
	for _, p := range res.Phases {
		PhaseDuration.WithLabelValues(p.Name).Observe(p.Duration.Seconds())
	}
}

// WriteTextfile writes the collectors of the default registry to path, in the
// format of the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
