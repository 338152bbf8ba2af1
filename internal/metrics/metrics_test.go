// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package metrics

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junkawahara/reliability-tdzdd/graph"
	"github.com/junkawahara/reliability-tdzdd/reliability"
)

func compute(t *testing.T, opts ...reliability.Option) *reliability.Result {
	t.Helper()
	g, prob, err := graph.ReadEdgeList(strings.NewReader("A B 0.3\n"))
	require.NoError(t, err)
	g.AllTerminals()
	net, err := reliability.NewNetwork(g, prob, []float64{0.9, 0.8})
	require.NoError(t, err)
	opts = append(opts, reliability.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	res, err := reliability.Compute(net, opts...)
	require.NoError(t, err)
	return res
}

func TestObserve(t *testing.T) {
	before := testutil.ToFloat64(Verifications.WithLabelValues("match"))
	runs := testutil.ToFloat64(Runs)
	Observe(compute(t, reliability.WithVerify()))
	assert.Equal(t, runs+1, testutil.ToFloat64(Runs))
	assert.Equal(t, before+1, testutil.ToFloat64(Verifications.WithLabelValues("match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(DiagramNodes.WithLabelValues("edge")))
	assert.Equal(t, 3.0, testutil.ToFloat64(DiagramNodes.WithLabelValues("edge_vertex")))
	assert.InDelta(t, 0.3, testutil.ToFloat64(Reliability.WithLabelValues("edge")), 1e-12)
	assert.InDelta(t, 0.216, testutil.ToFloat64(Reliability.WithLabelValues("vertex")), 1e-12)
	assert.Equal(t, 5, testutil.CollectAndCount(PhaseDuration))
}

func TestObserveEdgeOnly(t *testing.T) {
	Observe(compute(t, reliability.WithVerify()))
	before := testutil.ToFloat64(Verifications.WithLabelValues("match"))
	Observe(compute(t, reliability.WithEdgeOnly()))
	assert.Equal(t, before, testutil.ToFloat64(Verifications.WithLabelValues("match")))
	// only the edge series are left from the last computation
	assert.Equal(t, 1, testutil.CollectAndCount(DiagramNodes))
	assert.Equal(t, 1, testutil.CollectAndCount(Reliability))
}

func TestObserveWithoutVerification(t *testing.T) {
	Observe(compute(t, reliability.WithVerify()))
	assert.Equal(t, 3, testutil.CollectAndCount(DiagramNodes))
	Observe(compute(t))
	assert.Equal(t, 2, testutil.CollectAndCount(DiagramNodes))
	assert.Equal(t, 2, testutil.CollectAndCount(Reliability))
	assert.Equal(t, 3.0, testutil.ToFloat64(DiagramNodes.WithLabelValues("edge_vertex")))
}

func TestWriteTextfile(t *testing.T) {
	Observe(compute(t))
	path := filepath.Join(t.TempDir(), "reliability.prom")
	require.NoError(t, WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reliability_runs_total")
	assert.Contains(t, string(data), `reliability_probability{kind="edge"}`)
}
