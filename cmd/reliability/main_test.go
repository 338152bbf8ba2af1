// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junkawahara/reliability-tdzdd/internal/config"
	"github.com/junkawahara/reliability-tdzdd/internal/metrics"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Graph:               writeFile(t, dir, "graph.txt", "A B\nB C\nA C\n"),
		Terminals:           writeFile(t, dir, "terminals.txt", "A C\n"),
		VertexProbabilities: writeFile(t, dir, "vertices.txt", "A,1\nB,1\nC,1\n"),
		Vertex:              true,
		Verify:              true,
		Count:               true,
		Solutions:           2,
		MetricsFile:         filepath.Join(dir, "metrics.prom"),
	}
	var out bytes.Buffer
	require.NoError(t, report(cfg, nil, &out, discard()))
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "#vertex = 3, #edge = 3, #color = 1\n"))
	assert.Contains(t, s, "#solution = 5, prob = 0.625\n")
	assert.Contains(t, s, "\n#solution = 5\n")
	assert.Contains(t, s, ", prob = 0.625\n#node")
	assert.Contains(t, s, "alg_k result matches vertex reliability BDD.")
	assert.Equal(t, 2, strings.Count(s, "graph {"))
	_, err := os.Stat(cfg.MetricsFile)
	assert.NoError(t, err)
}

func TestReportQuiet(t *testing.T) {
	cfg := &config.Config{Graph: "-", AllRel: false, Vertex: true, Verify: true, Quiet: true}
	var out bytes.Buffer
	require.NoError(t, report(cfg, strings.NewReader("1 2 0.5\n2 3 0.5\n"), &out, discard()))
	assert.Equal(t, "OK\n", out.String())
}

func TestReportDot(t *testing.T) {
	cfg := &config.Config{Graph: "-", AllRel: true, Dot: true}
	var out bytes.Buffer
	require.NoError(t, report(cfg, strings.NewReader("a b\nb c\n"), &out, discard()))
	s := out.String()
	assert.Contains(t, s, "digraph G {")
	assert.Contains(t, s, "#solution = 1, prob = 0.25\n")
}

func TestReportDumpGraphOnly(t *testing.T) {
	runs := testutil.ToFloat64(metrics.Runs)
	cfg := &config.Config{Graph: "-", AllRel: true, Dot: true, DumpGraph: true}
	var out bytes.Buffer
	require.NoError(t, report(cfg, strings.NewReader("a b\nb c\n"), &out, discard()))
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "#vertex = 3, #edge = 2, #color = 1\ngraph {\n"))
	assert.True(t, strings.HasSuffix(s, "}\n"))
	assert.NotContains(t, s, "#node")
	assert.NotContains(t, s, "digraph")
	assert.Equal(t, runs, testutil.ToFloat64(metrics.Runs))
}

func TestReportErrors(t *testing.T) {
	cfg := &config.Config{Graph: filepath.Join(t.TempDir(), "missing.txt")}
	assert.Error(t, report(cfg, nil, io.Discard, discard()))

	cfg = &config.Config{Graph: "-"}
	assert.Error(t, report(cfg, strings.NewReader("a\n"), io.Discard, discard()))
}

func TestStdinIsPipe(t *testing.T) {
	assert.True(t, stdinIsPipe(strings.NewReader("")))
	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, stdinIsPipe(f))
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", Quiet: true}
	logger := newLogger(cfg, io.Discard)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
	cfg.Quiet = false
	assert.True(t, newLogger(cfg, io.Discard).Enabled(context.Background(), slog.LevelDebug))
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	graph := writeFile(t, dir, "graph.txt", "A B\n")
	l, err := config.NewLoader("", config.WithOverrides(func(cfg *config.Config) {
		cfg.Graph = graph
		cfg.AllRel = true
		cfg.LogLevel = "error"
	}))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watch(ctx, l, &out, io.Discard) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "#edge = 1,")
	}, 5*time.Second, 10*time.Millisecond)
	writeFile(t, dir, "graph.txt", "A B\nB C\n")
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "#edge = 2,")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestNotifyLatestConfig(t *testing.T) {
	graph := "first.txt"
	l, err := config.NewLoader("", config.WithOverrides(func(cfg *config.Config) { cfg.Graph = graph }))
	require.NoError(t, err)
	changes := notify(l)

	// two reloads before the loop wakes up
	graph = "second.txt"
	_, err = l.Reload()
	require.NoError(t, err)
	graph = "third.txt"
	_, err = l.Reload()
	require.NoError(t, err)

	select {
	case <-changes:
	default:
		t.Fatal("no notification after a reload")
	}
	assert.Equal(t, "third.txt", l.Config().Graph)
	select {
	case <-changes:
		t.Fatal("reloads should be merged into one notification")
	default:
	}
}

func TestWatchRecomputesLatest(t *testing.T) {
	dir := t.TempDir()
	small := writeFile(t, dir, "small.txt", "A B\n")
	large := writeFile(t, dir, "large.txt", "A B\nB C\nC D\n")
	graph := small
	l, err := config.NewLoader("", config.WithOverrides(func(cfg *config.Config) {
		cfg.Graph = graph
		cfg.AllRel = true
		cfg.LogLevel = "error"
	}))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watch(ctx, l, &out, io.Discard) }()
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "#edge = 1,")
	}, 5*time.Second, 10*time.Millisecond)

	graph = writeFile(t, dir, "medium.txt", "A B\nB C\n")
	_, err = l.Reload()
	require.NoError(t, err)
	graph = large
	_, err = l.Reload()
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "#edge = 3,")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestWatchStdin(t *testing.T) {
	l, err := config.NewLoader("", config.WithOverrides(func(cfg *config.Config) { cfg.Graph = "-" }))
	require.NoError(t, err)
	assert.ErrorIs(t, watch(context.Background(), l, io.Discard, io.Discard), errStdinWatch)
}
