// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command reliability computes the reliability of a network with imperfect
// edges and, optionally, imperfect vertices.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/junkawahara/reliability-tdzdd/internal/config"
)

var (
	configPath  string
	adjacency   bool
	allRel      bool
	count       bool
	dumpGraph   bool
	solutions   int
	dot         bool
	vertex      bool
	algK        bool
	quiet       bool
	vertexFile  string
	metricsFile string
	logLevel    string
	nodesize    int
	cachesize   int

	rootCmd = &cobra.Command{
		Use:   "reliability [flags] [<graph_file> [<vertex_group_file> [<prob_file>]]]",
		Short: "Compute the reliability of a network with imperfect edges and vertices",
		Long: `Builds the BDD of the edge subsets that connect each group of terminals,
computes the reliability of the network from the edge probabilities and,
with --vertex, adds the vertices to the diagram to account for their failures.
The graph is read from stdin when no file is given and stdin is a pipe.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReliability,
	}

	watchCmd = &cobra.Command{
		Use:   "watch [flags] [<graph_file> [<vertex_group_file> [<prob_file>]]]",
		Short: "Recompute the reliability each time the configuration or an input file changes",
		Args:  cobra.MaximumNArgs(3),
		RunE:  runWatch,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	pf.BoolVarP(&adjacency, "adjacency", "a", false, "read <graph_file> as an adjacency list")
	pf.BoolVar(&allRel, "allrel", false, "compute all terminal reliability (ignoring <vertex_group_file>)")
	pf.BoolVar(&count, "count", false, "report the number of solutions")
	pf.BoolVar(&dumpGraph, "graph", false, "dump input graph to stdout in DOT format")
	pf.IntVar(&solutions, "solutions", 0, "dump at most `n` solutions to stdout in DOT format")
	pf.BoolVar(&dot, "dot", false, "dump the edge BDD to stdout in DOT format")
	pf.BoolVar(&vertex, "vertex", false, "compute the reliability with imperfect vertices")
	pf.BoolVar(&algK, "alg-k", false, "check the edge-vertex BDD by substitution")
	pf.BoolVar(&quiet, "quiet", false, "suppress output and only show OK/NG for the alg-k check")
	pf.StringVar(&vertexFile, "vertexfile", "", "vertex probability file (lines name,prob)")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.IntVar(&nodesize, "nodesize", 0, "initial size of the node tables")
	pf.IntVar(&cachesize, "cachesize", 0, "initial size of the operation caches")

	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLoader reads the configuration file, if any, and applies the flags set on
// the command line and the positional arguments on top of it.
func newLoader(cmd *cobra.Command, args []string) (*config.Loader, error) {
	stdin := cmd.InOrStdin()
	overrides := func(cfg *config.Config) {
		flags := cmd.Flags()
		set := func(name string, f func()) {
			if flags.Changed(name) {
				f()
			}
		}
		set("adjacency", func() { cfg.Adjacency = adjacency })
		set("allrel", func() { cfg.AllRel = allRel })
		set("count", func() { cfg.Count = count })
		set("graph", func() { cfg.DumpGraph = dumpGraph })
		set("solutions", func() { cfg.Solutions = solutions })
		set("dot", func() { cfg.Dot = dot })
		set("vertex", func() { cfg.Vertex = vertex })
		set("alg-k", func() { cfg.Verify = algK })
		set("quiet", func() { cfg.Quiet = quiet })
		set("vertexfile", func() { cfg.VertexProbabilities = vertexFile })
		set("metrics-file", func() { cfg.MetricsFile = metricsFile })
		set("log-level", func() { cfg.LogLevel = logLevel })
		set("nodesize", func() { cfg.Nodesize = nodesize })
		set("cachesize", func() { cfg.Cachesize = cachesize })
		for i, p := range []*string{&cfg.Graph, &cfg.Terminals, &cfg.EdgeProbabilities} {
			if i < len(args) {
				*p = args[i]
			}
		}
		if cfg.Graph == "" && stdinIsPipe(stdin) {
			cfg.Graph = "-"
		}
	}
	return config.NewLoader(configPath, config.WithOverrides(overrides), config.WithLogger(slog.Default()))
}

// stdinIsPipe reports whether r is a standard input that is not a terminal.
// Readers other than os.Stdin, as used in tests, count as pipes.
func stdinIsPipe(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	if f != os.Stdin {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.Level()
	if cfg.Quiet && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runReliability(cmd *cobra.Command, args []string) error {
	l, err := newLoader(cmd, args)
	if err != nil {
		return err
	}
	cfg := l.Config()
	logger := newLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return report(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
}
