// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/junkawahara/reliability-tdzdd/internal/config"
	"github.com/junkawahara/reliability-tdzdd/internal/metrics"
	"github.com/junkawahara/reliability-tdzdd/reliability"
)

// report loads the network of cfg, computes its reliability and prints the
// results on out.
func report(cfg *config.Config, stdin io.Reader, out io.Writer, logger *slog.Logger) error {
	in := cfg.Input()
	in.Stdin = stdin
	net, err := reliability.Load(in)
	if err != nil {
		return err
	}
	g := net.Graph
	if !cfg.Quiet {
		fmt.Fprintf(out, "#vertex = %d, #edge = %d, #color = %d\n", g.VertexCount(), g.EdgeCount(), g.NumColor())
	}
	// --graph only dumps the input
	if cfg.DumpGraph {
		return g.WriteDot(out, nil)
	}
	res, err := reliability.Compute(net, cfg.Options(logger)...)
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "#node = %d, #solution = %s, prob = %.10g\n", res.EdgeNodes, res.Solutions, res.EdgeReliability)
		if cfg.Count {
			fmt.Fprintf(out, "#solution = %s\n", res.Solutions)
		}
		if res.EdgeVertex.BDD != nil {
			fmt.Fprintf(out, "#node = %d, prob = %.10g\n", res.VertexNodes, res.VertexReliability)
		}
	}
	if res.Verified {
		ok := res.Match && res.Restriction
		switch {
		case cfg.Quiet && ok:
			fmt.Fprintln(out, "OK")
		case cfg.Quiet:
			fmt.Fprintln(out, "NG")
		case ok:
			fmt.Fprintf(out, "#node = %d, alg_k result matches vertex reliability BDD.\n", res.AlgKNodes)
		default:
			fmt.Fprintf(out, "#node = %d, alg_k result does not match vertex reliability BDD (match %t, restriction %t).\n",
				res.AlgKNodes, res.Match, res.Restriction)
		}
	}
	if cfg.Dot {
		if err := res.Edge.BDD.WriteDot(out, res.Edge.Root); err != nil {
			return err
		}
	}
	if cfg.Solutions > 0 {
		err := reliability.Solutions(res.Edge, g.EdgeCount(), cfg.Solutions, func(present []bool) error {
			return g.WriteDot(out, present)
		})
		if err != nil {
			return err
		}
	}
	metrics.Observe(res)
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
