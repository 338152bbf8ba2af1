// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"fmt"
	"io"
	"os"

	"github.com/junkawahara/reliability-tdzdd/graph"
)

// Network is a graph together with the probability that each edge and each
// vertex works. Probabilities are indexed by edge position and vertex id.
type Network struct {
	Graph      *graph.Graph
	EdgeProb   []float64
	VertexProb []float64
}

// NewNetwork checks the probability tables of g. A nil table means that every
// component works with probability graph.DefaultProbability.
func NewNetwork(g *graph.Graph, edgeProb, vertexProb []float64) (*Network, error) {
	if edgeProb == nil {
		edgeProb = graph.Uniform(g.EdgeCount(), graph.DefaultProbability)
	}
	if vertexProb == nil {
		vertexProb = graph.Uniform(g.VertexCount(), graph.DefaultProbability)
	}
	if len(edgeProb) != g.EdgeCount() {
		return nil, &InputError{Err: fmt.Errorf("%w: %d probabilities for %d edges", graph.ErrMissingProbabilities, len(edgeProb), g.EdgeCount())}
	}
	if len(vertexProb) != g.VertexCount() {
		return nil, &InputError{Err: fmt.Errorf("%w: %d probabilities for %d vertices", graph.ErrMissingProbabilities, len(vertexProb), g.VertexCount())}
	}
	for _, tab := range [2][]float64{edgeProb, vertexProb} {
		for _, p := range tab {
			if p < 0 || p > 1 {
				return nil, &InputError{Err: fmt.Errorf("%w: %v", graph.ErrProbability, p)}
			}
		}
	}
	return &Network{Graph: g, EdgeProb: edgeProb, VertexProb: vertexProb}, nil
}

// Input lists the files describing a network. GraphFile "-" stands for Stdin.
// Terminals are ignored when AllTerminals is set; without terminal file and
// without AllTerminals the graph has no group.
type Input struct {
	GraphFile      string
	Adjacency      bool
	TerminalFile   string
	EdgeProbFile   string
	VertexProbFile string
	AllTerminals   bool
	Stdin          io.Reader
}

// Files returns the input files, for instance to watch them.
func (in Input) Files() []string {
	var res []string
	for _, f := range []string{in.GraphFile, in.TerminalFile, in.EdgeProbFile, in.VertexProbFile} {
		if f != "" && f != "-" {
			res = append(res, f)
		}
	}
	return res
}

// Load reads the network described by in. Errors are returned as an
// *InputError.
func Load(in Input) (*Network, error) {
	var g *graph.Graph
	var edgeProb []float64
	err := readFile(in.GraphFile, in.Stdin, func(r io.Reader) error {
		var err error
		if in.Adjacency {
			g, err = graph.ReadAdjacencyList(r)
		} else {
			g, edgeProb, err = graph.ReadEdgeList(r)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	switch {
	case in.AllTerminals:
		g.AllTerminals()
	case in.TerminalFile != "":
		if err := readFile(in.TerminalFile, nil, g.ReadVertexGroups); err != nil {
			return nil, err
		}
	}
	if in.EdgeProbFile != "" {
		err := readFile(in.EdgeProbFile, nil, func(r io.Reader) error {
			var err error
			edgeProb, err = graph.ReadEdgeProbabilities(r, g.EdgeCount())
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	var vertexProb []float64
	if in.VertexProbFile != "" {
		err := readFile(in.VertexProbFile, nil, func(r io.Reader) error {
			var err error
			vertexProb, err = g.ReadVertexProbabilities(r)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return NewNetwork(g, edgeProb, vertexProb)
}

func readFile(path string, stdin io.Reader, f func(io.Reader) error) error {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		if err := f(stdin); err != nil {
			return &InputError{Path: "<stdin>", Err: err}
		}
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		return &InputError{Path: path, Err: err}
	}
	defer file.Close()
	if err := f(file); err != nil {
		return &InputError{Path: path, Err: err}
	}
	return nil
}
