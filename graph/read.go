// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// lines calls f on the fields of every line of r that is neither blank nor a
// comment (starting with '#'), with the line number.
func lines(r io.Reader, f func(lineno int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := f(lineno, strings.Fields(line)); err != nil {
			return err
		}
	}
	return sc.Err()
}

func parseProbability(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformed, s)
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: %v", ErrProbability, p)
	}
	return p, nil
}

// ReadEdgeList reads a graph given as a list of edges, one per line, with the
// names of the two endpoints and an optional probability. The probabilities
// are returned in edge order, or nil when no line has one. Giving a
// probability for some edges only is an error.
func ReadEdgeList(r io.Reader) (*Graph, []float64, error) {
	g := New()
	var prob []float64
	err := lines(r, func(lineno int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: %w: expected two vertices", lineno, ErrMalformed)
		}
		if _, err := g.AddEdge(fields[0], fields[1]); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		if len(fields) > 2 {
			p, err := parseProbability(fields[2])
			if err != nil {
				return fmt.Errorf("line %d: %w", lineno, err)
			}
			prob = append(prob, p)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if prob != nil && len(prob) != g.EdgeCount() {
		return nil, nil, fmt.Errorf("%w: %d probabilities for %d edges", ErrMissingProbabilities, len(prob), g.EdgeCount())
	}
	return g, prob, nil
}

// ReadAdjacencyList reads a graph where line i (starting from 1) lists the
// neighbours of the vertex named i. The edge {i, j} is added once, from the
// line of the smaller vertex. Empty lines count as vertices without
// neighbours.
func ReadAdjacencyList(r io.Reader) (*Graph, error) {
	g := New()
	sc := bufio.NewScanner(r)
	i := 0
	for sc.Scan() {
		i++
		g.AddVertex(strconv.Itoa(i))
		for _, tok := range strings.Fields(sc.Text()) {
			j, err := strconv.Atoi(tok)
			if err != nil || j < 1 {
				return nil, fmt.Errorf("line %d: %w: bad vertex %q", i, ErrMalformed, tok)
			}
			if i < j {
				if _, err := g.AddEdge(strconv.Itoa(i), strconv.Itoa(j)); err != nil {
					return nil, fmt.Errorf("line %d: %w", i, err)
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadVertexGroups reads the terminals of g: each line is a group of vertex
// names.
func (g *Graph) ReadVertexGroups(r io.Reader) error {
	var groups [][]string
	err := lines(r, func(_ int, fields []string) error {
		groups = append(groups, fields)
		return nil
	})
	if err != nil {
		return err
	}
	return g.SetGroups(groups)
}

// ReadEdgeProbabilities reads the probabilities of m edges, separated by
// blanks. Extra values are ignored.
func ReadEdgeProbabilities(r io.Reader, m int) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	prob := make([]float64, 0, m)
	for len(prob) < m && sc.Scan() {
		p, err := parseProbability(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", len(prob), err)
		}
		prob = append(prob, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(prob) < m {
		return nil, fmt.Errorf("%w: %d probabilities for %d edges", ErrMissingProbabilities, len(prob), m)
	}
	return prob, nil
}

// ReadVertexProbabilities reads lines "name,prob" or "name prob" and returns
// the probability of each vertex of g, by id. Every vertex must be listed.
func (g *Graph) ReadVertexProbabilities(r io.Reader) ([]float64, error) {
	prob := make([]float64, g.VertexCount())
	seen := make([]bool, g.VertexCount())
	err := lines(r, func(lineno int, fields []string) error {
		if len(fields) == 1 {
			fields = strings.Split(fields[0], ",")
		} else if strings.HasSuffix(fields[0], ",") {
			fields[0] = strings.TrimSuffix(fields[0], ",")
		}
		if len(fields) < 2 {
			return fmt.Errorf("line %d: %w: expected a vertex and a probability", lineno, ErrMalformed)
		}
		v, ok := g.ids[fields[0]]
		if !ok {
			return fmt.Errorf("line %d: %w: %s", lineno, ErrUnknownVertex, fields[0])
		}
		p, err := parseProbability(strings.TrimPrefix(fields[1], ","))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		prob[v], seen[v] = p, true
		return nil
	})
	if err != nil {
		return nil, err
	}
	for v, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: vertex %s", ErrMissingProbabilities, g.names[v])
		}
	}
	return prob, nil
}

// Uniform returns a table of n probabilities all equal to p.
func Uniform(n int, p float64) []float64 {
	res := make([]float64, n)
	for k := range res {
		res[k] = p
	}
	return res
}
