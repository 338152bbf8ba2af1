// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package graph defines the undirected (multi)graphs used as input for network
// reliability computations, together with the parsers for the graph, terminal
// and probability files.
//
// Vertices are identified by their name in the input files and by an integer
// id, in order of first appearance. Edges are kept in input order; the
// position of an edge in this order decides its level in the decision
// diagrams. Terminals are given as vertex groups (colors): a subset of edges
// is a solution when the vertices of each group are connected, and vertices
// of distinct groups are disconnected.
package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for lines that cannot be parsed.
	ErrMalformed = errors.New("malformed input")
	// ErrProbability is returned for probabilities outside [0, 1].
	ErrProbability = errors.New("probability out of range")
	// ErrUnknownVertex is returned when a terminal or probability file names a
	// vertex that is not in the graph.
	ErrUnknownVertex = errors.New("unknown vertex")
	// ErrMissingProbabilities is returned when some edges or vertices have no
	// probability.
	ErrMissingProbabilities = errors.New("missing probabilities")
)

// DefaultProbability is the probability that a component works when no
// probability is given.
const DefaultProbability = 0.5

// Edge is an undirected edge between the vertices with ids V1 and V2.
type Edge struct {
	V1, V2 int
}

// Graph is an undirected graph with named vertices, ordered edges and vertex
// groups. Parallel edges are allowed, self-loops are not.
type Graph struct {
	names  []string
	ids    map[string]int
	edges  []Edge
	color  []int // group of each vertex, starting at 1; 0 for non terminals
	ncolor int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{ids: make(map[string]int)}
}

// AddVertex returns the id of the vertex with the given name, adding it to the
// graph if needed.
func (g *Graph) AddVertex(name string) int {
	if id, ok := g.ids[name]; ok {
		return id
	}
	id := len(g.names)
	g.names = append(g.names, name)
	g.color = append(g.color, 0)
	g.ids[name] = id
	return id
}

// AddEdge adds an edge between the vertices u and v, creating them if needed,
// and returns its position.
func (g *Graph) AddEdge(u, v string) (int, error) {
	if u == v {
		return -1, fmt.Errorf("%w: self-loop on vertex %s", ErrMalformed, u)
	}
	g.edges = append(g.edges, Edge{V1: g.AddVertex(u), V2: g.AddVertex(v)})
	return len(g.edges) - 1, nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.names) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edge returns the i-th edge.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// VertexName returns the name of vertex v.
func (g *Graph) VertexName(v int) string { return g.names[v] }

// VertexID returns the id of the vertex with the given name.
func (g *Graph) VertexID(name string) (int, bool) {
	id, ok := g.ids[name]
	return id, ok
}

// Color returns the group of vertex v, or 0 if v is not a terminal.
func (g *Graph) Color(v int) int { return g.color[v] }

// NumColor returns the number of vertex groups.
func (g *Graph) NumColor() int { return g.ncolor }

// SetGroups replaces the vertex groups. Empty groups are skipped; a vertex
// cannot belong to two groups.
func (g *Graph) SetGroups(groups [][]string) error {
	color := make([]int, len(g.names))
	ncolor := 0
	for _, grp := range groups {
		if len(grp) == 0 {
			continue
		}
		ncolor++
		for _, name := range grp {
			v, ok := g.ids[name]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownVertex, name)
			}
			if color[v] != 0 && color[v] != ncolor {
				return fmt.Errorf("%w: vertex %s in two groups", ErrMalformed, name)
			}
			color[v] = ncolor
		}
	}
	g.color, g.ncolor = color, ncolor
	return nil
}

// AllTerminals puts every vertex in a single group, for all-terminal
// reliability.
func (g *Graph) AllTerminals() {
	for v := range g.color {
		g.color[v] = 1
	}
	g.ncolor = 0
	if len(g.color) > 0 {
		g.ncolor = 1
	}
}

// Groups returns the ids of the vertices of each group; group c is at index
// c-1.
func (g *Graph) Groups() [][]int {
	res := make([][]int, g.ncolor)
	for v, c := range g.color {
		if c > 0 {
			res[c-1] = append(res[c-1], v)
		}
	}
	return res
}

// Degree returns the number of edges incident to each vertex.
func (g *Graph) Degree() []int {
	deg := make([]int, len(g.names))
	for _, e := range g.edges {
		deg[e.V1]++
		deg[e.V2]++
	}
	return deg
}
