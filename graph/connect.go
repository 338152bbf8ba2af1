// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package graph

import (
	"fmt"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

// Subgraph returns the spanning subgraph of g with the edges i such that
// present[i] is true.
func (g *Graph) Subgraph(present []bool) (*core.Graph, error) {
	if len(present) != len(g.edges) {
		return nil, fmt.Errorf("%w: %d values for %d edges", ErrMalformed, len(present), len(g.edges))
	}
	sub := core.NewGraph(core.WithMultiEdges())
	for _, name := range g.names {
		if err := sub.AddVertex(name); err != nil {
			return nil, err
		}
	}
	for i, e := range g.edges {
		if !present[i] {
			continue
		}
		if _, err := sub.AddEdge(g.names[e.V1], g.names[e.V2], 0); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// Satisfies reports whether the subset of edges such that present[i] is true
// is a solution: the vertices of each group are connected and no path joins
// two vertices of distinct groups. Every subset is a solution when there is no
// group.
func (g *Graph) Satisfies(present []bool) (bool, error) {
	sub, err := g.Subgraph(present)
	if err != nil {
		return false, err
	}
	for k, members := range g.Groups() {
		if len(members) == 0 {
			continue
		}
		res, err := bfs.BFS(sub, g.names[members[0]])
		if err != nil {
			return false, err
		}
		for _, v := range members[1:] {
			if _, ok := res.Depth[g.names[v]]; !ok {
				return false, nil
			}
		}
		for _, name := range res.Order {
			if c := g.color[g.ids[name]]; c != 0 && c != k+1 {
				return false, nil
			}
		}
	}
	return true, nil
}
