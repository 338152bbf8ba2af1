// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"errors"
	"sort"

	"github.com/junkawahara/reliability-tdzdd/bdd"
)

// Layout is the variable ordering of the edge-vertex diagram. Levels are
// assigned from the top: for each edge in input order, its endpoints that do
// not have a level yet, then the edge itself. Hence every vertex is above all
// its incident edges. Isolated vertices have no level.
type Layout struct {
	Levels int       // number of levels, edges and non isolated vertices
	Vertex []int     // level of each vertex, 0 if isolated
	Edge   []int     // level of each edge
	Shift  []int     // level of the variable at level l of the edge diagram, at index l-1
	Prob   []float64 // probability that the component at each level works
	Inc    *bdd.Incidence
}

// NewLayout computes the layout of net.
func NewLayout(net *Network) (*Layout, error) {
	g := net.Graph
	n, m := g.VertexCount(), g.EdgeCount()
	deg := g.Degree()
	levels := m
	for _, d := range deg {
		if d > 0 {
			levels++
		}
	}
	lay := &Layout{
		Levels: levels,
		Vertex: make([]int, n),
		Edge:   make([]int, m),
		Shift:  make([]int, m),
		Prob:   make([]float64, levels+1),
	}
	isVertex := make([]bool, levels+1)
	count := levels
	for i := 0; i < m; i++ {
		e := g.Edge(i)
		for _, v := range [2]int{e.V1, e.V2} {
			if lay.Vertex[v] == 0 {
				lay.Vertex[v] = count
				lay.Prob[count] = net.VertexProb[v]
				isVertex[count] = true
				count--
			}
		}
		lay.Edge[i] = count
		lay.Shift[m-i-1] = count
		lay.Prob[count] = net.EdgeProb[i]
		count--
	}
	lists := make([][]int, levels+1)
	for i := 0; i < m; i++ {
		e := g.Edge(i)
		lists[lay.Vertex[e.V1]] = append(lists[lay.Vertex[e.V1]], lay.Edge[i])
		lists[lay.Vertex[e.V2]] = append(lists[lay.Vertex[e.V2]], lay.Edge[i])
	}
	for _, l := range lists {
		sort.Sort(sort.Reverse(sort.IntSlice(l)))
	}
	inc, err := bdd.NewIncidence(isVertex, lists)
	if err != nil {
		return nil, err
	}
	lay.Inc = inc
	return lay, nil
}

// EdgeLevelProb returns the probability table of the edge diagram, where edge i
// is at level m-i.
func EdgeLevelProb(net *Network) []float64 {
	m := len(net.EdgeProb)
	prob := make([]float64, m+1)
	for i, p := range net.EdgeProb {
		prob[m-i] = p
	}
	return prob
}

// Remap moves the edge diagram root of src to the levels of b given by shift,
// see bdd.Remap. An invalid map is reported as a *ConfigurationError.
func Remap(b, src *bdd.BDD, root bdd.Node, shift []int) (bdd.Node, error) {
	res, err := b.Remap(src, root, shift)
	if errors.Is(err, bdd.ErrLevelMap) {
		return res, &ConfigurationError{Op: "remap", Err: err}
	}
	return res, err
}
