// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package frontier builds the BDD of the edge subsets of a graph that satisfy
// its terminal constraint, using a frontier-based search.
//
// Edges are processed in input order and edge i is the variable at level m-i,
// so the first edge is at the top of the diagram. The search state records,
// for the vertices of the frontier (the vertices already seen that still have
// edges to process), a component label and, for each component, the group of
// the terminals it contains. States are normalized so that equivalent
// configurations are shared.
package frontier

import (
	"strconv"
	"strings"

	"github.com/junkawahara/reliability-tdzdd/bdd"
	"github.com/junkawahara/reliability-tdzdd/graph"
)

// Build returns the node of b for the constraint of g: the vertices of each
// group are connected and vertices of distinct groups are disconnected. The
// number of variables of b is increased to the number of edges if needed.
func Build(g *graph.Graph, b *bdd.BDD) (bdd.Node, error) {
	m := g.EdgeCount()
	if b.Varnum() < m {
		if err := b.SetVarnum(m); err != nil {
			return b.False(), err
		}
	}
	s := newSearch(g, b)
	if !s.feasible() {
		return b.False(), nil
	}
	res := s.build(0, state{comp: s.empty()})
	if b.Errored() {
		return res, b.Err()
	}
	return res, nil
}

type search struct {
	g        *graph.Graph
	b        *bdd.BDD
	m        int
	first    []int   // first edge of each vertex, -1 if isolated
	last     []int   // last edge of each vertex
	maxfirst []int   // latest first edge among the members of each group
	entering [][]int // vertices entering the frontier with edge i
	leaving  [][]int // vertices leaving the frontier after edge i
	active   [][]int // vertices of the frontier while processing edge i
	memo     []map[string]bdd.Node
}

func newSearch(g *graph.Graph, b *bdd.BDD) *search {
	n, m := g.VertexCount(), g.EdgeCount()
	s := &search{
		g:        g,
		b:        b,
		m:        m,
		first:    make([]int, n),
		last:     make([]int, n),
		maxfirst: make([]int, g.NumColor()+1),
		entering: make([][]int, m),
		leaving:  make([][]int, m),
		active:   make([][]int, m),
		memo:     make([]map[string]bdd.Node, m),
	}
	for v := range s.first {
		s.first[v], s.last[v] = -1, -1
	}
	for i := 0; i < m; i++ {
		e := g.Edge(i)
		for _, v := range [2]int{e.V1, e.V2} {
			if s.first[v] < 0 {
				s.first[v] = i
				s.entering[i] = append(s.entering[i], v)
			}
			s.last[v] = i
		}
		s.memo[i] = make(map[string]bdd.Node)
	}
	for v := 0; v < n; v++ {
		if s.first[v] < 0 {
			continue
		}
		s.leaving[s.last[v]] = append(s.leaving[s.last[v]], v)
		for i := s.first[v]; i <= s.last[v]; i++ {
			s.active[i] = append(s.active[i], v)
		}
		if c := g.Color(v); s.first[v] > s.maxfirst[c] {
			s.maxfirst[c] = s.first[v]
		}
	}
	return s
}

// feasible returns false when a group with several vertices has an isolated
// member, which can never be connected.
func (s *search) feasible() bool {
	for _, members := range s.g.Groups() {
		if len(members) < 2 {
			continue
		}
		for _, v := range members {
			if s.first[v] < 0 {
				return false
			}
		}
	}
	return true
}

func (s *search) empty() []int {
	comp := make([]int, s.g.VertexCount())
	for v := range comp {
		comp[v] = -1
	}
	return comp
}

// build returns the node for the edges i..m-1 from the (normalized) state st.
func (s *search) build(i int, st state) bdd.Node {
	if i == s.m {
		return bdd.True
	}
	var key string
	if i > 0 {
		key = st.key(s.active[i-1])
	}
	if res, ok := s.memo[i][key]; ok {
		return res
	}
	low := s.step(i, st, false)
	high := s.step(i, st, true)
	res := s.b.Ite(s.b.Ithvar(s.m-i), high, low)
	s.memo[i][key] = res
	return res
}

// step processes edge i, taken or not, and continues with the next edge.
func (s *search) step(i int, st state, take bool) bdd.Node {
	t := st.clone()
	for _, v := range s.entering[i] {
		t.comp[v] = len(t.color)
		t.color = append(t.color, s.g.Color(v))
	}
	if take {
		e := s.g.Edge(i)
		if !t.merge(e.V1, e.V2) {
			return bdd.False
		}
	}
	for _, v := range s.leaving[i] {
		c := t.comp[v]
		t.comp[v] = -1
		if !s.closes(i, t, c) {
			continue
		}
		col := t.color[c]
		if col == 0 {
			continue
		}
		// the whole group must be in the component that leaves
		if s.maxfirst[col] > i {
			return bdd.False
		}
		for _, w := range s.active[i] {
			if t.comp[w] >= 0 && t.color[t.comp[w]] == col {
				return bdd.False
			}
		}
	}
	t.normalize(s.active[i])
	return s.build(i+1, t)
}

// closes reports whether no vertex of the frontier is in component c anymore.
func (s *search) closes(i int, t state, c int) bool {
	for _, w := range s.active[i] {
		if t.comp[w] == c {
			return false
		}
	}
	return true
}

// state is a configuration of the frontier: the component of each vertex
// (-1 outside of the frontier) and the group carried by each component.
type state struct {
	comp  []int
	color []int
}

func (st state) clone() state {
	return state{
		comp:  append([]int(nil), st.comp...),
		color: append([]int(nil), st.color...),
	}
}

// merge joins the components of u and v. It returns false if they carry
// distinct groups.
func (st *state) merge(u, v int) bool {
	cu, cv := st.comp[u], st.comp[v]
	if cu == cv {
		return true
	}
	a, b := st.color[cu], st.color[cv]
	if a != 0 && b != 0 && a != b {
		return false
	}
	if a == 0 {
		st.color[cu] = b
	}
	for w, c := range st.comp {
		if c == cv {
			st.comp[w] = cu
		}
	}
	return true
}

// normalize renumbers the components in order of first occurrence among the
// vertices of front and drops the components that are not used anymore.
func (st *state) normalize(front []int) {
	relabel := make([]int, len(st.color))
	for k := range relabel {
		relabel[k] = -1
	}
	color := make([]int, 0, len(front))
	for _, v := range front {
		c := st.comp[v]
		if c < 0 {
			continue
		}
		if relabel[c] < 0 {
			relabel[c] = len(color)
			color = append(color, st.color[c])
		}
		st.comp[v] = relabel[c]
	}
	st.color = color
}

// key encodes the state restricted to the vertices of front.
func (st state) key(front []int) string {
	var sb strings.Builder
	for _, v := range front {
		c := st.comp[v]
		sb.WriteString(strconv.Itoa(c))
		if c >= 0 {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(st.color[c]))
		}
		sb.WriteByte(',')
	}
	return sb.String()
}
