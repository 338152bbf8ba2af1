// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package frontier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junkawahara/reliability-tdzdd/bdd"
	"github.com/junkawahara/reliability-tdzdd/graph"
)

func readGraph(t *testing.T, edges string, groups string) *graph.Graph {
	t.Helper()
	g, _, err := graph.ReadEdgeList(strings.NewReader(edges))
	require.NoError(t, err)
	if groups == "*" {
		g.AllTerminals()
	} else {
		require.NoError(t, g.ReadVertexGroups(strings.NewReader(groups)))
	}
	return g
}

// eval returns the value of n for the subset of edges present.
func eval(b *bdd.BDD, n bdd.Node, present []bool) bool {
	m := len(present)
	for i, p := range present {
		n = b.Restrict(n, m-i, p)
	}
	return n == bdd.True
}

// checkAll compares the diagram with the connectivity predicate on every
// subset of edges and returns the number of solutions.
func checkAll(t *testing.T, g *graph.Graph) int {
	t.Helper()
	m := g.EdgeCount()
	b, err := bdd.New(m)
	require.NoError(t, err)
	root, err := Build(g, b)
	require.NoError(t, err)
	count := 0
	present := make([]bool, m)
	for a := 0; a < 1<<m; a++ {
		for i := range present {
			present[i] = a>>i&1 == 1
		}
		want, err := g.Satisfies(present)
		require.NoError(t, err)
		require.Equal(t, want, eval(b, root, present), "edges %v", present)
		if want {
			count++
		}
	}
	assert.Equal(t, int64(count), b.Satcount(root).Int64())
	assert.False(t, b.Errored())
	return count
}

func TestTriangle(t *testing.T) {
	g := readGraph(t, "A B\nB C\nA C\n", "A C\n")
	assert.Equal(t, 5, checkAll(t, g))
}

func TestAllTerminals(t *testing.T) {
	// spanning connected subgraphs of K4
	g := readGraph(t, "1 2\n1 3\n1 4\n2 3\n2 4\n3 4\n", "*")
	assert.Equal(t, 38, checkAll(t, g))
}

func TestGroups(t *testing.T) {
	var tests = []struct {
		name   string
		edges  string
		groups string
	}{
		{"cycle two groups", "a b\nb c\nc d\nd a\n", "a\nc\n"},
		{"grid", "1 2\n2 3\n1 4\n2 5\n3 6\n4 5\n5 6\n", "1 6\n3 4\n"},
		{"path", "x y\ny z\nz w\n", "x w\n"},
		{"no groups", "x y\ny z\n", ""},
		{"parallel", "u v\nu v\nv w\n", "u w\n"},
		{"late member", "a b\nc d\nb c\n", "a d\n"},
		{"three groups", "a b\nb c\nc d\nd e\ne a\na c\n", "a\nc\ne\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkAll(t, readGraph(t, tt.edges, tt.groups))
		})
	}
}

func TestIsolatedTerminal(t *testing.T) {
	g, _, err := graph.ReadEdgeList(strings.NewReader("a b\nb c\n"))
	require.NoError(t, err)
	g.AddVertex("z")
	require.NoError(t, g.SetGroups([][]string{{"a", "z"}}))
	b, _ := bdd.New(2)
	root, err := Build(g, b)
	require.NoError(t, err)
	assert.Equal(t, bdd.False, root)

	// a single isolated terminal does not constrain anything
	require.NoError(t, g.SetGroups([][]string{{"z"}}))
	root, err = Build(g, b)
	require.NoError(t, err)
	assert.Equal(t, bdd.True, root)
}

func TestVarnum(t *testing.T) {
	g := readGraph(t, "a b\nb c\nc a\n", "a b\n")
	b, _ := bdd.New(0)
	root, err := Build(g, b)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Varnum())
	assert.Equal(t, 3, b.Level(root))
}
