// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `# a triangle
A B 0.5
B C 0.5

A C 0.5
`

func TestReadEdgeList(t *testing.T) {
	g, prob, err := ReadEdgeList(strings.NewReader(triangle))
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, prob)
	assert.Equal(t, Edge{V1: 0, V2: 1}, g.Edge(0))
	assert.Equal(t, Edge{V1: 0, V2: 2}, g.Edge(2))
	assert.Equal(t, "C", g.VertexName(2))

	g, prob, err = ReadEdgeList(strings.NewReader("a b\nb c\n"))
	require.NoError(t, err)
	assert.Nil(t, prob)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestReadEdgeListErrors(t *testing.T) {
	var tests = []struct {
		name  string
		input string
		err   error
	}{
		{"single token", "a b\nc\n", ErrMalformed},
		{"self-loop", "a a\n", ErrMalformed},
		{"not a number", "a b x\n", ErrMalformed},
		{"out of range", "a b 1.5\n", ErrProbability},
		{"partial", "a b 0.3\nb c\n", ErrMissingProbabilities},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadEdgeList(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReadAdjacencyList(t *testing.T) {
	g, err := ReadAdjacencyList(strings.NewReader("2 3\n1 3\n1 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	require.Equal(t, 3, g.EdgeCount())
	for i, want := range [][2]string{{"1", "2"}, {"1", "3"}, {"2", "3"}} {
		e := g.Edge(i)
		assert.Equal(t, want, [2]string{g.VertexName(e.V1), g.VertexName(e.V2)})
	}
	_, err = ReadAdjacencyList(strings.NewReader("2 x\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVertexGroups(t *testing.T) {
	g, _, err := ReadEdgeList(strings.NewReader(triangle))
	require.NoError(t, err)
	require.NoError(t, g.ReadVertexGroups(strings.NewReader("A C\n\nB\n")))
	assert.Equal(t, 2, g.NumColor())
	assert.Equal(t, [][]int{{0, 2}, {1}}, g.Groups())
	assert.Equal(t, 2, g.Color(1))

	assert.ErrorIs(t, g.ReadVertexGroups(strings.NewReader("A D\n")), ErrUnknownVertex)
	assert.ErrorIs(t, g.ReadVertexGroups(strings.NewReader("A B\nB C\n")), ErrMalformed)

	g.AllTerminals()
	assert.Equal(t, [][]int{{0, 1, 2}}, g.Groups())
}

func TestReadProbabilities(t *testing.T) {
	prob, err := ReadEdgeProbabilities(strings.NewReader("0.1 0.2\n0.3 0.4"), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, prob)

	_, err = ReadEdgeProbabilities(strings.NewReader("0.1"), 2)
	assert.ErrorIs(t, err, ErrMissingProbabilities)
	_, err = ReadEdgeProbabilities(strings.NewReader("0.1 -2"), 2)
	assert.ErrorIs(t, err, ErrProbability)

	g, _, err := ReadEdgeList(strings.NewReader(triangle))
	require.NoError(t, err)
	vprob, err := g.ReadVertexProbabilities(strings.NewReader("A,0.9\nB 0.8\nC, 0.7\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.8, 0.7}, vprob)

	_, err = g.ReadVertexProbabilities(strings.NewReader("A,0.9\nB,0.8\n"))
	assert.ErrorIs(t, err, ErrMissingProbabilities)
	_, err = g.ReadVertexProbabilities(strings.NewReader("Z,0.9\n"))
	assert.ErrorIs(t, err, ErrUnknownVertex)

	assert.Equal(t, []float64{0.5, 0.5}, Uniform(2, DefaultProbability))
}

func TestSatisfies(t *testing.T) {
	g, _, err := ReadEdgeList(strings.NewReader(triangle))
	require.NoError(t, err)
	require.NoError(t, g.SetGroups([][]string{{"A", "C"}}))

	var tests = []struct {
		present  []bool
		expected bool
	}{
		{[]bool{false, false, false}, false},
		{[]bool{false, false, true}, true},
		{[]bool{true, true, false}, true},
		{[]bool{true, false, false}, false},
		{[]bool{true, true, true}, true},
	}
	for _, tt := range tests {
		ok, err := g.Satisfies(tt.present)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, ok, "edges %v", tt.present)
	}

	// distinct groups must stay apart
	require.NoError(t, g.SetGroups([][]string{{"A"}, {"C"}}))
	ok, err := g.Satisfies([]bool{true, false, false})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = g.Satisfies([]bool{true, true, false})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.Satisfies([]bool{true})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSatisfiesParallelEdges(t *testing.T) {
	g, _, err := ReadEdgeList(strings.NewReader("a b\na b\n"))
	require.NoError(t, err)
	g.AllTerminals()
	ok, err := g.Satisfies([]bool{false, true})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteDot(t *testing.T) {
	g, _, err := ReadEdgeList(strings.NewReader(triangle))
	require.NoError(t, err)
	require.NoError(t, g.SetGroups([][]string{{"A", "C"}}))
	var buf bytes.Buffer
	require.NoError(t, g.WriteDot(&buf, []bool{true, false, true}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "graph {\n"))
	assert.Contains(t, out, `"A" [style=filled,fillcolor=red];`)
	assert.Contains(t, out, `"A" -- "B" [style=bold];`)
	assert.Contains(t, out, `"B" -- "C" [style=dotted,color=gray];`)
	assert.Contains(t, out, `"B";`)
}
