// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"fmt"
)

// MaxBruteForce is the largest number of components enumerated by BruteForce.
const MaxBruteForce = 20

// BruteForce computes the reliability of net by enumerating every state of its
// components, checking each one with graph.Satisfies. With vertices set, a
// vertex that fails removes all its incident edges; isolated vertices play no
// role. It is only usable on small networks and serves as a reference.
func BruteForce(net *Network, vertices bool) (float64, error) {
	g := net.Graph
	m := g.EdgeCount()
	var vs []int
	if vertices {
		for v, d := range g.Degree() {
			if d > 0 {
				vs = append(vs, v)
			}
		}
	}
	k := m + len(vs)
	if k > MaxBruteForce {
		return 0, &ConfigurationError{Op: "brute force", Err: fmt.Errorf("%w: %d components", ErrTooLarge, k)}
	}
	up := make([]bool, g.VertexCount())
	present := make([]bool, m)
	var total float64
	for a := 0; a < 1<<k; a++ {
		w := 1.0
		for i := range up {
			up[i] = true
		}
		for j, v := range vs {
			up[v] = a>>(m+j)&1 == 1
			w *= weight(net.VertexProb[v], up[v])
		}
		for i := 0; i < m; i++ {
			ok := a>>i&1 == 1
			w *= weight(net.EdgeProb[i], ok)
			e := g.Edge(i)
			present[i] = ok && up[e.V1] && up[e.V2]
		}
		if w == 0 {
			continue
		}
		sat, err := g.Satisfies(present)
		if err != nil {
			return 0, err
		}
		if sat {
			total += w
		}
	}
	return total, nil
}

func weight(p float64, ok bool) float64 {
	if ok {
		return p
	}
	return 1 - p
}
