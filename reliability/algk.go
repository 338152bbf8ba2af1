// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"github.com/junkawahara/reliability-tdzdd/bdd"
)

// AlgK computes the edge-vertex diagram by substitution. Starting from the
// edge diagram f, already moved to the levels of lay, each edge variable e is
// replaced by e & v1 & v2, where v1 and v2 are the variables of its endpoints.
// Since diagrams are canonical, the result is the node returned by Weave.
func AlgK(b *bdd.BDD, f bdd.Node, net *Network, lay *Layout) bdd.Node {
	for i := net.Graph.EdgeCount() - 1; i >= 0; i-- {
		e := net.Graph.Edge(i)
		t := b.And(b.Ithvar(lay.Edge[i]), b.Ithvar(lay.Vertex[e.V1]), b.Ithvar(lay.Vertex[e.V2]))
		f = b.Compose(f, lay.Edge[i], t)
	}
	return f
}

// Restriction returns the cofactor of the edge-vertex diagram f where every
// vertex works. It should be the edge diagram moved to the levels of lay.
func Restriction(b *bdd.BDD, f bdd.Node, lay *Layout) bdd.Node {
	for _, l := range lay.Vertex {
		if l > 0 {
			f = b.Restrict(f, l, true)
		}
	}
	return f
}
