// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package graph

import (
	"bufio"
	"fmt"
	"io"
)

// palette is used for the vertex groups, in order.
var palette = []string{"red", "green", "blue", "orange", "purple", "cyan", "magenta", "brown"}

// WriteDot writes g in DOT format. When present is not nil, edges i with
// present[i] true are drawn in bold and the other ones are dotted and gray.
// Terminals are filled with the color of their group.
func (g *Graph) WriteDot(w io.Writer, present []bool) error {
	if present != nil && len(present) != len(g.edges) {
		return fmt.Errorf("%w: %d values for %d edges", ErrMalformed, len(present), len(g.edges))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "graph {")
	for v, name := range g.names {
		if c := g.color[v]; c > 0 {
			fmt.Fprintf(bw, "  %q [style=filled,fillcolor=%s];\n", name, palette[(c-1)%len(palette)])
		} else {
			fmt.Fprintf(bw, "  %q;\n", name)
		}
	}
	for i, e := range g.edges {
		attr := ""
		if present != nil {
			attr = " [style=dotted,color=gray]"
			if present[i] {
				attr = " [style=bold]"
			}
		}
		fmt.Fprintf(bw, "  %q -- %q%s;\n", g.names[e.V1], g.names[e.V2], attr)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
