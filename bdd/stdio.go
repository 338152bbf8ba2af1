// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
)

// Stats returns information about the BDD: size of the node table, number of
// garbage collections and, with the debug build tag, cache statistics.
func (b *BDD) Stats() string {
	return b.stats()
}

// PrintStats outputs a textual representation of the BDD statistics.
func (b *BDD) PrintStats() {
	fmt.Println("==============")
	fmt.Println(b.stats())
	if _DEBUG {
		b.logTable()
	}
	fmt.Println("==============")
}

// ******************************************************************************************************

// Print returns a one-line description of node n.
func (b *BDD) Print(n Node) string {
	if b.error != nil {
		return fmt.Sprintf("node %d: error %s", n, b.error)
	}
	switch {
	case n == False:
		return "False"
	case n == True:
		return "True"
	case n < 0:
		return "Error"
	case n.index() >= len(b.nodes):
		return fmt.Sprintf("Error (%d not a valid index)", n)
	case b.nodes[n.index()].low == bddnil:
		return fmt.Sprintf("Error (node %d undefined)", n)
	}
	nd := b.nodes[n.index()]
	sign := ""
	if n.IsComplement() {
		sign = "!"
	}
	return fmt.Sprintf("%s(%d[%d] ? %d : %d)", sign, n.index(), nd.level, nd.low, nd.high)
}

// PrintSet outputs a textual representation of the BDD with root n.
func (b *BDD) PrintSet(n Node) {
	b.print(os.Stdout, n)
}

// PrintAll prints the totally of the BDD table on the standard output
func (b *BDD) PrintAll() {
	b.printAll(os.Stdout)
}

func (b *BDD) print(w io.Writer, n Node) error {
	if b.error != nil {
		fmt.Fprintf(w, "ERROR: %s\n", b.error)
		return b.error
	}
	if err := b.checkptr(n); err != nil {
		return err
	}
	if n.IsConst() {
		fmt.Fprintln(w, b.Print(n))
		return nil
	}
	// We collect the list of vertices reachable from n.
	cnodes := b.markcount(n.index())
	nodes := make([]int, 0, cnodes)
	for i := 1; i < len(b.nodes); i++ {
		if b.ismarked(i) {
			b.unmarknode(i)
			nodes = append(nodes, i)
		}
	}
	fmt.Fprintf(w, "node: %s\n", b.Print(n))
	b.print_string(w, nodes)
	return nil
}

func (b *BDD) printAll(w io.Writer) error {
	nodes := []int{}
	for i := 1; i < len(b.nodes); i++ {
		if b.nodes[i].low != bddnil {
			nodes = append(nodes, i)
		}
	}
	b.print_string(w, nodes)
	return nil
}

func (b *BDD) print_string(w io.Writer, nodes []int) {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	sort.Ints(nodes)
	for _, n := range nodes {
		fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\t (%d refs)\n", n, b.nodes[n].level, b.nodes[n].low, b.nodes[n].high, b.nodes[n].refcou&^_MARK)
	}
	tw.Flush()
}

// ******************************************************************************************************

// PrintDot prints a graph-like description of the BDD with root n using the DOT
// format.
func (b *BDD) PrintDot(n Node) error {
	return b.WriteDot(os.Stdout, n)
}

// FPrintDot writes the DOT description of the BDD with root n in a file. The
// standard output is used when filename is "-".
func (b *BDD) FPrintDot(filename string, n Node) error {
	if filename == "-" {
		return b.WriteDot(os.Stdout, n)
	}
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()
	return b.WriteDot(out, n)
}

// WriteDot writes a graph-like description of the diagrams rooted at the nodes
// in n using the DOT format. Vertices are labelled with their level. Low
// branches are dotted and complemented references end with a hollow dot.
func (b *BDD) WriteDot(w io.Writer, n ...Node) error {
	bw := bufio.NewWriter(w)
	if b.error != nil {
		fmt.Fprintf(bw, "ERROR: %s\n", b.error)
		bw.Flush()
		return b.error
	}
	nodes := []int{}
	err := b.Allnodes(func(id, level int, low, high Node) error {
		if id > 0 {
			nodes = append(nodes, id)
		}
		return nil
	}, n...)
	if err != nil {
		return err
	}
	b.print_dot(bw, nodes, n)
	return bw.Flush()
}

// print_dot returns a GraphViz DOT file from a list of nodes.
func (b *BDD) print_dot(w *bufio.Writer, nodes []int, roots []Node) {
	sort.Ints(nodes)
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "0 [shape=box, label=\"0\", style=filled, height=0.3, width=0.3];")
	for k, r := range roots {
		fmt.Fprintf(w, "r%d [shape=plaintext, label=\"\"];\n", k)
		fmt.Fprintf(w, "r%d -> %d%s;\n", k, r.index(), dotarrow(r))
	}
	for _, v := range nodes {
		nd := b.nodes[v]
		fmt.Fprintf(w, "%d %s\n", v, dotlabel(v, nd.level))
		fmt.Fprintf(w, "%d -> %d [style=dotted];\n", v, nd.low.index())
		fmt.Fprintf(w, "%d -> %d%s;\n", v, nd.high.index(), dotarrow(nd.high))
	}
	fmt.Fprintln(w, "}")
}

// dotarrow returns the attributes of an edge pointing to n. The terminal is
// labelled 0, hence a complemented edge to the terminal is the constant True.
func dotarrow(n Node) string {
	if n.IsComplement() {
		return " [arrowhead=odot]"
	}
	return ""
}

func dotlabel(a int, level int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, level, a)
}
