// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"unsafe"
)

// The unique table uses the standard runtime hashmap. We hash a triplet
// (level, low, high) to the index of the node in the nodes table. The low
// branch of a stored node is never a complemented reference, which makes the
// representation canonical.

type nodekey struct {
	level int32
	low   Node
	high  Node
}

type huddnode struct {
	level  int32 // Level of the variable, 0 for the terminal
	refcou int32 // Count the number of parents and external references
	low    Node  // Reference to the false branch, bddnil when the slot is free
	high   Node  // Reference to the true branch, or next free slot
}

func (b *BDD) ismarked(n int) bool {
	return (b.nodes[n].refcou & _MARK) != 0
}

func (b *BDD) marknode(n int) {
	b.nodes[n].refcou |= _MARK
}

func (b *BDD) unmarknode(n int) {
	b.nodes[n].refcou &^= _MARK
}

// inittable creates a node table with nodesize slots. The terminal is at
// index 0 and is never stored in the unique table. When a slot is unused in
// b.nodes, we have low set to bddnil and high set to the next free position.
// The value of b.freepos gives the index of the lowest unused slot, except
// when freenum is 0, in which case it is also 0.
func (b *BDD) inittable(nodesize int) {
	if nodesize < 2 {
		nodesize = 2
	}
	b.nodes = make([]huddnode, nodesize)
	for k := range b.nodes {
		b.nodes[k] = huddnode{
			level:  0,
			low:    bddnil,
			high:   Node(k + 1),
			refcou: 0,
		}
	}
	b.nodes[nodesize-1].high = 0
	b.nodes[0] = huddnode{
		level:  0,
		low:    False,
		high:   False,
		refcou: _MAXREFCOUNT,
	}
	b.unique = make(map[nodekey]int, nodesize)
	b.freepos = 1
	b.freenum = nodesize - 1
	b.gcstat.history = []gcpoint{}
}

func (b *BDD) nodehash(level int32, low, high Node) (int, bool) {
	hn, ok := b.unique[nodekey{level, low, high}]
	return hn, ok
}

func (b *BDD) setnode(level int32, low Node, high Node) int {
	b.freenum--
	res := b.freepos
	b.freepos = int(b.nodes[res].high)
	b.nodes[res] = huddnode{level: level, low: low, high: high}
	b.unique[nodekey{level, low, high}] = res
	return res
}

func (b *BDD) delnode(n int) {
	hn := b.nodes[n]
	delete(b.unique, nodekey{hn.level, hn.low, hn.high})
	b.nodes[n] = huddnode{
		level: 0,
		low:   bddnil,
		high:  Node(b.freepos),
	}
	b.freepos = n
	b.freenum++
}

// allnodesfrom calls f on the vertices reachable from the nodes in n. The
// terminal is always visited first.
func (b *BDD) allnodesfrom(f func(id, level int, low, high Node) error, n []Node) error {
	for _, v := range n {
		b.markrec(v.index())
	}
	if err := f(0, 0, False, False); err != nil {
		b.unmarkall()
		return err
	}
	for k := range b.nodes {
		if k > 0 && b.ismarked(k) {
			b.unmarknode(k)
			if err := f(k, int(b.nodes[k].level), b.nodes[k].low, b.nodes[k].high); err != nil {
				b.unmarkall()
				return err
			}
		}
	}
	return nil
}

func (b *BDD) allnodes(f func(id, level int, low, high Node) error) error {
	if err := f(0, 0, False, False); err != nil {
		return err
	}
	for k, v := range b.nodes {
		if k > 0 && v.low != bddnil {
			if err := f(k, int(v.level), v.low, v.high); err != nil {
				return err
			}
		}
	}
	return nil
}

// stats returns information about the implementation
func (b *BDD) stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, (100.0 - r))
	res += fmt.Sprintf("Size:       %s\n", humanSize(len(b.nodes), unsafe.Sizeof(huddnode{})))
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", len(b.gcstat.history))
	res += fmt.Sprintf("Reclaimed:  %d", b.gcstat.reclaimed)
	if _DEBUG {
		res += "\n==============\n"
		res += b.cachestat.String()
	}
	return res
}

// humanSize returns a human readable version of the size of a table of n
// elements of the given size.
func humanSize(n int, size uintptr) string {
	b := uint64(n) * uint64(size)
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for m := b / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
