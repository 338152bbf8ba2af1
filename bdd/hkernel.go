// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"log"
	"math"
)

// makenode returns the node (level, low, high), creating it if needed. The
// result is canonical: we never build a node with equal successors and the low
// successor of a stored node is never complemented (we negate both branches
// and the result instead). A new node starts with a reference count of zero
// and increments the count of its two successors.
//
// We never collect garbage here. When there is no free slot we grow the node
// table, so node indices stay valid during a whole construction.
func (b *BDD) makenode(level int32, low Node, high Node) Node {
	if low < 0 || high < 0 {
		return bddnil
	}
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	if low&1 == 1 {
		res := b.makenode(level, low^1, high^1)
		if res < 0 {
			return res
		}
		return res ^ 1
	}
	if _DEBUG {
		b.cachestat.uniqueAccess++
		if b.level(low) >= level || b.level(high) >= level {
			log.Panicf("makenode(%d, %d, %d): successor not below level\n", level, low, high)
		}
	}
	// otherwise try to find an existing node using the unique table
	if res, ok := b.nodehash(level, low, high); ok {
		if _DEBUG {
			b.cachestat.uniqueHit++
		}
		return Node(res << 1)
	}
	if _DEBUG {
		b.cachestat.uniqueMiss++
	}
	if b.freepos == 0 {
		if err := b.noderesize(); err != nil {
			return b.seterror("cannot create node at level %d; %s", level, err)
		}
	}
	// We can now build the new node in the first available spot
	b.produced++
	res := b.setnode(level, low, high)
	b.incref(low)
	b.incref(high)
	return Node(res << 1)
}

func (b *BDD) incref(n Node) {
	k := n.index()
	if k == 0 {
		return
	}
	if b.nodes[k].refcou&^_MARK < _MAXREFCOUNT {
		b.nodes[k].refcou++
	}
}

func (b *BDD) decref(n Node) {
	k := n.index()
	if k == 0 {
		return
	}
	c := b.nodes[k].refcou &^ _MARK
	if c > 0 && c < _MAXREFCOUNT {
		b.nodes[k].refcou--
	}
}

func (b *BDD) noderesize() error {
	if _LOGLEVEL > 0 {
		log.Printf("start resize: %d\n", len(b.nodes))
	}
	oldsize := len(b.nodes)
	nodesize := len(b.nodes)
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := b.nodes
	b.nodes = make([]huddnode, nodesize)
	copy(b.nodes, tmp)

	for n := oldsize; n < nodesize; n++ {
		b.nodes[n].refcou = 0
		b.nodes[n].level = 0
		b.nodes[n].low = bddnil
		b.nodes[n].high = Node(n + 1)
	}
	b.nodes[nodesize-1].high = Node(b.freepos)
	b.freepos = oldsize
	b.freenum += (nodesize - oldsize)

	b.cacheresize()

	if _LOGLEVEL > 0 {
		log.Printf("end resize: %d\n", len(b.nodes))
	}
	return nil
}

// *************************************************************************
// RECURSIVE MARK / UNMARK

func (b *BDD) markrec(n int) {
	if n == 0 || b.ismarked(n) || (b.nodes[n].low == bddnil) {
		return
	}
	b.marknode(n)
	b.markrec(b.nodes[n].low.index())
	b.markrec(b.nodes[n].high.index())
}

// markcount returns the number of vertices reachable from the node n, not
// counting the terminal, and mark them.
func (b *BDD) markcount(n int) int {
	if n == 0 || b.ismarked(n) || (b.nodes[n].low == bddnil) {
		return 0
	}
	b.marknode(n)
	return 1 + b.markcount(b.nodes[n].low.index()) + b.markcount(b.nodes[n].high.index())
}

func (b *BDD) unmarkall() {
	for k, v := range b.nodes {
		if k == 0 || !b.ismarked(k) || (v.low == bddnil) {
			continue
		}
		b.unmarknode(k)
	}
}
