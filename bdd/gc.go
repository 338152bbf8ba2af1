// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"log"
)

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	reclaimed int       // Total number of nodes reclaimed
	history   []gcpoint // Snaphot of GC stats at each occurrence
}

type gcpoint struct {
	nodes     int // Total number of allocated nodes in the nodetable
	freenodes int // Number of free nodes in the nodetable before the GC
	reclaimed int // Number of nodes reclaimed by the GC
}

// *************************************************************************

// AddRef increases the reference count on node n and returns n so that calls
// can be easily chained together. A call to AddRef can never raise an error,
// even if we access an unused node or a value outside the range of the BDD.
//
// The count of a node is the number of its parents plus the number of
// external references. A node with a zero count is dead: it stays in the table,
// and can be returned again by an operation, until the next call to GC.
func (b *BDD) AddRef(n Node) Node {
	if b.checkptr(n) != nil {
		return n
	}
	b.incref(n)
	return n
}

// DelRef decreases the reference count on a node and returns n so that calls
// can be easily chained together. A call to DelRef can never raise an error,
// even if we access an unused node or a value outside the range of the BDD.
func (b *BDD) DelRef(n Node) Node {
	if b.checkptr(n) != nil {
		return n
	}
	b.decref(n)
	return n
}

// *************************************************************************

// GC reclaims all the dead nodes, meaning the nodes that are neither reachable
// from a node with an external reference nor pinned (like variables). The
// count of the successors of a reclaimed node is decremented, which can
// cascade. Allocated nodes that are not reclaimed do not move, but all the
// operation caches are invalidated.
//
// GC is never called during an operation; it is the responsibility of the
// caller to protect the nodes it still needs with AddRef.
func (b *BDD) GC() {
	if _LOGLEVEL > 0 {
		log.Println("starting GC")
	}
	if b.error != nil {
		return
	}
	before := b.freenum
	for k := len(b.nodes) - 1; k > 0; k-- {
		if b.nodes[k].low != bddnil && b.nodes[k].refcou&^_MARK == 0 {
			b.reclaim(k)
		}
	}
	b.gcstat.history = append(b.gcstat.history, gcpoint{
		nodes:     len(b.nodes),
		freenodes: before,
		reclaimed: b.freenum - before,
	})
	b.gcstat.reclaimed += b.freenum - before
	// we also invalidate the caches
	b.cachereset()
	// We also test if we are under the threshold for resising.
	if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
		if err := b.noderesize(); err != nil && _LOGLEVEL > 0 {
			log.Printf("no resize after GC: %s\n", err)
		}
	}
	if _LOGLEVEL > 0 {
		log.Printf("end GC; freenum: %d\n", b.freenum)
	}
}

// reclaim frees the slot of node k and decrements the count of its successors,
// reclaiming them too when their count drops to zero.
func (b *BDD) reclaim(k int) {
	low, high := b.nodes[k].low, b.nodes[k].high
	b.delnode(k)
	for _, c := range [2]Node{low, high} {
		i := c.index()
		if i == 0 {
			continue
		}
		cnt := b.nodes[i].refcou &^ _MARK
		if cnt == _MAXREFCOUNT {
			continue
		}
		if cnt > 0 {
			b.nodes[i].refcou--
			cnt--
		}
		if cnt == 0 {
			b.reclaim(i)
		}
	}
}
