// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
)

// BDD is a table of shared, reduced and ordered decision nodes with complement
// edges. Variables are identified with their level, in the interval
// [1..Varnum]; level 0 is reserved for the terminal. A node always has a
// strictly greater level than its two successors, so the root of a diagram is
// the node with the highest level.
//
// A BDD is not safe for concurrent use.
type BDD struct {
	varnum       int32           // number of variables (levels 1..varnum)
	varset       []Node          // varset[l] is the positive literal of level l
	nodes        []huddnode      // node table, the terminal is at index 0
	unique       map[nodekey]int // unicity table, associates each triplet to a single index
	freenum      int             // number of free nodes
	freepos      int             // first free node, 0 if none
	produced     int             // total number of new nodes ever produced
	quantset     []int32         // current variable set for quantification
	quantsetID   int32           // current id used in quantset
	quantlast    int32           // lowest level to quantify
	applycache   *applycache     // cache for apply results
	itecache     *itecache       // cache for ITE results
	quantcache   *quantcache     // cache for exist results
	misccache    *misccache      // cache for restrict, insert and weave results
	cachestat    cacheStat       // information about caches
	gcstat                       // information about garbage collections
	configs                      // configurable parameters
	error                        // sticky error status
}

// New returns a new BDD with varnum variables, at levels 1 to varnum. Options
// are Nodesize, Maxnodesize, Maxnodeincrease, Minfreenodes, Cachesize and
// Cacheratio. New returns a nil BDD and an error if the parameters are wrong.
func New(varnum int, options ...func(*configs)) (*BDD, error) {
	if (varnum < 0) || (int32(varnum) > _MAXVAR) {
		return nil, fmt.Errorf("bad number of variable (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b := &BDD{configs: *config}
	b.inittable(b.nodesize)
	b.cacheinit(b.cachesize, b.cacheratio)
	if err := b.SetVarnum(varnum); err != nil {
		return nil, err
	}
	return b, nil
}

// SetVarnum sets the number of BDD variables. It may be called more than once,
// but only to increase the number of variables. New variables are added at
// the top of the order.
func (b *BDD) SetVarnum(num int) error {
	inum := int32(num)
	if (inum < b.varnum) || (inum > _MAXVAR) {
		b.seterror("bad number of variable (%d) in SetVarnum", num)
		return b.error
	}
	if len(b.varset) == 0 {
		b.varset = make([]Node, 1, num+1)
		b.varset[0] = True
	}
	for k := b.varnum + 1; k <= inum; k++ {
		v := b.makenode(k, False, True)
		if v < 0 {
			b.seterror("cannot allocate new variable %d in SetVarnum", k)
			return b.error
		}
		b.nodes[v.index()].refcou = _MAXREFCOUNT
		b.varset = append(b.varset, v)
	}
	b.varnum = inum
	if _LOGLEVEL > 0 {
		log.Printf("set varnum to %d\n", b.varnum)
	}
	return nil
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// True returns the constant true BDD.
func (b *BDD) True() Node {
	return True
}

// False returns the constant false BDD.
func (b *BDD) False() Node {
	return False
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return True
	}
	return False
}

// Ithvar returns a BDD representing the variable at the given level. The level
// must be in the range [1..Varnum].
func (b *BDD) Ithvar(level int) Node {
	if (level < 1) || (int32(level) > b.varnum) {
		return b.seterror("unknown variable used (%d) in call to Ithvar", level)
	}
	return b.varset[level]
}

// NIthvar returns a BDD representing the negation of the variable at the given
// level. See Ithvar for further info.
func (b *BDD) NIthvar(level int) Node {
	if (level < 1) || (int32(level) > b.varnum) {
		return b.seterror("unknown variable used (%d) in call to NIthvar", level)
	}
	return b.varset[level] ^ 1
}

// Level returns the level of the top variable of n, 0 for a constant.
func (b *BDD) Level(n Node) int {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Level (%d)", n)
		return -1
	}
	return int(b.nodes[n.index()].level)
}

// Low returns the false branch of n, taking its complement flag into account.
func (b *BDD) Low(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Low (%d)", n)
	}
	return b.nodes[n.index()].low ^ (n & 1)
}

// High returns the true branch of n, taking its complement flag into account.
func (b *BDD) High(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to High (%d)", n)
	}
	return b.nodes[n.index()].high ^ (n & 1)
}

// Refcount returns the reference count of the vertex of n: the number of
// parents plus the number of external references added with AddRef.
func (b *BDD) Refcount(n Node) int {
	if b.checkptr(n) != nil {
		return 0
	}
	return int(b.nodes[n.index()].refcou &^ _MARK)
}

// checkptr returns an error if n is not a valid node of b.
func (b *BDD) checkptr(n Node) error {
	switch {
	case n < 0:
		return fmt.Errorf("illegal acces to node %d", n)
	case n.index() >= len(b.nodes):
		return fmt.Errorf("illegal acces to node %d (out of range)", n)
	case n.index() > 0 && b.nodes[n.index()].low == bddnil:
		return fmt.Errorf("illegal acces to node %d (reclaimed)", n)
	}
	return nil
}

// ************************************************************

func (b *BDD) level(n Node) int32 {
	return b.nodes[n.index()].level
}

// cofactors returns the two branches of n with respect to level. If n does not
// test level, both branches are n.
func (b *BDD) cofactors(n Node, level int32) (Node, Node) {
	nd := &b.nodes[n.index()]
	if nd.level != level {
		return n, n
	}
	neg := n & 1
	return nd.low ^ neg, nd.high ^ neg
}

func (b *BDD) shared(n Node) bool {
	return b.nodes[n.index()].refcou&^_MARK > 1
}

// assertbelow panics if n is not strictly below level; this would mean that we
// are about to build a node that breaks the ordering of the diagram.
func (b *BDD) assertbelow(op string, n Node, level int32) {
	if n < 0 {
		return
	}
	if l := b.level(n); l >= level {
		log.Panicf("%s: child %d at level %d is not below level %d", op, n, l, level)
	}
}
