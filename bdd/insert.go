// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"sync/atomic"
)

// incidenceID gives a distinct identity to each Incidence, used as part of the
// keys in the operation caches.
var incidenceID atomic.Int64

// Incidence records, for each level of a diagram, whether it is a vertex level
// and the strictly descending list of levels that depend on it. All the lists
// share a single backing array, so a suffix of a list is identified by its
// offset. An Incidence is immutable.
type Incidence struct {
	id     int
	vertex []bool
	flat   []int32
	start  []int // list of level l is flat[start[l]:start[l+1]]
}

// NewIncidence returns the incidence lists for the levels 0..len(isVertex)-1.
// The list of a vertex level must be strictly descending, with levels in the
// range [1, level); the list of any other level must be empty.
func NewIncidence(isVertex []bool, lists [][]int) (*Incidence, error) {
	if len(lists) > len(isVertex) {
		return nil, fmt.Errorf("%w: %d lists for %d levels", ErrIncidence, len(lists), len(isVertex))
	}
	inc := &Incidence{
		id:     int(incidenceID.Add(1)),
		vertex: append([]bool(nil), isVertex...),
		start:  make([]int, len(isVertex)+1),
	}
	for l := range isVertex {
		inc.start[l] = len(inc.flat)
		if l >= len(lists) {
			continue
		}
		if !isVertex[l] && len(lists[l]) > 0 {
			return nil, fmt.Errorf("%w: level %d is not a vertex level", ErrIncidence, l)
		}
		for k, d := range lists[l] {
			if d < 1 || d >= l {
				return nil, fmt.Errorf("%w: level %d in the list of level %d", ErrIncidence, d, l)
			}
			if k > 0 && d >= lists[l][k-1] {
				return nil, fmt.Errorf("%w: list of level %d is not strictly descending", ErrIncidence, l)
			}
			inc.flat = append(inc.flat, int32(d))
		}
	}
	inc.start[len(isVertex)] = len(inc.flat)
	return inc, nil
}

// Levels returns the number of levels covered by inc, including level 0.
func (inc *Incidence) Levels() int {
	return len(inc.vertex)
}

// IsVertex reports whether level is a vertex level.
func (inc *Incidence) IsVertex(level int) bool {
	return level >= 0 && level < len(inc.vertex) && inc.vertex[level]
}

// Deps returns the list of level.
func (inc *Incidence) Deps(level int) Deps {
	return Deps{inc: inc, off: inc.start[level], end: inc.start[level+1]}
}

// Deps is a suffix of one of the lists of an Incidence.
type Deps struct {
	inc      *Incidence
	off, end int
}

// Len returns the number of levels in d.
func (d Deps) Len() int {
	return d.end - d.off
}

// Levels returns a copy of the levels in d.
func (d Deps) Levels() []int {
	res := make([]int, 0, d.Len())
	for k := d.off; k < d.end; k++ {
		res = append(res, int(d.inc.flat[k]))
	}
	return res
}

// Tail returns d without its first level.
func (d Deps) Tail() Deps {
	if d.off < d.end {
		d.off++
	}
	return d
}

// ************************************************************

// Insert returns the diagram where every level of d is forced on its low
// branch: the result is the cofactor of f with all the variables of d set to
// false, and none of these levels is tested in the result. Levels of d above
// the top of f are ignored.
func (b *BDD) Insert(f Node, d Deps) Node {
	if b.checkptr(f) != nil {
		return b.seterror("wrong operand in call to Insert (%d)", f)
	}
	if d.inc == nil || d.off >= d.end {
		return f
	}
	return b.insert(f, d.inc, d.off, d.end)
}

func (b *BDD) insert(f Node, inc *Incidence, off, end int) Node {
	if f < 0 {
		return bddnil
	}
	k := f.index()
	if k == 0 {
		return f
	}
	level := b.nodes[k].level
	for off < end && inc.flat[off] > level {
		off++
	}
	if off == end {
		return f
	}
	neg := f & 1
	f = f.Regular()
	shared := b.shared(f)
	id := inc.id<<cacheid_BITS | cacheid_INSERT
	if shared {
		if res := b.matchmisc(f, off, id); res >= 0 {
			return res ^ neg
		}
	}
	nd := b.nodes[k]
	var res Node
	if inc.flat[off] == level {
		res = b.insert(nd.low, inc, off+1, end)
		b.assertbelow("insert", res, level)
	} else {
		low := b.insert(nd.low, inc, off, end)
		high := b.insert(nd.high, inc, off, end)
		b.assertbelow("insert", low, level)
		b.assertbelow("insert", high, level)
		res = b.makenode(level, low, high)
	}
	if shared {
		res = b.setmisc(f, off, id, res)
	}
	if res < 0 {
		return bddnil
	}
	return res ^ neg
}

// Weave interleaves vertex levels into the edge diagram f, whose top level is
// at most top. For every vertex level v of inc, the result tests v: when v is
// true we continue with f, and when v is false we continue with f where all
// the levels in the list of v are false (see Insert). Levels that are not
// vertex levels must be the levels tested by f.
func (b *BDD) Weave(f Node, top int, inc *Incidence) Node {
	if b.checkptr(f) != nil {
		return b.seterror("wrong operand in call to Weave (%d)", f)
	}
	if top < int(b.level(f)) || top >= inc.Levels() || int32(top) > b.varnum {
		return b.seterror("bad top level (%d) in call to Weave", top)
	}
	return b.weave(int32(top), f, inc)
}

func (b *BDD) weave(level int32, f Node, inc *Incidence) Node {
	if f < 0 {
		return bddnil
	}
	if level == 0 || f.IsConst() {
		return f
	}
	neg := f & 1
	f = f.Regular()
	shared := b.shared(f)
	id := inc.id<<cacheid_BITS | cacheid_WEAVE
	if shared {
		if res := b.matchmisc(f, int(level), id); res >= 0 {
			return res ^ neg
		}
	}
	flevel := b.level(f)
	l := level
	for !inc.vertex[l] && l > flevel {
		l--
	}
	var res Node
	switch {
	case inc.vertex[l] && l > flevel:
		high := b.weave(l-1, f, inc)
		low := b.insert(high, inc, inc.start[l], inc.start[l+1])
		b.assertbelow("weave", high, l)
		b.assertbelow("weave", low, l)
		res = b.makenode(l, low, high)
	case l == flevel && !inc.vertex[l]:
		nd := b.nodes[f.index()]
		low := b.weave(l-1, nd.low, inc)
		high := b.weave(l-1, nd.high, inc)
		b.assertbelow("weave", low, l)
		b.assertbelow("weave", high, l)
		res = b.makenode(l, low, high)
	default:
		b.logTable()
		panic(fmt.Sprintf("weave: node %d at vertex level %d", f, flevel))
	}
	if shared {
		res = b.setmisc(f, int(level), id, res)
	}
	if res < 0 {
		return bddnil
	}
	return res ^ neg
}
