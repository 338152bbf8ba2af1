// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
	"math/big"
)

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result may be nil
// if there is an error. The result follows the level order, from the top.
func (b *BDD) Scanset(n Node) []int {
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Scanset (%d)", n)
		return nil
	}
	if n.IsConst() {
		return nil
	}
	res := []int{}
	for i := n; !i.IsConst(); i = b.High(i) {
		res = append(res, int(b.level(i)))
	}
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. It is such that
// scanset(Makeset(a)) == a, up to the order of levels. It returns an invalid
// node and sets the error condition in b if one of the variables is outside
// the scope of the BDD (see documentation for function *Ithvar*).
func (b *BDD) Makeset(varset []int) Node {
	res := True
	for _, level := range varset {
		v := b.Ithvar(level)
		if v < 0 {
			return bddnil
		}
		res = b.apply(res, v, OPand)
		if b.error != nil {
			return bddnil
		}
	}
	return res
}

// Not returns the negation of the expression corresponding to node n. With
// complement edges this is a constant time operation that never creates nodes.
func (b *BDD) Not(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Not (%d)", n)
	}
	return n ^ 1
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description            Truth table
//
//	OPand         logical and            [0,0,0,1]
//	OPxor         logical xor            [0,1,1,0]
//	OPor          logical or             [0,1,1,1]
//	OPnand        logical not-and        [1,1,1,0]
//	OPnor         logical not-or         [1,0,0,0]
//	OPimp         implication            [1,1,0,1]
//	OPbiimp       equivalence            [1,0,0,1]
//	OPdiff        set difference         [0,0,1,0]
//	OPless        less than              [0,1,0,0]
//	OPinvimp      reverse implication    [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	if b.checkptr(left) != nil {
		return b.seterror("wrong operand in call to Apply %s(left: %d, right: ...)", op, left)
	}
	if b.checkptr(right) != nil {
		return b.seterror("wrong operand in call to Apply %s(left: ..., right: %d)", op, right)
	}
	if op < 0 || int(op) >= len(opdecomp) {
		return b.seterror("unauthorized operation (%d) in apply", int(op))
	}
	return b.apply(left, right, op)
}

func (b *BDD) apply(left, right Node, op Operator) Node {
	d := opdecomp[op]
	var res Node
	if d.core == OPand {
		res = b.and(left^d.nleft, right^d.nright)
	} else {
		res = b.xor(left^d.nleft, right^d.nright)
	}
	if res < 0 {
		return res
	}
	return res ^ d.n
}

func (b *BDD) and(left, right Node) Node {
	switch {
	case left < 0 || right < 0:
		if _DEBUG {
			log.Panicf("panic in and(%d,%d)\n", left, right)
		}
		return bddnil
	case left == right:
		return left
	case left == right^1:
		return False
	case left == False || right == False:
		return False
	case left == True:
		return right
	case right == True:
		return left
	}
	if left > right {
		left, right = right, left
	}
	if res := b.matchapply(left, right, OPand); res >= 0 {
		return res
	}
	top := max(b.level(left), b.level(right))
	l0, l1 := b.cofactors(left, top)
	r0, r1 := b.cofactors(right, top)
	low := b.and(l0, r0)
	high := b.and(l1, r1)
	return b.setapply(left, right, OPand, b.makenode(top, low, high))
}

func (b *BDD) xor(left, right Node) Node {
	switch {
	case left < 0 || right < 0:
		if _DEBUG {
			log.Panicf("panic in xor(%d,%d)\n", left, right)
		}
		return bddnil
	case left == right:
		return False
	case left == right^1:
		return True
	case left == False:
		return right
	case right == False:
		return left
	case left == True:
		return right ^ 1
	case right == True:
		return left ^ 1
	}
	// xor(!l, r) == !xor(l, r); we only cache regular operands
	neg := (left ^ right) & 1
	left, right = left.Regular(), right.Regular()
	if left > right {
		left, right = right, left
	}
	if res := b.matchapply(left, right, OPxor); res >= 0 {
		return res ^ neg
	}
	top := max(b.level(left), b.level(right))
	l0, l1 := b.cofactors(left, top)
	r0, r1 := b.cofactors(right, top)
	low := b.xor(l0, r0)
	high := b.xor(l1, r1)
	res := b.setapply(left, right, OPxor, b.makenode(top, low, high))
	if res < 0 {
		return res
	}
	return res ^ neg
}

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) Node {
	if b.checkptr(f) != nil {
		return b.seterror("wrong operand in call to Ite (f: %d)", f)
	}
	if b.checkptr(g) != nil {
		return b.seterror("wrong operand in call to Ite (g: %d)", g)
	}
	if b.checkptr(h) != nil {
		return b.seterror("wrong operand in call to Ite (h: %d)", h)
	}
	return b.ite(f, g, h)
}

// max3 returns the highest value between p, q and r. This is used in function
// ite to compute the top level.
func max3(p, q, r int32) int32 {
	if p >= q {
		if p >= r { // p >= q && p >= r
			return p
		}
		return r // r > p >= q
	}
	if q >= r { // q > p && q >= r
		return q
	}
	return r // r > q > p
}

func (b *BDD) ite(f, g, h Node) Node {
	switch {
	case f < 0 || g < 0 || h < 0:
		if _DEBUG {
			log.Panicf("panic in ite(%d,%d,%d)\n", f, g, h)
		}
		return bddnil
	case f == True:
		return g
	case f == False:
		return h
	case g == h:
		return g
	case (g == True) && (h == False):
		return f
	case (g == False) && (h == True):
		return f ^ 1
	case g == f || g == True:
		return b.apply(f, h, OPor)
	case h == f || h == False:
		return b.and(f, g)
	case g == f^1 || g == False:
		return b.and(f^1, h)
	case h == f^1 || h == True:
		return b.apply(f, g, OPimp)
	}
	// ite(!f, g, h) == ite(f, h, g)
	if f.IsComplement() {
		f, g, h = f^1, h, g
	}
	if res := b.matchite(f, g, h); res >= 0 {
		return res
	}
	top := max3(b.level(f), b.level(g), b.level(h))
	f0, f1 := b.cofactors(f, top)
	g0, g1 := b.cofactors(g, top)
	h0, h1 := b.cofactors(h, top)
	low := b.ite(f0, g0, h0)
	high := b.ite(f1, g1, h1)
	return b.setite(f, g, h, b.makenode(top, low, high))
}

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset. We return
// an invalid node and set the error flag in b if there is an error.
func (b *BDD) Exist(n, varset Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong node in call to Exist (n: %d)", n)
	}
	if b.checkptr(varset) != nil {
		return b.seterror("wrong varset in call to Exist (%d)", varset)
	}
	if varset.IsConst() { // we have an empty set or a constant
		return n
	}
	if err := b.quantset2cache(varset); err != nil {
		return bddnil
	}
	return b.quant(n)
}

func (b *BDD) quant(n Node) Node {
	if n < 0 {
		return bddnil
	}
	if n.IsConst() || (b.level(n) < b.quantlast) {
		return n
	}
	// the hash for a quantification operation is simply n
	if res := b.matchquant(n); res >= 0 {
		return res
	}
	level := b.level(n)
	n0, n1 := b.cofactors(n, level)
	low := b.quant(n0)
	high := b.quant(n1)
	var res Node
	if b.quantset[level] == b.quantsetID {
		res = b.apply(low, high, OPor)
	} else {
		res = b.makenode(level, low, high)
	}
	return b.setquant(n, res)
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n, over all the Varnum variables of b. We return a result
// using arbitrary-precision arithmetic to avoid possible overflows. The result
// is zero (and we set the error flag of b) if there is an error.
func (b *BDD) Satcount(n Node) *big.Int {
	res := big.NewInt(0)
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Satcount (%d)", n)
		return res
	}
	// We compute 2^(number of levels above n) with a bit shift
	res.SetBit(res, int(b.varnum-b.level(n)), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(n, satc))
}

// satcount returns the number of assignments of the levels 1..level(n) that
// satisfy n.
func (b *BDD) satcount(n Node, satc map[int]*big.Int) *big.Int {
	k := n.index()
	level := b.nodes[k].level
	var res *big.Int
	if k == 0 {
		res = big.NewInt(0)
	} else if memo, ok := satc[k]; ok {
		// we use satc to memoize the value of satcount for each nodes
		res = memo
	} else {
		res = big.NewInt(0)
		for _, c := range [2]Node{b.nodes[k].low, b.nodes[k].high} {
			two := big.NewInt(0)
			two.SetBit(two, int(level-b.level(c)-1), 1)
			res.Add(res, two.Mul(two, b.satcount(c, satc)))
		}
		satc[k] = res
	}
	if !n.IsComplement() {
		return res
	}
	// the complement of n has 2^level(n) - satcount(n) solutions
	all := big.NewInt(0)
	all.SetBit(all, int(level), 1)
	return all.Sub(all, res)
}

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// the entry at index l-1 is for the variable of level l and is either 0 if the
// variable is false, 1 if it is true, and -1 if it is a don't care. We stop
// and return an error if f returns an error at some point.
//
// The following is an example of a callback handler that counts the number of
// possible assignments (such that we do not count don't care twice):
//
//	acc := new(int)
//	b.Allsat(n, func(varset []int) error {
//	  *acc++
//	  return nil
//	})
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	if b.checkptr(n) != nil {
		return fmt.Errorf("wrong node in call to Allsat (%d)", n)
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing
	return b.allsat(n, prof, f)
}

func (b *BDD) allsat(n Node, prof []int, f func([]int) error) error {
	if n == True {
		return f(prof)
	}
	if n == False {
		return nil
	}
	level := b.level(n)
	low, high := b.cofactors(n, level)
	for value, c := range [2]Node{low, high} {
		if c == False {
			continue
		}
		prof[level-1] = value
		for v := level - 1; v > b.level(c); v-- {
			prof[v-1] = -1
		}
		if err := b.allsat(c, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the active nodes if n is absent. The parameters to
// function f are the index, level, and references to the low and high
// successors of each node. The terminal has always the index 0 and level 0.
//
// The order in which nodes are visited is not specified. The behavior is very
// similar to the one of Allsat. In particular, we stop the computation and
// return an error if f returns an error at some point.
func (b *BDD) Allnodes(f func(id, level int, low, high Node) error, n ...Node) error {
	for _, v := range n {
		if b.checkptr(v) != nil {
			return fmt.Errorf("wrong node in call to Allnodes (%d)", v)
		}
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing.
	if len(n) == 0 {
		// we call f over all active nodes
		return b.allnodes(f)
	}
	return b.allnodesfrom(f, n)
}

// Size returns the number of (non terminal) vertices in the diagrams rooted at
// the nodes in n. Shared vertices are only counted once, and a node and its
// complement share the same vertices.
func (b *BDD) Size(n ...Node) int {
	for _, v := range n {
		if b.checkptr(v) != nil {
			b.seterror("wrong node in call to Size (%d)", v)
			return 0
		}
	}
	res := 0
	for _, v := range n {
		res += b.markcount(v.index())
	}
	b.unmarkall()
	return res
}
