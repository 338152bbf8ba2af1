// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Restrict returns the cofactor of n where the variable at the given level is
// set to value.
func (b *BDD) Restrict(n Node, level int, value bool) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Restrict (%d)", n)
	}
	if level < 1 || int32(level) > b.varnum {
		return b.seterror("unknown variable used (%d) in call to Restrict", level)
	}
	arg := level << 1
	if value {
		arg |= 1
	}
	return b.restrict(n, int32(level), arg)
}

func (b *BDD) restrict(n Node, level int32, arg int) Node {
	if n < 0 {
		return bddnil
	}
	l := b.level(n)
	if l < level {
		return n
	}
	if l == level {
		low, high := b.cofactors(n, l)
		if arg&1 == 1 {
			return high
		}
		return low
	}
	// restrict(!n) == !restrict(n)
	neg := n & 1
	n = n.Regular()
	if res := b.matchmisc(n, arg, cacheid_RESTRICT); res >= 0 {
		return res ^ neg
	}
	low := b.restrict(b.nodes[n.index()].low, level, arg)
	high := b.restrict(b.nodes[n.index()].high, level, arg)
	res := b.setmisc(n, arg, cacheid_RESTRICT, b.makenode(l, low, high))
	if res < 0 {
		return res
	}
	return res ^ neg
}

// Compose substitutes the function g for the variable at the given level in n.
// The result is (!g & n[level:=0]) | (g & n[level:=1]).
func (b *BDD) Compose(n Node, level int, g Node) Node {
	if b.checkptr(g) != nil {
		return b.seterror("wrong operand in call to Compose (g: %d)", g)
	}
	high := b.Restrict(n, level, true)
	low := b.Restrict(n, level, false)
	if b.error != nil {
		return bddnil
	}
	return b.ite(g, high, low)
}
