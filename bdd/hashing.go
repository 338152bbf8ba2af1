// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer. It is therefore a perfect hash: no collisions
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

func (b *BDD) hit(res Node) Node {
	if _DEBUG {
		if res >= 0 {
			b.cachestat.opHit++
		} else {
			b.cachestat.opMiss++
		}
	}
	return res
}

// ************************************************************

// The hash function for Apply is #(left, right, op).

func (b *BDD) matchapply(left, right Node, op Operator) Node {
	entry := b.applycache.table[_TRIPLE(int(left), int(right), int(op), len(b.applycache.table))]
	if entry.a == int(left) && entry.b == int(right) && entry.c == int(op) {
		return b.hit(entry.res)
	}
	return b.hit(bddnil)
}

func (b *BDD) setapply(left, right Node, op Operator, res Node) Node {
	if res < 0 {
		b.seterror("problem in call to apply(%d,%d,%s)", left, right, op)
		return bddnil
	}
	b.applycache.table[_TRIPLE(int(left), int(right), int(op), len(b.applycache.table))] = cacheData{
		a:   int(left),
		b:   int(right),
		c:   int(op),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for ITE is #(f,g,h).

func (b *BDD) matchite(f, g, h Node) Node {
	entry := b.itecache.table[_TRIPLE(int(f), int(g), int(h), len(b.itecache.table))]
	if entry.a == int(f) && entry.b == int(g) && entry.c == int(h) {
		return b.hit(entry.res)
	}
	return b.hit(bddnil)
}

func (b *BDD) setite(f, g, h, res Node) Node {
	if res < 0 {
		b.seterror("problem in call to ite")
		return bddnil
	}
	b.itecache.table[_TRIPLE(int(f), int(g), int(h), len(b.itecache.table))] = cacheData{
		a:   int(f),
		b:   int(g),
		c:   int(h),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for quantification is simply n.

func (b *BDD) matchquant(n Node) Node {
	entry := b.quantcache.table[int(n)%len(b.quantcache.table)]
	if entry.a == int(n) && entry.c == b.quantcache.id {
		return b.hit(entry.res)
	}
	return b.hit(bddnil)
}

func (b *BDD) setquant(n Node, res Node) Node {
	if res < 0 {
		b.seterror("problem in call to quantification")
		return bddnil
	}
	b.quantcache.table[int(n)%len(b.quantcache.table)] = cacheData{
		a:   int(n),
		c:   b.quantcache.id,
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for the other operations is #(n, arg, id) where id holds
// the kind of operation in its lowest bits.

func (b *BDD) matchmisc(n Node, arg int, id int) Node {
	entry := b.misccache.table[_TRIPLE(int(n), arg, id, len(b.misccache.table))]
	if entry.a == int(n) && entry.b == arg && entry.c == id {
		return b.hit(entry.res)
	}
	return b.hit(bddnil)
}

func (b *BDD) setmisc(n Node, arg int, id int, res Node) Node {
	if res < 0 {
		b.seterror("problem in call to %s", miscname(id))
		return bddnil
	}
	b.misccache.table[_TRIPLE(int(n), arg, id, len(b.misccache.table))] = cacheData{
		a:   int(n),
		b:   arg,
		c:   id,
		res: res,
	}
	return res
}

func miscname(id int) string {
	switch id & (1<<cacheid_BITS - 1) {
	case cacheid_RESTRICT:
		return "restrict"
	case cacheid_INSERT:
		return "insert"
	case cacheid_WEAVE:
		return "weave"
	}
	return "unknown operation"
}
