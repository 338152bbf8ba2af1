// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// configs holds the parameters given to New.
type configs struct {
	varnum          int
	nodesize        int // initial capacity of the node table
	cachesize       int // initial number of entries of each operation cache
	cacheratio      int // cache entries per 100 nodes after a resize, 0 for a fixed size
	maxnodesize     int // 0 means unbounded
	maxnodeincrease int // largest growth of the table in one resize, 0 means unbounded
	minfreenodes    int // percentage of free nodes under which GC is followed by a resize
}

func makeconfigs(varnum int) *configs {
	return &configs{
		varnum:          varnum,
		nodesize:        2*varnum + 2, // constants and one node per variable
		cachesize:       _DEFAULTCACHESIZE,
		maxnodeincrease: _DEFAULTMAXNODEINC,
		minfreenodes:    _MINFREENODES,
	}
}

// Nodesize sets the initial capacity of the node table. Values too small to
// hold the constants and the variables are ignored. The table still grows when
// needed.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize bounds the number of nodes. An operation that would go over the
// bound fails, sets the error of the BDD and returns an invalid node. The
// default, 0, leaves the table unbounded.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease bounds the number of nodes added by a single resize of the
// table, which otherwise doubles. The default is about one million nodes and 0
// removes the bound.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes sets the percentage of free nodes that must remain after a
// garbage collection; below it the table is resized. The default is 20.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize sets the initial number of entries of the operation caches,
// rounded up to a prime. Non positive values are ignored.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio makes the caches grow with the node table: after a resize each
// cache has ratio entries for every 100 nodes. With the default, 0, caches
// keep their initial size.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}
