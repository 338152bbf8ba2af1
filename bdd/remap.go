// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
)

// Remap rebuilds in b the diagram rooted at root in src (possibly b itself),
// moving each variable to a new level: the variable at level l in src is
// placed at level shiftVars[l-1] in b. The map must be non-empty, strictly
// ascending, start at a level greater than 0 and cover the levels of root.
// Variables of b are created on demand, up to the highest level needed.
//
// Each vertex (l, low, high) of src gives (low & !v) | (high & v) in b, where v
// is the variable at level shiftVars[l-1]. Since the map is monotonic, the
// result has the same shape as the source diagram.
func (b *BDD) Remap(src *BDD, root Node, shiftVars []int) (Node, error) {
	if len(shiftVars) == 0 {
		return bddnil, fmt.Errorf("%w: empty map", ErrLevelMap)
	}
	if shiftVars[0] < 1 {
		return bddnil, fmt.Errorf("%w: first level is %d", ErrLevelMap, shiftVars[0])
	}
	for k := 1; k < len(shiftVars); k++ {
		if shiftVars[k] <= shiftVars[k-1] {
			return bddnil, fmt.Errorf("%w: level %d maps to %d, not above %d", ErrLevelMap, k+1, shiftVars[k], shiftVars[k-1])
		}
	}
	if err := src.checkptr(root); err != nil {
		return bddnil, err
	}
	top := int(src.level(root))
	if top > len(shiftVars) {
		return bddnil, fmt.Errorf("%w: %d levels for a diagram of height %d", ErrLevelMap, len(shiftVars), top)
	}
	if top > 0 && shiftVars[top-1] > int(b.varnum) {
		if err := b.SetVarnum(shiftVars[top-1]); err != nil {
			return bddnil, err
		}
	}
	memo := make(map[int]Node)
	res := b.remap(src, root, shiftVars, memo)
	if res < 0 {
		return bddnil, b.error
	}
	return res, nil
}

func (b *BDD) remap(src *BDD, n Node, shiftVars []int, memo map[int]Node) Node {
	k := n.index()
	if k == 0 {
		return n
	}
	neg := n & 1
	if res, ok := memo[k]; ok {
		return res ^ neg
	}
	nd := src.nodes[k]
	low := b.remap(src, nd.low, shiftVars, memo)
	high := b.remap(src, nd.high, shiftVars, memo)
	if low < 0 || high < 0 {
		return bddnil
	}
	res := b.ite(b.varset[shiftVars[nd.level-1]], high, low)
	if res < 0 {
		return res
	}
	memo[k] = res
	return res ^ neg
}
