// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
)

// Probability returns the probability that the function n evaluates to true
// when the variable at level l is independently true with probability prob[l].
// The table must have an entry for every level of n (prob[0] is not used).
//
// The value of a vertex is value(low)*(1-p) + value(high)*p; the value of a
// complemented reference is one minus the value of its vertex.
func (b *BDD) Probability(n Node, prob []float64) (float64, error) {
	if err := b.checkptr(n); err != nil {
		return 0, err
	}
	if l := int(b.level(n)); l >= len(prob) {
		return 0, fmt.Errorf("%w: %d entries for level %d", ErrProbabilities, len(prob), l)
	}
	memo := make(map[int]float64)
	return b.probability(n, prob, memo), nil
}

func (b *BDD) probability(n Node, prob []float64, memo map[int]float64) float64 {
	k := n.index()
	var res float64
	if k != 0 {
		v, ok := memo[k]
		if !ok {
			nd := b.nodes[k]
			p := prob[nd.level]
			v = b.probability(nd.low, prob, memo)*(1-p) + b.probability(nd.high, prob, memo)*p
			memo[k] = v
		}
		res = v
	}
	if n.IsComplement() {
		return 1 - res
	}
	return res
}
