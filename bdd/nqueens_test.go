// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"math/big"
	"testing"
)

// board is an N by N chess board where square (r, c) is the variable at level
// r*N+c+1.
type board struct {
	b *BDD
	n int
}

func newBoard(t testing.TB, n int) *board {
	t.Helper()
	b, err := New(n*n, Nodesize(n*n*256), Cachesize(n*n*64), Cacheratio(30))
	if err != nil {
		t.Fatal(err)
	}
	return &board{b: b, n: n}
}

func (q *board) square(r, c int) Node {
	return q.b.Ithvar(r*q.n + c + 1)
}

// lines returns the squares of every row, column and diagonal of the board.
func (q *board) lines() [][]Node {
	var res [][]Node
	for i := 0; i < q.n; i++ {
		var row, col []Node
		for j := 0; j < q.n; j++ {
			row = append(row, q.square(i, j))
			col = append(col, q.square(j, i))
		}
		res = append(res, row, col)
	}
	// diagonals are indexed by r-c and r+c
	for d := -(q.n - 1); d < q.n; d++ {
		var down, up []Node
		for r := 0; r < q.n; r++ {
			if c := r - d; c >= 0 && c < q.n {
				down = append(down, q.square(r, c))
			}
			if c := d + q.n - 1 - r; c >= 0 && c < q.n {
				up = append(up, q.square(r, c))
			}
		}
		res = append(res, down, up)
	}
	return res
}

// atMostOne holds when no two squares of line are occupied.
func (q *board) atMostOne(line []Node) Node {
	res := q.b.True()
	for i := range line {
		for _, other := range line[i+1:] {
			res = q.b.And(res, q.b.Not(q.b.And(line[i], other)))
		}
	}
	return res
}

// queens returns the placements of N queens that do not attack each other.
func (q *board) queens() Node {
	res := q.b.True()
	for r := 0; r < q.n; r++ {
		var row []Node
		for c := 0; c < q.n; c++ {
			row = append(row, q.square(r, c))
		}
		res = q.b.And(res, q.b.Or(row...))
	}
	for _, line := range q.lines() {
		res = q.b.And(res, q.atMostOne(line))
	}
	return res
}

func TestNQueens(t *testing.T) {
	tests := []struct {
		n         int
		solutions int64
	}{
		{1, 1},
		{3, 0},
		{4, 2},
		{5, 10},
		{6, 4},
		{8, 92},
	}
	for _, tt := range tests {
		q := newBoard(t, tt.n)
		sol := q.queens()
		if err := q.b.Error(); err != "" {
			t.Fatalf("queens(%d): %s", tt.n, err)
		}
		if got := q.b.Satcount(sol); got.Cmp(big.NewInt(tt.solutions)) != 0 {
			t.Errorf("queens(%d): expected %d solutions, actual %s", tt.n, tt.solutions, got)
		}
	}
}

func TestNQueensComplement(t *testing.T) {
	for _, n := range []int{4, 5, 6} {
		q := newBoard(t, n)
		b := q.b
		sol := q.queens()
		neg := b.Not(sol)
		if neg != sol^1 || neg.IsComplement() == sol.IsComplement() {
			t.Errorf("queens(%d): negation is not a flip of the complement bit", n)
		}
		if neg.Regular() != sol.Regular() {
			t.Errorf("queens(%d): negation should share the node of the solutions", n)
		}
		if b.Not(neg) != sol {
			t.Errorf("queens(%d): double negation changed the node", n)
		}
		if b.Size(sol) != b.Size(neg) {
			t.Errorf("queens(%d): size %d of the negation differs from %d", n, b.Size(neg), b.Size(sol))
		}
		all := new(big.Int).Lsh(big.NewInt(1), uint(n*n))
		if sum := new(big.Int).Add(b.Satcount(sol), b.Satcount(neg)); sum.Cmp(all) != 0 {
			t.Errorf("queens(%d): solutions and their negation cover %s of %s assignments", n, sum, all)
		}
		if b.Apply(sol, neg, OPxor) != True {
			t.Errorf("queens(%d): f xor not f should be true", n)
		}
		if b.Equiv(sol, sol) != True || b.Equiv(sol, neg) != False {
			t.Errorf("queens(%d): wrong equivalence with itself or its negation", n)
		}
		if b.Or(sol, neg) != True || b.And(sol, neg) != False {
			t.Errorf("queens(%d): f and not f should be disjoint and cover everything", n)
		}
		// De Morgan on the row constraints, built from negated squares
		var row, negs []Node
		for c := 0; c < n; c++ {
			row = append(row, q.square(0, c))
			negs = append(negs, b.NIthvar(c+1))
		}
		if b.Not(b.Or(row...)) != b.And(negs...) {
			t.Errorf("queens(%d): not of a disjunction differs from the conjunction of negations", n)
		}
		// xor with the same square twice is the identity
		x := q.square(n/2, n/2)
		if b.Apply(b.Apply(sol, x, OPxor), x, OPxor) != sol {
			t.Errorf("queens(%d): xor with a square twice changed the result", n)
		}
	}
}

func BenchmarkNQueens(b *testing.B) {
	for i := 0; i < b.N; i++ {
		newBoard(b, 8).queens()
	}
}
