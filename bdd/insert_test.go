// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
	"math/rand"
	"testing"
)

// randomNode returns a random function over the levels 1..varnum.
func randomNode(b *BDD, r *rand.Rand, varnum int) Node {
	res := b.False()
	for i := 0; i < 4; i++ {
		cube := b.True()
		for l := 1; l <= varnum; l++ {
			switch r.Intn(3) {
			case 0:
				cube = b.And(cube, b.Ithvar(l))
			case 1:
				cube = b.And(cube, b.NIthvar(l))
			}
		}
		res = b.Or(res, cube)
	}
	return res
}

func TestNewIncidence(t *testing.T) {
	var tests = []struct {
		name     string
		isVertex []bool
		lists    [][]int
		ok       bool
	}{
		{"empty", []bool{false}, nil, true},
		{"single edge", []bool{false, false, true, true}, [][]int{nil, nil, {1}, {1}}, true},
		{"ascending", []bool{false, false, false, true}, [][]int{nil, nil, nil, {1, 2}}, false},
		{"duplicate", []bool{false, false, false, true}, [][]int{nil, nil, nil, {2, 2}}, false},
		{"not below", []bool{false, false, true}, [][]int{nil, nil, {2}}, false},
		{"level zero", []bool{false, false, true}, [][]int{nil, nil, {0}}, false},
		{"edge level", []bool{false, false, false}, [][]int{nil, nil, {1}}, false},
		{"too many lists", []bool{false}, [][]int{nil, nil}, false},
	}
	for _, tt := range tests {
		inc, err := NewIncidence(tt.isVertex, tt.lists)
		switch {
		case tt.ok && err != nil:
			t.Errorf("%s: unexpected error %s", tt.name, err)
		case !tt.ok && !errors.Is(err, ErrIncidence):
			t.Errorf("%s: expected ErrIncidence, actual %v", tt.name, err)
		case tt.ok && inc.Levels() != len(tt.isVertex):
			t.Errorf("%s: expected %d levels, actual %d", tt.name, len(tt.isVertex), inc.Levels())
		}
	}
}

func TestDeps(t *testing.T) {
	inc, err := NewIncidence([]bool{false, false, false, false, true}, [][]int{4: {3, 2, 1}})
	if err != nil {
		t.Fatal(err)
	}
	d := inc.Deps(4)
	if d.Len() != 3 {
		t.Errorf("expected 3 levels, actual %d", d.Len())
	}
	if l := d.Tail().Levels(); len(l) != 2 || l[0] != 2 || l[1] != 1 {
		t.Errorf("Tail: expected [2 1], actual %v", l)
	}
	if d.Tail().Tail().Tail().Tail().Len() != 0 {
		t.Errorf("Tail of an empty list should be empty")
	}
	if inc.Deps(2).Len() != 0 {
		t.Errorf("edge level should have an empty list")
	}
	if !inc.IsVertex(4) || inc.IsVertex(3) || inc.IsVertex(7) {
		t.Errorf("IsVertex: wrong result")
	}
}

// Insert must give the same result than restricting every level of the list
// to false.
func TestInsertIsCofactor(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	b, _ := New(6)
	inc, _ := NewIncidence(
		[]bool{false, false, false, false, false, false, true},
		[][]int{6: {5, 3, 2}},
	)
	for i := 0; i < 50; i++ {
		f := randomNode(b, r, 5)
		b.AddRef(f)
		expected := f
		for _, l := range []int{5, 3, 2} {
			expected = b.Restrict(expected, l, false)
		}
		if actual := b.Insert(f, inc.Deps(6)); actual != expected {
			t.Fatalf("Insert(%s): expected %s, actual %s", b.Print(f), b.Print(expected), b.Print(actual))
		}
		if actual := b.Insert(b.Not(f), inc.Deps(6)); actual != b.Not(expected) {
			t.Fatalf("Insert(!%s): expected %s, actual %s", b.Print(f), b.Print(b.Not(expected)), b.Print(actual))
		}
	}
	if b.Errored() {
		t.Errorf("unexpected error: %s", b.Error())
	}
}

func TestInsertIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	b, _ := New(5)
	inc, _ := NewIncidence([]bool{false, false, false, false, false, true}, [][]int{5: {4, 1}})
	d := inc.Deps(5)
	for i := 0; i < 30; i++ {
		f := randomNode(b, r, 4)
		once := b.Insert(f, d)
		if twice := b.Insert(once, d); twice != once {
			t.Fatalf("Insert is not idempotent on %s", b.Print(f))
		}
	}
	// a function that does not test the levels of the list is unchanged
	g := b.Or(b.Ithvar(2), b.NIthvar(3))
	if b.Insert(g, d) != g {
		t.Errorf("Insert should not change %s", b.Print(g))
	}
	if b.Insert(g, inc.Deps(2)) != g {
		t.Errorf("Insert with an empty list should be the identity")
	}
}

func TestWeaveSingleVertex(t *testing.T) {
	b, _ := New(3)
	inc, _ := NewIncidence([]bool{false, false, false, true}, [][]int{3: {2, 1}})
	f := b.Or(b.Ithvar(1), b.Ithvar(2))
	actual := b.Weave(f, 3, inc)
	expected := b.And(b.Ithvar(3), f)
	if actual != expected {
		t.Errorf("Weave: expected %s, actual %s", b.Print(expected), b.Print(actual))
	}
	// the vertex does not matter for !f when f is false
	if b.Weave(b.Not(f), 3, inc) != b.Not(actual) {
		t.Errorf("Weave(!f) should be the complement of Weave(f)")
	}
}

// evSemantics checks that n is F(e & v1 & v2) where F is the edge function f,
// for every assignment of the levels.
func evSemantics(t *testing.T, b *BDD, n, f Node, edges [][3]int, levels int) {
	t.Helper()
	for a := 0; a < 1<<levels; a++ {
		val := func(l int) bool { return a>>(l-1)&1 == 1 }
		got := n
		want := f
		for l := levels; l >= 1; l-- {
			got = b.Restrict(got, l, val(l))
		}
		for _, e := range edges {
			want = b.Restrict(want, e[0], val(e[0]) && val(e[1]) && val(e[2]))
		}
		for l := levels; l >= 1; l-- {
			want = b.Restrict(want, l, val(l))
		}
		if got != want {
			t.Fatalf("assignment %b: expected %s, actual %s", a, b.Print(want), b.Print(got))
		}
	}
}

// Path a - b - c: edge {a,b} at level 3 with endpoints at 5 and 4, edge {b,c}
// at level 1 with endpoint c at level 2.
func TestWeavePath(t *testing.T) {
	b, _ := New(5)
	inc, _ := NewIncidence(
		[]bool{false, false, true, false, true, true},
		[][]int{2: {1}, 4: {3, 1}, 5: {3}},
	)
	edges := [][3]int{{3, 5, 4}, {1, 4, 2}}
	// the two edges are needed to connect a and c
	f := b.And(b.Ithvar(3), b.Ithvar(1))
	n := b.Weave(f, 5, inc)
	expected := b.Makeset([]int{1, 2, 3, 4, 5})
	if n != expected {
		t.Errorf("Weave: expected %s, actual %s", b.Print(expected), b.Print(n))
	}
	evSemantics(t, b, n, f, edges, 5)
	// at least one of the two edges
	g := b.Or(b.Ithvar(3), b.Ithvar(1))
	evSemantics(t, b, b.Weave(g, 5, inc), g, edges, 5)
	// a non monotone function
	h := b.Apply(b.Ithvar(3), b.Ithvar(1), OPxor)
	evSemantics(t, b, b.Weave(h, 5, inc), h, edges, 5)
	if b.Errored() {
		t.Errorf("unexpected error: %s", b.Error())
	}
}

func TestWeaveErrors(t *testing.T) {
	b, _ := New(3)
	inc, _ := NewIncidence([]bool{false, false, false, true}, [][]int{3: {1}})
	if n := b.Weave(b.Ithvar(2), 1, inc); n >= 0 {
		t.Errorf("top below the root should fail")
	}
	b, _ = New(3)
	if n := b.Weave(b.Ithvar(2), 5, inc); n >= 0 {
		t.Errorf("top above the incidence lists should fail")
	}
	b, _ = New(3)
	defer func() {
		if recover() == nil {
			t.Errorf("a node at a vertex level should panic")
		}
	}()
	b.Weave(b.Ithvar(3), 3, inc)
}
