// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Operator describe the potential (binary) operations available on an Apply.
type Operator int

// With complement edges, every operator is computed with a conjunction or an
// exclusive or, after negating some of the operands and the result.
const (
	OPand    Operator = iota // Boolean conjunction
	OPxor                    // Exclusive or
	OPor                     // Disjunction
	OPnand                   // Negation of and
	OPnor                    // Negation of or
	OPimp                    // Implication
	OPbiimp                  // Equivalence
	OPdiff                   // Difference
	OPless                   // Set difference
	OPinvimp                 // Reverse implication
)

var opnames = [10]string{
	OPand:    "and",
	OPxor:    "xor",
	OPor:     "or",
	OPnand:   "nand",
	OPnor:    "nor",
	OPimp:    "imp",
	OPbiimp:  "biimp",
	OPdiff:   "diff",
	OPless:   "less",
	OPinvimp: "invimp",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(opnames) {
		return "unknown"
	}
	return opnames[op]
}

// opdecomp gives, for each operator, the core operation used to compute it
// (OPand or OPxor) and the negations to apply on the left operand, the right
// operand and the result.
var opdecomp = [10]struct {
	core             Operator
	nleft, nright, n Node
}{
	OPand:    {OPand, 0, 0, 0}, // l & r
	OPxor:    {OPxor, 0, 0, 0}, // l ^ r
	OPor:     {OPand, 1, 1, 1}, // !(!l & !r)
	OPnand:   {OPand, 0, 0, 1}, // !(l & r)
	OPnor:    {OPand, 1, 1, 0}, // !l & !r
	OPimp:    {OPand, 0, 1, 1}, // !(l & !r)
	OPbiimp:  {OPxor, 0, 0, 1}, // !(l ^ r)
	OPdiff:   {OPand, 0, 1, 0}, // l & !r
	OPless:   {OPand, 1, 0, 0}, // !l & r
	OPinvimp: {OPand, 1, 0, 1}, // !(!l & r)
}
