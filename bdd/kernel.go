// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"errors"
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD. We use only the first 21
// bits for encoding levels (so also the max number of variables). Hence we make
// sure to always use int32 to avoid problem when we change architecture.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick nodes (like the constant and variables) in the node list. It is
// egal to 1023 (10 bits). A node whose count saturates is never reclaimed.
const _MAXREFCOUNT int32 = 0x3FF

// _MARK is the bit of refcou used when marking nodes during a traversal.
const _MARK int32 = 0x200000

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTCACHESIZE is the number of entries in each operation cache when no
// Cachesize option is given.
const _DEFAULTCACHESIZE int = 10000

var errMemory = errors.New("unable to free memory or resize BDD")

// ErrLevelMap is returned by Remap when the level map is empty, not strictly
// ascending or too short for the source diagram.
var ErrLevelMap = errors.New("invalid level map")

// ErrIncidence is returned by NewIncidence when a dependency list is not a
// strictly descending sequence of levels below its vertex level.
var ErrIncidence = errors.New("invalid incidence list")

// ErrProbabilities is returned by Probability when the probability table does
// not cover every level of the diagram.
var ErrProbabilities = errors.New("probability table too short")

// ************************************************************

// Node is a reference to a vertex of a BDD. The value encodes the index of the
// vertex in the node table (n >> 1) and a complement flag (n & 1). The single
// terminal is stored at index 0, hence False is 0 and True is 1. Two nodes of
// the same BDD denote the same Boolean function if and only if they are equal.
type Node int

const (
	// False is the constant false function.
	False Node = 0
	// True is the constant true function.
	True Node = 1
)

// bddnil is returned by internal operations on error.
const bddnil Node = -1

func (n Node) index() int {
	return int(n >> 1)
}

// IsComplement reports whether n is a complemented reference.
func (n Node) IsComplement() bool {
	return n&1 == 1
}

// Regular returns n without its complement flag.
func (n Node) Regular() Node {
	return n &^ 1
}

// IsConst reports whether n is one of the constants True or False.
func (n Node) IsConst() bool {
	return n == False || n == True
}
