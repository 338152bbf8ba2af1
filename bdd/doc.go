// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines a concrete type for Binary Decision Diagrams (BDD) with
complement edges, together with the operations needed to compute the
reliability of a network: level remapping, vertex insertion, the construction
of an edge-vertex diagram and the evaluation of the probability of a function.

Basics

Each BDD has a number of variables, Varnum, that can only grow (see SetVarnum).
Variables are identified with their level, in the interval [1..Varnum]. Level 0
is reserved for the single terminal node. Every node has a strictly greater
level than its successors, so the root of a diagram is its highest level.

Most operations over BDD return a Node; that is a reference to a "vertex" in
the BDD together with a complement flag. The terminal is stored at index 0, so
the constant False is the Node 0 and True is its complement, the Node 1.
Diagrams are canonical: two nodes of the same BDD denote the same function if
and only if they are equal.

Memory management

Each vertex carries a reference count: the number of its parents plus the
number of external references added with AddRef. Garbage collection never
happens during an operation. A call to GC reclaims every vertex that is not
reachable from a referenced or pinned vertex and invalidates the operation
caches.

Errors

Operations returning a Node set a sticky error in the BDD when something goes
wrong (for instance when the node table cannot grow anymore). Use Errored or
Err to check the status after a sequence of operations.

Use of build tags

To get access to better statistics about caches, as well as to unlock logging
of some operations, you can compile your executable with the build tag
`debug`.
*/
package bdd
