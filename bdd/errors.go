// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
)

// Error returns the error status of the BDD.
func (b *BDD) Error() string {
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Errored returns true if there was an error during a computation.
func (b *BDD) Errored() bool {
	return b.error != nil
}

// Err returns the sticky error of the BDD, or nil.
func (b *BDD) Err() error {
	return b.error
}

// seterror records an error and returns an invalid node. Errors are sticky: a
// new error is chained with the previous one.
func (b *BDD) seterror(format string, a ...interface{}) Node {
	if b.error != nil {
		b.error = fmt.Errorf(format+"; %w", append(a, b.error)...)
		return bddnil
	}
	b.error = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(b.error)
	}
	return bddnil
}
