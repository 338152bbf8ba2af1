// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import (
	"fmt"
	"math"
)

// ************************************************************
// cache is used for caching apply/ite/exist etc. results. Entries are direct
// mapped: a new result simply overwrites the previous entry with the same
// hash. Entries refer to nodes by index, so every cache is reset when nodes
// are reclaimed (see GC).
type cache struct {
	cacheratio int // value used to resize the caches as a factor of the number of nodes
	table      []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	opHit        int // entries found in the operator caches
	opMiss       int // entries not found in the operator caches
}

// cacheData is a unit of information stored in the operation caches
type cacheData struct {
	res Node
	a   int
	b   int
	c   int
}

// ************************************************************

// Different kind of caches used in the bdd

type applycache struct {
	cache // Cache for apply results
}

type itecache struct {
	cache // Cache for ITE results
}

type quantcache struct {
	cache     // Cache for exist results
	id    int // Current cache id for quantifications
}

type misccache struct {
	cache // Cache for other results
}

// ************************************************************

// Hash value modifiers to distinguish between entries in misccache. The
// identity of the incidence lists used by insert and weave is stored in the
// remaining bits.
const cacheid_RESTRICT int = 0x0
const cacheid_INSERT int = 0x1
const cacheid_WEAVE int = 0x2
const cacheid_BITS = 2

// Hash value modifiers for quantification
const cacheid_EXIST int = 0x0

// ************************************************************

// Basic functions shared by all caches

func (bc *cache) cacheinit(size int, ratio int) {
	// we never check if the creation of the slice panic because of lack of memory
	size = nextPrime(size)
	bc.cacheratio = ratio
	bc.table = make([]cacheData, size)
	bc.cachereset()
}

func (bc *cache) cacheresize(nodesize int) {
	if bc.cacheratio > 0 {
		bc.cacheinit((nodesize*bc.cacheratio)/100, bc.cacheratio)
		return
	}
	bc.cachereset()
}

func (bc *cache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup and shutdown

func (b *BDD) cacheinit(cachesize int, cacheratio int) {
	b.quantset = make([]int32, 0)
	if cachesize <= 0 {
		cachesize = len(b.nodes)/5 + 1
	}
	b.applycache = &applycache{}
	b.applycache.cacheinit(cachesize, cacheratio)
	b.itecache = &itecache{}
	b.itecache.cacheinit(cachesize, cacheratio)
	b.quantcache = &quantcache{}
	b.quantcache.cacheinit(cachesize, cacheratio)
	b.misccache = &misccache{}
	b.misccache.cacheinit(cachesize, cacheratio)
}

func (b *BDD) cachereset() {
	b.applycache.cachereset()
	b.itecache.cachereset()
	b.quantcache.cachereset()
	b.misccache.cachereset()
}

func (b *BDD) cacheresize() {
	b.applycache.cacheresize(len(b.nodes))
	b.itecache.cacheresize(len(b.nodes))
	b.quantcache.cacheresize(len(b.nodes))
	b.misccache.cacheresize(len(b.nodes))
}

// *************************************************************************

// SetCacheratio sets the cache ratio for the operator caches.
//
// With a cache ratio of r, the caches have r entries for every 100 slots in
// the node table. When this is done the caches are resized instantly to fit
// the new ratio. The default is a fixed cache size determined at
// initialization time.
func (b *BDD) SetCacheratio(r int) error {
	if r <= 0 {
		b.seterror("Negative ratio (%d) in call to SetCacheratio", r)
		return b.error
	}
	b.applycache.cacheratio = r
	b.itecache.cacheratio = r
	b.quantcache.cacheratio = r
	b.misccache.cacheratio = r
	b.cacheresize()
	return nil
}

// ************************************************************
//
// Quantification Cache
//

// quantset2cache takes a variable list, similar to the ones generated with
// Makeset, and set the variables in the quantification cache.
func (b *BDD) quantset2cache(n Node) error {
	if n < 2 || n.IsComplement() {
		b.seterror("Illegal variable (%d) in varset to cache", n)
		return b.error
	}
	if len(b.quantset) <= int(b.varnum) {
		b.quantset = make([]int32, b.varnum+1)
		b.quantsetID = 0
	}
	b.quantsetID++
	if b.quantsetID == math.MaxInt32 {
		b.quantset = make([]int32, b.varnum+1)
		b.quantsetID = 1
	}
	for i := n; i > 1; i = b.nodes[i.index()].high {
		b.quantset[b.level(i)] = b.quantsetID
		b.quantlast = b.level(i)
	}
	b.quantcache.id = int(b.quantsetID)<<1 | cacheid_EXIST
	return nil
}

// ************************************************************

// Prints information about the cache performance. The information contains the
// number of accesses to the unique node table, the number of times a node was
// (not) found there. Hit and miss count is also given for the operator caches.

func (c cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}
