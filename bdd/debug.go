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

//go:build debug

package bdd

import (
	"log"
	"os"
)

const _DEBUG bool = true
const _LOGLEVEL int = 1

// ******************************************************************************************************

func init() {
	log.SetOutput(os.Stderr)
}

// ******************************************************************************************************

// logTable prints the content of the node table, one line per slot in use.
// Pinned nodes are marked with a '+'.
func (b *BDD) logTable() {
	if b.error != nil {
		log.Printf("ERROR: %s\n", b.error)
	}
	for k, n := range b.nodes {
		if n.low == bddnil {
			continue
		}
		switch {
		case n.refcou == _MAXREFCOUNT:
			log.Printf("%-3d ( %-3d ,  %-3d ,  %-3d) | +\n", k, n.level, n.low, n.high)
		case n.refcou == 0:
			log.Printf("%-3d ( %-3d ,  %-3d ,  %-3d) | dead\n", k, n.level, n.low, n.high)
		default:
			log.Printf("%-3d ( %-3d ,  %-3d ,  %-3d) | %d\n", k, n.level, n.low, n.high, n.refcou)
		}
	}
}
