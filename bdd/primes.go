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

import "math/big"

// nextPrime returns the smallest prime number greater or equal to n. The
// operation caches have a prime number of entries.
func nextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	p := big.NewInt(int64(n | 1))
	two := big.NewInt(2)
	// exact for values below 2^64
	for !p.ProbablyPrime(0) {
		p.Add(p, two)
	}
	return int(p.Int64())
}
