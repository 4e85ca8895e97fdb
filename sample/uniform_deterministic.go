/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sample

import (
	"math/big"

	"golang.org/x/crypto/salsa20"
)

// UniformDet samples values from the interval [0, max) deterministically
// from a fixed 32-byte key, for reproducible test fixtures and benchmarks
// where a fresh crypto/rand draw on every run would make failures
// unrepeatable.
type UniformDet struct {
	key     *[32]byte
	max     *big.Int
	maxBits int
	counter uint64
}

// NewUniformDet returns a UniformDet sampler bound to key, producing values
// in [0, max).
func NewUniformDet(max *big.Int, key *[32]byte) *UniformDet {
	maxBits := new(big.Int).Sub(max, big.NewInt(1)).BitLen()
	return &UniformDet{
		key:     key,
		max:     max,
		maxBits: maxBits,
	}
}

// Sample returns the next value in the deterministic stream, satisfying
// sample.Sampler. It never errors.
func (u *UniformDet) Sample() (*big.Int, error) {
	maxBytes := (u.maxBits / 8) + 1
	over := uint(8 - (u.maxBits % 8))
	if over == 8 {
		maxBytes--
		over = 0
	}

	for {
		in := make([]byte, maxBytes)
		out := make([]byte, maxBytes)
		nonce := make([]byte, 8)
		for i := 0; i < 8 && i*8 < len(nonce)*8; i++ {
			nonce[i] = byte(u.counter >> (8 * i))
		}
		u.counter++

		salsa20.XORKeyStream(out, in, nonce, u.key)
		out[0] = out[0] >> over

		ret := new(big.Int).SetBytes(out)
		if ret.Cmp(u.max) < 0 {
			return ret, nil
		}
	}
}
