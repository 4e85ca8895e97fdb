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

// Package keygen produces the octonion scheme's key material: a SecretKey
// (an ordered chain A_1..A_h of invertible octonions) and the PublicKey
// derived from it (an 8x8x8 F_q tensor encoding the bilinear key map K),
// via a rejection-sampling constructor that produces Params-like state.
package keygen

import (
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/hamadakafu/octonion/internal"
	"github.com/hamadakafu/octonion/octonion"
	"github.com/hamadakafu/octonion/sample"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultChainLength is the recommended default key-chain length h.
const DefaultChainLength = 56

// DefaultMaxIterations bounds the per-A_i invertibility rejection search.
const DefaultMaxIterations = 100000

// Options configures SecretKey generation and PublicKey derivation.
type Options struct {
	// MaxIterations caps the invertibility search for each A_i. Zero means
	// DefaultMaxIterations.
	MaxIterations int
	// Logger receives debug lines when an A_i must be resampled. Nil means
	// a no-op logger.
	Logger *zerolog.Logger
	// Workers bounds the number of goroutines used to probe the 8x8x8
	// tensor in DerivePublicKey. Zero or negative means sequential (no
	// extra goroutines), since the probe is embarrassingly parallel over
	// independent output cells but cheap enough at small h that
	// parallelism is optional, not required.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.New(io.Discard)
}

// SecretKey is the ordered chain A_1..A_h of invertible octonions.
type SecretKey struct {
	q         *big.Int
	chain     []octonion.Octonion
	inverses  []octonion.Octonion
}

// Len returns the chain length h.
func (sk *SecretKey) Len() int {
	return len(sk.chain)
}

// At returns A_i (1-indexed, so i ranges 1..Len()).
func (sk *SecretKey) At(i int) (octonion.Octonion, error) {
	if i < 1 || i > len(sk.chain) {
		return octonion.Octonion{}, fmt.Errorf("keygen: chain index %d out of range [1,%d]", i, len(sk.chain))
	}
	return sk.chain[i-1], nil
}

// Inverse returns A_i^-1 (1-indexed), precomputed at generation time.
func (sk *SecretKey) Inverse(i int) (octonion.Octonion, error) {
	if i < 1 || i > len(sk.inverses) {
		return octonion.Octonion{}, fmt.Errorf("keygen: chain index %d out of range [1,%d]", i, len(sk.inverses))
	}
	return sk.inverses[i-1], nil
}

// Modulus returns q.
func (sk *SecretKey) Modulus() *big.Int {
	return sk.q
}

// GenerateSecretKey samples h invertible octonions A_1..A_h over F_q, each
// conditioned on N(A_i) != 0. An octonion is redrawn wholesale on each
// rejection.
func GenerateSecretKey(q *big.Int, h int, sampler sample.Sampler, opts Options) (*SecretKey, error) {
	opts = opts.withDefaults()
	log := opts.logger()

	if h <= 0 {
		return nil, fmt.Errorf("keygen: chain length h must be positive, got %d", h)
	}

	chain := make([]octonion.Octonion, h)
	inverses := make([]octonion.Octonion, h)

	for idx := 0; idx < h; idx++ {
		found := false
		for iter := 0; iter < opts.MaxIterations; iter++ {
			a, err := octonion.NewRandomOctonion(q, sampler)
			if err != nil {
				return nil, errors.Wrapf(err, "keygen: sampling A_%d", idx+1)
			}
			if !a.HasInverse() {
				log.Debug().Int("chain_index", idx+1).Int("iter", iter).Msg("resample: N(A_i) = 0")
				continue
			}
			inv, err := a.Inverse()
			if err != nil {
				return nil, errors.Wrapf(err, "keygen: inverting A_%d", idx+1)
			}
			chain[idx] = a
			inverses[idx] = inv
			found = true
			break
		}
		if !found {
			return nil, internal.ErrParameterSearchExhausted
		}
	}

	return &SecretKey{q: q, chain: chain, inverses: inverses}, nil
}

// applyK computes the bilinear key map K(x, y): let u := x; for i = 1..h,
// u := A_i^-1 * u; let v := y * u; for i = h..1, v := A_i * v; return v.
// This parenthesization is load-bearing: octonion multiplication is
// non-associative, so these products must not be reordered.
func (sk *SecretKey) applyK(x, y octonion.Octonion) octonion.Octonion {
	u := x
	for i := 0; i < len(sk.chain); i++ {
		u = sk.inverses[i].Multiply(u)
	}
	v := y.Multiply(u)
	for i := len(sk.chain) - 1; i >= 0; i-- {
		v = sk.chain[i].Multiply(v)
	}
	return v
}

// IdentityPushThroughChain computes x := A_1*(A_2*(...*(A_h*1)...)), the
// right-folded application of the key chain to the multiplicative identity.
func (sk *SecretKey) IdentityPushThroughChain() octonion.Octonion {
	v := octonion.NewOne(sk.q)
	for i := len(sk.chain) - 1; i >= 0; i-- {
		v = sk.chain[i].Multiply(v)
	}
	return v
}

// PeelKey applies A_1^-1, A_2^-1, ..., A_h^-1 in that order to y.
func (sk *SecretKey) PeelKey(y octonion.Octonion) octonion.Octonion {
	for i := 0; i < len(sk.chain); i++ {
		y = sk.inverses[i].Multiply(y)
	}
	return y
}

// PublicKey is the 8x8x8 F_q tensor T derived by probing K on basis pairs.
type PublicKey struct {
	q      *big.Int
	tensor [8][8][8]*big.Int
}

// Modulus returns q.
func (pk *PublicKey) Modulus() *big.Int {
	return pk.q
}

// At returns T[i][j][k].
func (pk *PublicKey) At(i, j, k int) (*big.Int, error) {
	if i < 0 || i > 7 || j < 0 || j > 7 || k < 0 || k > 7 {
		return nil, fmt.Errorf("keygen: tensor index (%d,%d,%d) out of range", i, j, k)
	}
	return new(big.Int).Set(pk.tensor[i][j][k]), nil
}

// basisVector returns the i-th standard basis octonion e_i over F_q.
func basisVector(q *big.Int, i int) octonion.Octonion {
	coords := make([]*big.Int, 8)
	for c := range coords {
		coords[c] = big.NewInt(0)
	}
	coords[i] = big.NewInt(1)
	return octonion.New(q, coords[0], coords[1], coords[2], coords[3], coords[4], coords[5], coords[6], coords[7])
}

// DerivePublicKey computes T[i][j][k] := K(e_j, e_k)_i for all i,j,k in
// 0..7, by probing the bilinear key map on the 64 basis pairs (e_j, e_k).
// Each (j,k) cell is independent, so the probe is parallelized across
// Options.Workers goroutines when Workers > 1.
func (sk *SecretKey) DerivePublicKey(opts Options) (*PublicKey, error) {
	pk := &PublicKey{q: sk.q}

	type cell struct {
		j, k int
		r    octonion.Octonion
	}

	pairs := make([]cell, 0, 64)
	for j := 0; j < 8; j++ {
		for k := 0; k < 8; k++ {
			pairs = append(pairs, cell{j: j, k: k})
		}
	}

	workers := opts.Workers
	if workers <= 1 {
		for idx := range pairs {
			ej := basisVector(sk.q, pairs[idx].j)
			ek := basisVector(sk.q, pairs[idx].k)
			pairs[idx].r = sk.applyK(ej, ek)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, workers)
		for idx := range pairs {
			wg.Add(1)
			sem <- struct{}{}
			go func(idx int) {
				defer wg.Done()
				defer func() { <-sem }()
				ej := basisVector(sk.q, pairs[idx].j)
				ek := basisVector(sk.q, pairs[idx].k)
				pairs[idx].r = sk.applyK(ej, ek)
			}(idx)
		}
		wg.Wait()
	}

	for _, p := range pairs {
		for i := 0; i < 8; i++ {
			v, err := p.r.At(i)
			if err != nil {
				return nil, errors.Wrap(err, "keygen: reading K(e_j,e_k) coordinate")
			}
			pk.tensor[i][p.j][p.k] = v
		}
	}

	return pk, nil
}
