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

// Package octoenc assembles field, octonion, ghfind, matrix and keygen into
// the somewhat-homomorphic octonion encryption scheme: Schema construction,
// key generation, encrypt/decrypt, and the homomorphic ciphertext
// operators.
package octoenc

import (
	"fmt"
	"math/big"

	"github.com/hamadakafu/octonion/field"
	"github.com/hamadakafu/octonion/ghfind"
	"github.com/hamadakafu/octonion/keygen"
	"github.com/hamadakafu/octonion/octonion"
	"github.com/hamadakafu/octonion/sample"
	"github.com/pkg/errors"
)

// Options configures Schema construction, key generation and encryption.
// The zero value is a usable default: crypto/rand-backed uniform sampling,
// DefaultChainLength, and unbounded (but capped) parameter search.
type Options struct {
	// Sampler supplies randomness for GH-finder, key generation and
	// encryption. Nil means sample.NewUniform(q) (crypto/rand-backed).
	Sampler sample.Sampler
	// ChainLength is the secret-key chain length h. Zero means
	// keygen.DefaultChainLength.
	ChainLength int
	// GHFind configures the GH-finder's iteration cap and logger.
	GHFind ghfind.Options
	// Keygen configures the per-A_i invertibility search's iteration cap,
	// logger, and tensor-probe worker count.
	Keygen keygen.Options
}

func (o Options) withDefaults(q *big.Int) Options {
	if o.Sampler == nil {
		o.Sampler = sample.NewUniform(q)
	}
	if o.ChainLength <= 0 {
		o.ChainLength = keygen.DefaultChainLength
	}
	return o
}

// Schema holds the immutable parameters (q, G, H) a session's keys and
// ciphertexts are built against. Construct once per session; never mutate.
type Schema struct {
	q    *big.Int
	g, h octonion.Octonion
	opts Options
}

// NewSchema constructs a Schema for modulus q, running the GH-finder
// rejection sampler to produce G and H.
func NewSchema(q *big.Int, opts Options) (*Schema, error) {
	if q == nil || q.Sign() <= 0 || q.Bit(0) == 0 || q.Cmp(big.NewInt(3)) < 0 {
		return nil, fmt.Errorf("octoenc: q must be an odd prime >= 3, got %v", q)
	}
	opts = opts.withDefaults(q)

	g, h, err := ghfind.Find(q, opts.Sampler, opts.GHFind)
	if err != nil {
		return nil, errors.Wrap(err, "octoenc: GH-finder failed")
	}

	return &Schema{q: q, g: g, h: h, opts: opts}, nil
}

// NewSchemaWithGH constructs a Schema from precomputed G, H parameters,
// validating the scheme's algebraic contract: N(G) = N(H) = 0,
// G0 = 1/2 mod q, H0 = 0.
func NewSchemaWithGH(q *big.Int, g, h octonion.Octonion, opts Options) (*Schema, error) {
	if q == nil || q.Sign() <= 0 || q.Bit(0) == 0 || q.Cmp(big.NewInt(3)) < 0 {
		return nil, fmt.Errorf("octoenc: q must be an odd prime >= 3, got %v", q)
	}
	opts = opts.withDefaults(q)

	if g.NormSq().Sign() != 0 {
		return nil, fmt.Errorf("octoenc: G is not isotropic, N(G) != 0")
	}
	if h.NormSq().Sign() != 0 {
		return nil, fmt.Errorf("octoenc: H is not isotropic, N(H) != 0")
	}
	g0, err := g.At(0)
	if err != nil {
		return nil, err
	}
	half, err := field.Inverse(big.NewInt(2), q)
	if err != nil {
		return nil, err
	}
	if g0.Cmp(half) != 0 {
		return nil, fmt.Errorf("octoenc: G0 != 1/2 mod q")
	}
	h0, err := h.At(0)
	if err != nil {
		return nil, err
	}
	if h0.Sign() != 0 {
		return nil, fmt.Errorf("octoenc: H0 != 0")
	}

	return &Schema{q: q, g: g, h: h, opts: opts}, nil
}

// Modulus returns q.
func (s *Schema) Modulus() *big.Int {
	return s.q
}

// G returns the scheme's distinguished octonion G.
func (s *Schema) G() octonion.Octonion {
	return s.g
}

// H returns the scheme's distinguished octonion H.
func (s *Schema) H() octonion.Octonion {
	return s.h
}

// GenerateKeys produces a (SecretKey, PublicKey) pair for this schema.
func (s *Schema) GenerateKeys() (*keygen.SecretKey, *keygen.PublicKey, error) {
	sk, err := keygen.GenerateSecretKey(s.q, s.opts.ChainLength, s.opts.Sampler, s.opts.Keygen)
	if err != nil {
		return nil, nil, errors.Wrap(err, "octoenc: secret key generation failed")
	}
	pk, err := sk.DerivePublicKey(s.opts.Keygen)
	if err != nil {
		return nil, nil, errors.Wrap(err, "octoenc: public key derivation failed")
	}
	return sk, pk, nil
}
