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

package octoenc

import (
	"fmt"
	"math/big"

	"github.com/hamadakafu/octonion/field"
	"github.com/hamadakafu/octonion/internal"
	"github.com/hamadakafu/octonion/keygen"
	"github.com/hamadakafu/octonion/matrix"
	"github.com/hamadakafu/octonion/octonion"
	"github.com/pkg/errors"
)

// CipherText is an 8x8 F_q matrix, interpreted as a linear endomorphism of
// F_q^8. It is produced only by Encrypt and by the homomorphic operators
// Add/Mul, and is immutable once constructed.
type CipherText struct {
	q   *big.Int
	mat matrix.Matrix8
}

// Encrypt embeds plaintext m into a randomized mediam-text octonion and
// projects it through the public-key tensor to produce a ciphertext matrix.
func (s *Schema) Encrypt(m *big.Int, pk *keygen.PublicKey) (*CipherText, error) {
	if pk.Modulus().Cmp(s.q) != 0 {
		return nil, internal.ErrSchemaMismatch
	}

	u, err := s.opts.Sampler.Sample()
	if err != nil {
		return nil, errors.Wrap(err, "octoenc: sampling u")
	}
	v, err := s.opts.Sampler.Sample()
	if err != nil {
		return nil, errors.Wrap(err, "octoenc: sampling v")
	}
	w, err := s.opts.Sampler.Sample()
	if err != nil {
		return nil, errors.Wrap(err, "octoenc: sampling w")
	}

	gh := s.g.Multiply(s.h)
	hg := s.h.Multiply(s.g)

	mediam := s.g.Scale(field.Canon(m, s.q)).
		Add(s.h.Scale(u)).
		Add(gh.Scale(v)).
		Add(hg.Scale(w))

	mArr := mediam.Array()

	rows := make([][]*big.Int, matrix.Dim)
	for i := 0; i < matrix.Dim; i++ {
		rows[i] = make([]*big.Int, matrix.Dim)
		for j := 0; j < matrix.Dim; j++ {
			sum := big.NewInt(0)
			for k := 0; k < matrix.Dim; k++ {
				t, err := pk.At(i, j, k)
				if err != nil {
					return nil, err
				}
				sum.Add(sum, new(big.Int).Mul(t, mArr[k]))
			}
			rows[i][j] = field.Canon(sum, s.q)
		}
	}

	mat, err := matrix.New(s.q, rows)
	if err != nil {
		return nil, err
	}
	return &CipherText{q: s.q, mat: mat}, nil
}

// Decrypt recovers the plaintext from ciphertext c under secret key sk.
// The A_i products must not be reordered: the key chain is pushed through
// the identity right-folded, then peeled left-to-right after the
// ciphertext matrix is applied.
func (s *Schema) Decrypt(c *CipherText, sk *keygen.SecretKey) (*big.Int, error) {
	if c.q.Cmp(s.q) != 0 || sk.Modulus().Cmp(s.q) != 0 {
		return nil, internal.ErrSchemaMismatch
	}

	x := sk.IdentityPushThroughChain()
	yArr := c.mat.Apply(x.Array())
	y := octonion.New(s.q, yArr[0], yArr[1], yArr[2], yArr[3], yArr[4], yArr[5], yArr[6], yArr[7])

	y = sk.PeelKey(y)

	y0, err := y.At(0)
	if err != nil {
		return nil, err
	}
	return field.Canon(new(big.Int).Mul(big.NewInt(2), y0), s.q), nil
}

// Add returns the ciphertext whose action on x is c.Apply(x) + other.Apply(x):
// entrywise matrix sum mod q.
func (c *CipherText) Add(other *CipherText) (*CipherText, error) {
	if c.q.Cmp(other.q) != 0 {
		return nil, internal.ErrSchemaMismatch
	}
	sum, err := c.mat.Add(other.mat)
	if err != nil {
		return nil, err
	}
	return &CipherText{q: c.q, mat: sum}, nil
}

// Mul returns the ciphertext whose action on x is c.Apply(other.Apply(x)):
// matrix-product composition, entirely in F_q with no octonion
// multiplication at this layer.
func (c *CipherText) Mul(other *CipherText) (*CipherText, error) {
	if c.q.Cmp(other.q) != 0 {
		return nil, internal.ErrSchemaMismatch
	}
	prod, err := c.mat.Mul(other.mat)
	if err != nil {
		return nil, err
	}
	return &CipherText{q: c.q, mat: prod}, nil
}

// Modulus returns q.
func (c *CipherText) Modulus() *big.Int {
	return c.q
}

// String renders the ciphertext matrix for debugging.
func (c *CipherText) String() string {
	s := fmt.Sprintf("CipherText{q=%s", c.q.String())
	for i := 0; i < matrix.Dim; i++ {
		s += "\n"
		for j := 0; j < matrix.Dim; j++ {
			e, _ := c.mat.At(i, j)
			s += " " + e.String()
		}
	}
	return s + "}"
}
