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

// Package field implements the modular big-integer helpers the octonion
// scheme is built on: extended-Euclid inversion, Euler's criterion, and
// Tonelli-Shanks square roots. Every exported function returns a canonical
// representative in [0, m).
package field

import (
	"fmt"
	"math/big"

	"github.com/hamadakafu/octonion/internal"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Canon brings x into the canonical range [0, m) for a positive modulus m.
func Canon(x, m *big.Int) *big.Int {
	r := new(big.Int).Mod(x, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}

// Inverse returns a canonical representative of a^-1 mod m, computed via
// the extended Euclidean algorithm. It returns an error if gcd(a, m) != 1;
// this is a precondition violation (programmer error), not a recoverable
// condition.
func Inverse(a, m *big.Int) (*big.Int, error) {
	g := new(big.Int)
	x := new(big.Int)
	g.GCD(x, nil, new(big.Int).Mod(a, m), m)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("field: gcd(%s, %s) = %s != 1, no inverse exists", a.String(), m.String(), g.String())
	}
	return Canon(x, m), nil
}

// IsResidue reports whether x is a nonzero quadratic residue modulo the odd
// prime p, via Euler's criterion: x^((p-1)/2) mod p == 1. Zero is treated
// as a non-residue for the GH-finder's purposes.
func IsResidue(x, p *big.Int) bool {
	xm := Canon(x, p)
	if xm.Sign() == 0 {
		return false
	}
	e := new(big.Int).Sub(p, one)
	e.Div(e, two)
	r := new(big.Int).Exp(xm, e, p)
	return r.Cmp(one) == 0
}

// SqrtMod returns r such that r^2 = n (mod p), for an odd prime p >= 3 and
// n a quadratic residue modulo p. Callers are expected to have checked
// IsResidue(n, p) first; if n is not a residue, ErrNonResidue is returned.
func SqrtMod(n, p *big.Int) (*big.Int, error) {
	if p.Cmp(big.NewInt(3)) < 0 || p.Bit(0) == 0 {
		return nil, fmt.Errorf("field: p must be an odd prime >= 3, got %s", p.String())
	}
	nm := Canon(n, p)
	if nm.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if !IsResidue(nm, p) {
		return nil, internal.ErrNonResidue
	}

	// Fast path: p = 3 (mod 4).
	four := big.NewInt(4)
	if new(big.Int).Mod(p, four).Cmp(big.NewInt(3)) == 0 {
		e := new(big.Int).Add(p, one)
		e.Div(e, four)
		return new(big.Int).Exp(nm, e, p), nil
	}

	return tonelliShanks(nm, p)
}

// tonelliShanks implements the general Tonelli-Shanks algorithm, used when
// p is not congruent to 3 mod 4.
func tonelliShanks(n, p *big.Int) (*big.Int, error) {
	// Write p - 1 = q * 2^s with q odd.
	q := new(big.Int).Sub(p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Div(q, two)
		s++
	}

	// Find any quadratic non-residue z.
	z := big.NewInt(2)
	for IsResidue(z, p) {
		z.Add(z, one)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(n, q, p)
	qPlus1Half := new(big.Int).Add(q, one)
	qPlus1Half.Div(qPlus1Half, two)
	r := new(big.Int).Exp(n, qPlus1Half, p)

	for {
		if t.Cmp(one) == 0 {
			return r, nil
		}
		if t.Sign() == 0 {
			return big.NewInt(0), nil
		}

		// Find least i, 0 < i < m, such that t^(2^i) = 1 (mod p).
		i := 0
		tt := new(big.Int).Set(t)
		for i = 1; i < m; i++ {
			tt.Exp(tt, two, p)
			if tt.Cmp(one) == 0 {
				break
			}
		}
		if i == m {
			return nil, fmt.Errorf("field: tonelli-shanks failed to converge for n=%s p=%s", n.String(), p.String())
		}

		b := new(big.Int).Exp(c, new(big.Int).Lsh(one, uint(m-i-1)), p)
		m = i
		c = new(big.Int).Mod(new(big.Int).Mul(b, b), p)
		t = new(big.Int).Mod(new(big.Int).Mul(t, c), p)
		r = new(big.Int).Mod(new(big.Int).Mul(r, b), p)
	}
}
