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

// Package octonion implements the eight-coordinate, non-associative
// alternative division algebra over F_q used by the octonion encryption
// scheme. All arithmetic reduces into the canonical range [0, q).
package octonion

import (
	"fmt"
	"math/big"

	"github.com/hamadakafu/octonion/field"
	"github.com/hamadakafu/octonion/internal"
	"github.com/hamadakafu/octonion/sample"
	"github.com/pkg/errors"
)

// Octonion is an ordered 8-tuple of field elements modulo q. The zero value
// is not usable; construct with New or NewZero.
type Octonion struct {
	q     *big.Int
	coord [8]*big.Int
}

// New builds an Octonion from eight coordinates modulo q. Each coordinate
// is canonicalized into [0, q).
func New(q *big.Int, a0, a1, a2, a3, a4, a5, a6, a7 *big.Int) Octonion {
	o := Octonion{q: q}
	raw := [8]*big.Int{a0, a1, a2, a3, a4, a5, a6, a7}
	for i, c := range raw {
		o.coord[i] = field.Canon(c, q)
	}
	return o
}

// NewZero returns the additive identity over F_q.
func NewZero(q *big.Int) Octonion {
	z := big.NewInt(0)
	return New(q, z, z, z, z, z, z, z, z)
}

// NewOne returns the two-sided multiplicative identity over F_q.
func NewOne(q *big.Int) Octonion {
	return New(q, big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0))
}

// NewRandomOctonion samples a uniformly random octonion over F_q using the
// supplied sampler.
func NewRandomOctonion(q *big.Int, sampler sample.Sampler) (Octonion, error) {
	var coord [8]*big.Int
	for i := range coord {
		c, err := sampler.Sample()
		if err != nil {
			return Octonion{}, errors.Wrap(err, "cannot sample octonion coordinate")
		}
		coord[i] = c
	}
	return New(q, coord[0], coord[1], coord[2], coord[3], coord[4], coord[5], coord[6], coord[7]), nil
}

// Modulus returns q.
func (o Octonion) Modulus() *big.Int {
	return o.q
}

// At returns the i-th coordinate (0 <= i < 8). It returns an error on an
// out-of-range index, a precondition violation at the caller.
func (o Octonion) At(i int) (*big.Int, error) {
	if i < 0 || i > 7 {
		return nil, fmt.Errorf("octonion: index %d out of range [0,8)", i)
	}
	return new(big.Int).Set(o.coord[i]), nil
}

// WithAt returns a copy of o with coordinate i set to v. It returns an
// error on an out-of-range index.
func (o Octonion) WithAt(i int, v *big.Int) (Octonion, error) {
	if i < 0 || i > 7 {
		return Octonion{}, fmt.Errorf("octonion: index %d out of range [0,8)", i)
	}
	out := o.Copy()
	out.coord[i] = field.Canon(v, o.q)
	return out, nil
}

// Array returns a copy of o's eight coordinates as a plain array, for
// interop with the matrix package's vector-action methods.
func (o Octonion) Array() [8]*big.Int {
	var out [8]*big.Int
	for i, c := range o.coord {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// Copy returns a deep copy of o.
func (o Octonion) Copy() Octonion {
	out := Octonion{q: o.q}
	for i, c := range o.coord {
		out.coord[i] = new(big.Int).Set(c)
	}
	return out
}

// Equal reports whether o and other have identical canonical coordinates
// over the same modulus.
func (o Octonion) Equal(other Octonion) bool {
	if o.q.Cmp(other.q) != 0 {
		return false
	}
	for i := range o.coord {
		if o.coord[i].Cmp(other.coord[i]) != 0 {
			return false
		}
	}
	return true
}

// Add returns o + other, componentwise mod q.
func (o Octonion) Add(other Octonion) Octonion {
	out := Octonion{q: o.q}
	for i := range o.coord {
		out.coord[i] = field.Canon(new(big.Int).Add(o.coord[i], other.coord[i]), o.q)
	}
	return out
}

// Sub returns o - other, componentwise mod q.
func (o Octonion) Sub(other Octonion) Octonion {
	out := Octonion{q: o.q}
	for i := range o.coord {
		out.coord[i] = field.Canon(new(big.Int).Sub(o.coord[i], other.coord[i]), o.q)
	}
	return out
}

// Neg returns -o, componentwise mod q.
func (o Octonion) Neg() Octonion {
	out := Octonion{q: o.q}
	zero := big.NewInt(0)
	for i := range o.coord {
		out.coord[i] = field.Canon(new(big.Int).Sub(zero, o.coord[i]), o.q)
	}
	return out
}

// Scale returns x*o, scalar multiplication by a field element x.
func (o Octonion) Scale(x *big.Int) Octonion {
	out := Octonion{q: o.q}
	for i := range o.coord {
		out.coord[i] = field.Canon(new(big.Int).Mul(x, o.coord[i]), o.q)
	}
	return out
}

// Conjugate negates coordinates 1..7, leaving a0 untouched.
func (o Octonion) Conjugate() Octonion {
	out := o.Copy()
	zero := big.NewInt(0)
	for i := 1; i < 8; i++ {
		out.coord[i] = field.Canon(new(big.Int).Sub(zero, o.coord[i]), o.q)
	}
	return out
}

// NormSq returns N(o) = sum a_i^2 mod q.
func (o Octonion) NormSq() *big.Int {
	sum := big.NewInt(0)
	for _, c := range o.coord {
		sum.Add(sum, new(big.Int).Mul(c, c))
	}
	return field.Canon(sum, o.q)
}

// HasInverse reports whether o has a multiplicative inverse, i.e. N(o) != 0.
func (o Octonion) HasInverse() bool {
	return o.NormSq().Sign() != 0
}

// Inverse returns conj(o) * N(o)^-1. It returns internal.ErrNonInvertibleOctonion
// if N(o) = 0; it never panics.
func (o Octonion) Inverse() (Octonion, error) {
	n := o.NormSq()
	if n.Sign() == 0 {
		return Octonion{}, internal.ErrNonInvertibleOctonion
	}
	nInv, err := field.Inverse(n, o.q)
	if err != nil {
		return Octonion{}, errors.Wrap(err, "octonion: unexpected failure inverting nonzero norm")
	}
	return o.Conjugate().Scale(nInv), nil
}

// Divide returns o / other := o * other^-1. It returns
// internal.ErrNonInvertibleOctonion if other is not invertible.
func (o Octonion) Divide(other Octonion) (Octonion, error) {
	inv, err := other.Inverse()
	if err != nil {
		return Octonion{}, err
	}
	return o.Multiply(inv), nil
}

// Multiply returns the Cayley-Dickson octonion product o * other. The sign
// table is fixed across all coordinates; multiplication is non-associative
// but alternative and satisfies the Moufang identities, see
// octonion_test.go for the property suite that pins this table.
func (o Octonion) Multiply(other Octonion) Octonion {
	a := o.coord
	b := other.coord
	q := o.q

	sum := func(terms ...*big.Int) *big.Int {
		s := big.NewInt(0)
		for _, t := range terms {
			s.Add(s, t)
		}
		return field.Canon(s, q)
	}
	mul := func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }
	neg := func(x *big.Int) *big.Int { return new(big.Int).Neg(x) }

	c0 := sum(mul(a[0], b[0]), neg(mul(a[1], b[1])), neg(mul(a[2], b[2])), neg(mul(a[3], b[3])),
		neg(mul(a[4], b[4])), neg(mul(a[5], b[5])), neg(mul(a[6], b[6])), neg(mul(a[7], b[7])))

	c1 := sum(mul(a[0], b[1]), mul(a[1], b[0]), mul(a[2], b[3]), neg(mul(a[3], b[2])),
		mul(a[4], b[5]), neg(mul(a[5], b[4])), mul(a[7], b[6]), neg(mul(a[6], b[7])))

	c2 := sum(mul(a[0], b[2]), mul(a[2], b[0]), neg(mul(a[1], b[3])), mul(a[3], b[1]),
		mul(a[4], b[6]), neg(mul(a[6], b[4])), mul(a[5], b[7]), neg(mul(a[7], b[5])))

	c3 := sum(mul(a[0], b[3]), mul(a[3], b[0]), mul(a[1], b[2]), neg(mul(a[2], b[1])),
		mul(a[4], b[7]), neg(mul(a[7], b[4])), neg(mul(a[5], b[6])), mul(a[6], b[5]))

	c4 := sum(mul(a[0], b[4]), mul(a[4], b[0]), neg(mul(a[1], b[5])), mul(a[5], b[1]),
		neg(mul(a[2], b[6])), mul(a[6], b[2]), neg(mul(a[3], b[7])), mul(a[7], b[3]))

	c5 := sum(mul(a[0], b[5]), mul(a[5], b[0]), mul(a[1], b[4]), neg(mul(a[4], b[1])),
		neg(mul(a[2], b[7])), mul(a[7], b[2]), mul(a[3], b[6]), neg(mul(a[6], b[3])))

	c6 := sum(mul(a[0], b[6]), mul(a[6], b[0]), mul(a[1], b[7]), neg(mul(a[7], b[1])),
		mul(a[2], b[4]), neg(mul(a[4], b[2])), neg(mul(a[3], b[5])), mul(a[5], b[3]))

	c7 := sum(mul(a[0], b[7]), mul(a[7], b[0]), neg(mul(a[1], b[6])), mul(a[6], b[1]),
		mul(a[2], b[5]), neg(mul(a[5], b[2])), mul(a[3], b[4]), neg(mul(a[4], b[3])))

	return Octonion{q: q, coord: [8]*big.Int{c0, c1, c2, c3, c4, c5, c6, c7}}
}

// String produces a string representation of o.
func (o Octonion) String() string {
	s := ""
	for _, c := range o.coord {
		s += " " + c.String()
	}
	return s
}
