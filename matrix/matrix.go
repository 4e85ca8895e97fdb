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

// Package matrix implements the fixed 8x8 F_q matrix algebra that backs a
// octoenc CipherText: entrywise add, matrix product (function composition),
// and the matrix-vector action Decrypt uses to apply a ciphertext to an
// octonion's coordinates. Every entry is canonicalized into [0, q) after each
// operation.
package matrix

import (
	"fmt"
	"math/big"

	"github.com/hamadakafu/octonion/field"
)

// Dim is the fixed matrix dimension the octonion scheme operates on: one
// row/column per octonion coordinate.
const Dim = 8

// Matrix8 is a Dim x Dim matrix over F_q, stored row-major.
type Matrix8 struct {
	q       *big.Int
	entries [Dim][Dim]*big.Int
}

// New builds a Matrix8 from a row-major 8x8 slice of entries, each
// canonicalized into [0, q). It returns an error if entries is not exactly
// Dim x Dim.
func New(q *big.Int, entries [][]*big.Int) (Matrix8, error) {
	if len(entries) != Dim {
		return Matrix8{}, fmt.Errorf("matrix: expected %d rows, got %d", Dim, len(entries))
	}
	m := Matrix8{q: q}
	for i, row := range entries {
		if len(row) != Dim {
			return Matrix8{}, fmt.Errorf("matrix: expected %d columns, got %d in row %d", Dim, len(row), i)
		}
		for j, e := range row {
			m.entries[i][j] = field.Canon(e, q)
		}
	}
	return m, nil
}

// Zero returns the Dim x Dim zero matrix over F_q.
func Zero(q *big.Int) Matrix8 {
	var m Matrix8
	m.q = q
	zero := big.NewInt(0)
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			m.entries[i][j] = new(big.Int).Set(zero)
		}
	}
	return m
}

// At returns the entry at (row, col). It returns an error if either index
// is out of range.
func (m Matrix8) At(row, col int) (*big.Int, error) {
	if row < 0 || row >= Dim || col < 0 || col >= Dim {
		return nil, fmt.Errorf("matrix: index (%d,%d) out of range", row, col)
	}
	return new(big.Int).Set(m.entries[row][col]), nil
}

// Set returns a copy of m with entry (row, col) set to v.
func (m Matrix8) Set(row, col int, v *big.Int) (Matrix8, error) {
	if row < 0 || row >= Dim || col < 0 || col >= Dim {
		return Matrix8{}, fmt.Errorf("matrix: index (%d,%d) out of range", row, col)
	}
	out := m.Copy()
	out.entries[row][col] = field.Canon(v, m.q)
	return out, nil
}

// Copy returns a deep copy of m.
func (m Matrix8) Copy() Matrix8 {
	out := Matrix8{q: m.q}
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			out.entries[i][j] = new(big.Int).Set(m.entries[i][j])
		}
	}
	return out
}

func (m Matrix8) dimsMatch(other Matrix8) bool {
	return m.q.Cmp(other.q) == 0
}

// Add returns the matrix whose action on x is m.Apply(x) + other.Apply(x):
// the entrywise sum of m and other, mod q.
func (m Matrix8) Add(other Matrix8) (Matrix8, error) {
	if !m.dimsMatch(other) {
		return Matrix8{}, fmt.Errorf("matrix: operands belong to different moduli")
	}
	out := Matrix8{q: m.q}
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			out.entries[i][j] = field.Canon(new(big.Int).Add(m.entries[i][j], other.entries[i][j]), m.q)
		}
	}
	return out, nil
}

// Mul returns the matrix whose action on x is m.Apply(other.Apply(x)):
// the matrix product m * other, mod q.
func (m Matrix8) Mul(other Matrix8) (Matrix8, error) {
	if !m.dimsMatch(other) {
		return Matrix8{}, fmt.Errorf("matrix: operands belong to different moduli")
	}
	out := Matrix8{q: m.q}
	for i := 0; i < Dim; i++ {
		for k := 0; k < Dim; k++ {
			sum := big.NewInt(0)
			for j := 0; j < Dim; j++ {
				sum.Add(sum, new(big.Int).Mul(m.entries[i][j], other.entries[j][k]))
			}
			out.entries[i][k] = field.Canon(sum, m.q)
		}
	}
	return out, nil
}

// Apply computes m * x for an 8-element column vector x, i.e.
// (m*x)_i = sum_j m[i][j] * x[j] mod q.
func (m Matrix8) Apply(x [Dim]*big.Int) [Dim]*big.Int {
	var out [Dim]*big.Int
	for i := 0; i < Dim; i++ {
		sum := big.NewInt(0)
		for j := 0; j < Dim; j++ {
			sum.Add(sum, new(big.Int).Mul(m.entries[i][j], x[j]))
		}
		out[i] = field.Canon(sum, m.q)
	}
	return out
}
