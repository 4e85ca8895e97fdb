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

// Package ghfind implements the rejection sampler that produces the
// distinguished octonion pair (G, H) the octonion scheme is built on: both
// isotropic, G0 = 1/2, H0 = 0, and G*H + H*G = 0 on the zero coordinate.
// The loop has no a-priori termination bound, so it is exposed with a
// caller-controllable iteration cap (ErrParameterSearchExhausted on
// exhaustion).
package ghfind

import (
	"io"
	"math/big"

	"github.com/hamadakafu/octonion/field"
	"github.com/hamadakafu/octonion/internal"
	"github.com/hamadakafu/octonion/octonion"
	"github.com/hamadakafu/octonion/sample"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultMaxIterations bounds the rejection sampler when Options.MaxIterations
// is left at zero.
const DefaultMaxIterations = 1_000_000

// Options configures Find.
type Options struct {
	// MaxIterations caps the number of rejection-sampling rounds. Zero
	// means DefaultMaxIterations.
	MaxIterations int
	// Logger receives debug-level lines on every resample, naming the
	// rejection cause. Nil means a no-op logger (writes to io.Discard):
	// silence unless a caller opts in.
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// Find runs the rejection sampler and returns a (G, H) pair satisfying the
// scheme's algebraic contract. It returns internal.ErrParameterSearchExhausted
// if Options.MaxIterations rounds pass without success.
func Find(q *big.Int, sampler sample.Sampler, opts Options) (g, h octonion.Octonion, err error) {
	opts = opts.withDefaults()
	log := discardLogger()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	two := big.NewInt(2)
	g0, err := field.Inverse(two, q)
	if err != nil {
		return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: cannot invert 2 mod q")
	}
	zero := big.NewInt(0)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		g1, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling G1")
		}
		g2, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling G2")
		}
		g3, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling G3")
		}
		g4, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling G4")
		}
		g5, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling G5")
		}
		g6, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling G6")
		}
		h1, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling H1")
		}
		h2, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling H2")
		}
		h3, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling H3")
		}
		h4, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling H4")
		}
		h5, err := sampler.Sample()
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sampling H5")
		}

		gComponents := []*big.Int{g0, g1, g2, g3, g4, g5, g6}
		sG := big.NewInt(0)
		for _, c := range gComponents {
			sG.Add(sG, new(big.Int).Mul(c, c))
		}
		g7g7 := field.Canon(new(big.Int).Neg(field.Canon(sG, q)), q)

		if !field.IsResidue(g7g7, q) {
			log.Debug().Int("iter", iter).Msg("resample: g7g7 not a residue")
			continue
		}

		hSqSum := big.NewInt(0)
		for _, c := range []*big.Int{h1, h2, h3, h4, h5} {
			hSqSum.Add(hSqSum, new(big.Int).Mul(c, c))
		}
		b := field.Canon(new(big.Int).Neg(hSqSum), q)

		c := g6
		gDotH := big.NewInt(0)
		for idx, gi := range []*big.Int{g1, g2, g3, g4, g5} {
			gDotH.Add(gDotH, new(big.Int).Mul(gi, []*big.Int{h1, h2, h3, h4, h5}[idx]))
		}
		d := field.Canon(new(big.Int).Neg(gDotH), q)

		e2 := g7g7
		c2 := field.Canon(new(big.Int).Mul(c, c), q)

		d2 := new(big.Int).Mul(d, d)
		lhs := new(big.Int).Mul(d2, e2)
		e2PlusC2 := field.Canon(new(big.Int).Add(e2, c2), q)
		rhs := new(big.Int).Mul(e2PlusC2, field.Canon(new(big.Int).Sub(d2, new(big.Int).Mul(b, c2)), q))
		delta := field.Canon(new(big.Int).Sub(lhs, rhs), q)

		if !field.IsResidue(delta, q) {
			log.Debug().Int("iter", iter).Msg("resample: delta not a residue")
			continue
		}

		if e2PlusC2.Sign() == 0 {
			log.Debug().Int("iter", iter).Msg("resample: E^2+C^2 = 0, division by zero")
			continue
		}

		if c.Sign() == 0 {
			log.Debug().Int("iter", iter).Msg("resample: C = G6 = 0, cannot invert for H6")
			continue
		}

		g7, err := field.SqrtMod(g7g7, q)
		if err != nil {
			if errors.Is(err, internal.ErrNonResidue) {
				log.Debug().Int("iter", iter).Msg("resample: sqrt_mod(g7g7) failed")
				continue
			}
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sqrt_mod(g7g7)")
		}

		sqrtDelta, err := field.SqrtMod(delta, q)
		if err != nil {
			if errors.Is(err, internal.ErrNonResidue) {
				log.Debug().Int("iter", iter).Msg("resample: sqrt_mod(delta) failed")
				continue
			}
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: sqrt_mod(delta)")
		}

		inv, err := field.Inverse(e2PlusC2, q)
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: inverting E^2+C^2")
		}
		cInv, err := field.Inverse(c, q)
		if err != nil {
			return octonion.Octonion{}, octonion.Octonion{}, errors.Wrap(err, "ghfind: inverting C")
		}

		de := new(big.Int).Mul(d, g7)
		h7 := field.Canon(new(big.Int).Mul(inv, new(big.Int).Add(de, sqrtDelta)), q)
		h6 := field.Canon(new(big.Int).Mul(field.Canon(new(big.Int).Sub(d, new(big.Int).Mul(h7, g7)), q), cInv), q)

		gOct := octonion.New(q, g0, g1, g2, g3, g4, g5, g6, g7)
		hOct := octonion.New(q, zero, h1, h2, h3, h4, h5, h6, h7)

		return gOct, hOct, nil
	}

	return octonion.Octonion{}, octonion.Octonion{}, internal.ErrParameterSearchExhausted
}
