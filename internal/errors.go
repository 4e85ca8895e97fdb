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

package internal

import "errors"

// ErrNonInvertibleOctonion is returned when an octonion's norm is zero and
// no multiplicative inverse exists.
var ErrNonInvertibleOctonion = errors.New("octonion has zero norm, no inverse exists")

// ErrNonResidue is returned by SqrtMod when its input is not a quadratic
// residue modulo p. Callers in ghfind treat it as "resample".
var ErrNonResidue = errors.New("value is not a quadratic residue modulo p")

// ErrParameterSearchExhausted is returned once a rejection sampler (GH-finder,
// the per-A_i invertibility search in keygen) exceeds its caller-specified
// iteration cap.
var ErrParameterSearchExhausted = errors.New("parameter search exceeded iteration cap")

// ErrSchemaMismatch is returned when operands (ciphertexts, keys) that were
// produced under different Schema instances are mixed.
var ErrSchemaMismatch = errors.New("operands belong to different schema moduli")
