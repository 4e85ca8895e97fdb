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

package sample_test

import (
	"math/big"
	"testing"

	"github.com/hamadakafu/octonion/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformDetInRange(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	sampler := sample.NewUniformDet(big.NewInt(4), &key)
	for i := 0; i < 100; i++ {
		val, err := sampler.Sample()
		require.NoError(t, err)
		assert.True(t, val.Sign() >= 0 && val.Cmp(big.NewInt(4)) < 0)
	}
}

func TestUniformDetIsReproducibleFromSameKey(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i * 7)
	}

	s1 := sample.NewUniformDet(big.NewInt(1000), &key)
	s2 := sample.NewUniformDet(big.NewInt(1000), &key)

	for i := 0; i < 10; i++ {
		v1, err := s1.Sample()
		require.NoError(t, err)
		v2, err := s2.Sample()
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
	}
}
