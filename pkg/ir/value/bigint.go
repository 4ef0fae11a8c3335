// Copyright 2026 The Amaranth-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package value

import (
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

var (
	bigOne  = big.NewInt(1)
	bigZero = big.NewInt(0)
)

// truncate reduces v into the range representable by s, per two's-complement
// truncation: the low s.Width bits are kept, then reinterpreted as signed or
// unsigned according to s.Signed.
func truncate(v *big.Int, s shape.Shape) *big.Int {
	if s.Width == 0 {
		return new(big.Int)
	}

	mask := new(big.Int).Sub(new(big.Int).Lsh(bigOne, uint(s.Width)), bigOne)
	r := new(big.Int).And(v, mask)

	if s.Signed {
		// If the top bit is set, the value is negative in two's complement.
		signBit := new(big.Int).Lsh(bigOne, uint(s.Width-1))
		if r.Cmp(signBit) >= 0 {
			full := new(big.Int).Lsh(bigOne, uint(s.Width))
			r.Sub(r, full)
		}
	}

	return r
}

// bitLen returns the minimal two's-complement width needed to hold v under
// the given signedness, without actually truncating it.
func bitLen(v *big.Int, signed bool) uint32 {
	if !signed {
		if v.Sign() <= 0 {
			return 0
		}

		return uint32(v.BitLen())
	}

	if v.Sign() >= 0 {
		// Smallest w such that (1 << (w-1)) > v.
		w := uint32(1)
		limit := new(big.Int)

		for {
			limit.Lsh(bigOne, uint(w-1))
			if limit.Cmp(v) > 0 {
				return w
			}

			w++
		}
	}
	// Negative: smallest w such that -(1 << (w-1)) <= v.
	w := uint32(1)
	limit := new(big.Int)

	for {
		limit.Lsh(bigOne, uint(w-1))
		limit.Neg(limit)

		if limit.Cmp(v) <= 0 {
			return w
		}

		w++
	}
}
