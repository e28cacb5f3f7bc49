/*
 * Copyright 2024 The ra Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package grammar

import "github.com/textindex/ra/packed"

// Rule is one right-hand side, packed at the bit width needed for the
// largest symbol it contains.
type Rule struct {
	syms *packed.Array
}

// NewRule builds a Rule from a plain slice of symbols.
func NewRule(syms []Symbol) *Rule {
	var max uint64
	for _, s := range syms {
		if uint64(s) > max {
			max = uint64(s)
		}
	}
	width := packed.BitsFor(max)
	arr := packed.New(len(syms), width)
	for i, s := range syms {
		arr.Set(i, uint64(s))
	}
	return &Rule{syms: arr}
}

// Len returns the number of symbols in the right-hand side.
func (r *Rule) Len() int { return r.syms.Len() }

// Symbol returns the i-th symbol of the right-hand side.
func (r *Rule) Symbol(i int) Symbol { return Symbol(r.syms.Get(i)) }

// Symbols materializes the rule's right-hand side as a plain slice.
func (r *Rule) Symbols() []Symbol {
	out := make([]Symbol, r.syms.Len())
	for i := range out {
		out[i] = Symbol(r.syms.Get(i))
	}
	return out
}
