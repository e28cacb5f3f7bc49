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

import (
	"io"

	"github.com/textindex/ra/internal/xerrors"
)

// Reproduce writes the grammar's expansion (T) to w, via an iterative
// post-order walk of the start rule's derivation. Unlike ExpansionLengths,
// this walk emits output on every occurrence of a rule, not once per rule,
// so it cannot be deduplicated by rule ID; the explicit stack instead
// tracks a (rule, cursor) frame per occurrence on the current derivation
// path, bounded by Depth(), never by the host call stack, per §4.2/§9.
func (g *Grammar) Reproduce(w io.Writer) error {
	if len(g.rules) == 0 {
		return nil
	}
	stack := make([]frame, 0, g.Depth()+1)
	stack = append(stack, frame{id: g.startRuleID})

	// Buffer terminal runs before writing so a long run of leaves doesn't
	// turn into one Write call per byte.
	buf := make([]byte, 0, 4096)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		_, err := w.Write(buf)
		buf = buf[:0]
		return xerrors.Wrapf(err, "grammar: write expansion")
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		r := g.rules[top.id]
		if top.cursor >= r.Len() {
			stack = stack[:len(stack)-1]
			continue
		}
		s := r.Symbol(top.cursor)
		top.cursor++
		if IsTerminal(s) {
			buf = append(buf, Terminal(s))
			if len(buf) == cap(buf) {
				if err := flush(); err != nil {
					return err
				}
			}
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		stack = append(stack, frame{id: RuleID(s)})
	}
	return flush()
}
