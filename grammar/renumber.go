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

import "github.com/textindex/ra/internal/xerrors"

// Renumber returns a dependency-renumbered equivalent of g: a grammar where
// rule i only references rules with ID < i, and the start rule has the
// largest ID. New IDs are assigned in the order rules finish in an
// iterative post-order DFS from the start rule (a rule can only finish
// after everything it references has finished, so this order is already a
// valid topological order; since the DFS has one root, that root finishes
// last and lands on the maximum new ID without any special-casing).
//
// Every rule must be reachable from the start rule; an unreferenced rule
// is a format violation this module doesn't try to route around silently.
func (g *Grammar) Renumber() (*Grammar, error) {
	if len(g.rules) == 0 {
		return &Grammar{}, nil
	}

	order := make([]uint32, 0, len(g.rules))
	if err := g.walkPostOrder(g.startRuleID, func(id uint32) {
		order = append(order, id)
	}); err != nil {
		return nil, err
	}
	if len(order) != len(g.rules) {
		return nil, xerrors.Wrapf(xerrors.ErrFormat,
			"grammar: %d rule(s) unreachable from the start rule", len(g.rules)-len(order))
	}

	newID := make([]uint32, len(g.rules))
	for i, old := range order {
		newID[old] = uint32(i)
	}

	newRules := make([]*Rule, len(g.rules))
	for old, r := range g.rules {
		syms := make([]Symbol, r.Len())
		for i := 0; i < r.Len(); i++ {
			s := r.Symbol(i)
			if IsNonTerminal(s) {
				syms[i] = SymbolForRule(newID[RuleID(s)])
			} else {
				syms[i] = s
			}
		}
		newRules[newID[old]] = NewRule(syms)
	}

	return &Grammar{rules: newRules, startRuleID: uint32(len(g.rules) - 1)}, nil
}

// Renumbered reports whether g already satisfies the dependency-renumbered
// invariant (every rule only references rules with smaller ID, and the
// start rule has the maximum ID). Used by tests to check Renumber's
// idempotence (§8 property 6) and by accessors that accept either a raw or
// pre-renumbered Grammar.
func (g *Grammar) Renumbered() bool {
	if len(g.rules) == 0 {
		return true
	}
	if int(g.startRuleID) != len(g.rules)-1 {
		return false
	}
	for id, r := range g.rules {
		for i := 0; i < r.Len(); i++ {
			s := r.Symbol(i)
			if IsNonTerminal(s) && int(RuleID(s)) >= id {
				return false
			}
		}
	}
	return true
}
