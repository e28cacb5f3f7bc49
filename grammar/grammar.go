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

// Grammar is an ordered collection of rules, one of which (StartRuleID) is
// the start rule whose expansion equals T. A freshly decoded Grammar is not
// necessarily dependency-renumbered; callers that need rule i to reference
// only rules with ID < i (the invariant the accessors rely on) must call
// Renumber first. The queries on this type (ExpansionLengths, Depth,
// Reproduce) work on either form: they walk the derivation DAG explicitly
// rather than assuming a particular numbering.
type Grammar struct {
	rules       []*Rule
	startRuleID uint32
}

// New builds a Grammar from a slice of rules and a start rule ID, validating
// that every nonterminal reference lands inside [0, len(rules)).
func New(rules []*Rule, startRuleID uint32) (*Grammar, error) {
	if len(rules) == 0 {
		return &Grammar{}, nil
	}
	if int(startRuleID) >= len(rules) {
		return nil, xerrors.Wrapf(xerrors.ErrFormat, "start rule %d out of range [0,%d)", startRuleID, len(rules))
	}
	g := &Grammar{rules: rules, startRuleID: startRuleID}
	for id, r := range rules {
		for i := 0; i < r.Len(); i++ {
			s := r.Symbol(i)
			if IsNonTerminal(s) && int(RuleID(s)) >= len(rules) {
				return nil, xerrors.Wrapf(xerrors.ErrFormat,
					"rule %d references non-existent rule %d", id, RuleID(s))
			}
		}
	}
	return g, nil
}

// RuleCount returns the number of rules, R.
func (g *Grammar) RuleCount() int { return len(g.rules) }

// StartRuleID returns the ID of the start rule.
func (g *Grammar) StartRuleID() uint32 { return g.startRuleID }

// Rule returns the rule with the given ID.
func (g *Grammar) Rule(id uint32) *Rule { return g.rules[id] }

// GrammarSize returns sum of |rhs| over all rules.
func (g *Grammar) GrammarSize() int {
	n := 0
	for _, r := range g.rules {
		n += r.Len()
	}
	return n
}

// dagState tracks the three-color DFS state used to detect cycles while
// walking the derivation DAG with an explicit stack.
type dagState = uint8

const (
	white dagState = iota // unvisited
	gray                  // on the current stack path
	black                 // fully processed
)

type frame struct {
	id     uint32
	cursor int
}

// walkPostOrder visits every rule reachable from start exactly once, in
// post-order (a rule is visited only after all rules it references have
// been visited), using an explicit stack of (rule, cursor) frames rather
// than host-stack recursion, per §4.2/§9. It returns a cycle error if the
// derivation graph is not acyclic.
func (g *Grammar) walkPostOrder(start uint32, visit func(id uint32)) error {
	if len(g.rules) == 0 {
		return nil
	}
	state := make([]dagState, len(g.rules))
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{id: start})
	state[start] = gray

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		r := g.rules[top.id]
		if top.cursor >= r.Len() {
			state[top.id] = black
			visit(top.id)
			stack = stack[:len(stack)-1]
			continue
		}
		s := r.Symbol(top.cursor)
		top.cursor++
		if IsNonTerminal(s) {
			cid := RuleID(s)
			switch state[cid] {
			case white:
				state[cid] = gray
				stack = append(stack, frame{id: cid})
			case gray:
				return xerrors.Wrapf(xerrors.ErrLogical, "grammar: cycle detected at rule %d", cid)
			case black:
				// already fully processed; nothing to do
			}
		}
	}
	return nil
}

// ExpansionLengths computes, for every rule reachable from the start rule,
// the length of the text it expands to. Unreachable rules are left at 0.
func (g *Grammar) ExpansionLengths() ([]uint64, error) {
	lens := make([]uint64, len(g.rules))
	if len(g.rules) == 0 {
		return lens, nil
	}
	err := g.walkPostOrder(g.startRuleID, func(id uint32) {
		r := g.rules[id]
		var total uint64
		for i := 0; i < r.Len(); i++ {
			s := r.Symbol(i)
			if IsTerminal(s) {
				total++
			} else {
				total += lens[RuleID(s)]
			}
		}
		lens[id] = total
	})
	return lens, err
}

// SourceLength returns the length of T, the expansion of the start rule.
func (g *Grammar) SourceLength() (uint64, error) {
	if len(g.rules) == 0 {
		return 0, nil
	}
	lens, err := g.ExpansionLengths()
	if err != nil {
		return 0, err
	}
	return lens[g.startRuleID], nil
}

// Depth returns the longest root-to-leaf path, in symbols, of the
// derivation DAG rooted at the start rule. A cycle (which should never
// survive grammar construction) makes this return 0; callers that need to
// detect cycles should use ExpansionLengths or Renumber, which report it.
func (g *Grammar) Depth() int {
	if len(g.rules) == 0 {
		return 0
	}
	depth := make([]int, len(g.rules))
	_ = g.walkPostOrder(g.startRuleID, func(id uint32) {
		r := g.rules[id]
		best := 0
		for i := 0; i < r.Len(); i++ {
			s := r.Symbol(i)
			if IsTerminal(s) {
				if best < 1 {
					best = 1
				}
			} else if d := depth[RuleID(s)] + 1; d > best {
				best = d
			}
		}
		depth[id] = best
	})
	return depth[g.startRuleID]
}
