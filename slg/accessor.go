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

// Package slg implements the sampled-scan accessor from §4.3: random
// access and substring extraction over a straight-line grammar, guided by
// a sparse table of (text position, derivation stack) samples taken every
// Δ characters so queries can resume a partial depth-first walk instead of
// redescending from the start rule every time.
package slg

import (
	"io"
	"sort"

	"github.com/textindex/ra/grammar"
	"github.com/textindex/ra/internal/xerrors"
	"github.com/textindex/ra/internal/xlog"
	"github.com/textindex/ra/raio"
)

// frame is one level of a paused derivation walk: rule ruleID is being
// expanded, its symbol at index cursor begins at text offset offset, and
// every symbol before cursor has already been fully accounted for.
type frame struct {
	ruleID uint32
	offset uint64
	cursor int
}

func cloneStack(s []frame) []frame {
	out := make([]frame, len(s))
	copy(out, s)
	return out
}

type sample struct {
	pos   uint64
	stack []frame
}

// Accessor answers at/substr queries over a dependency-renumbered grammar.
type Accessor struct {
	g            *grammar.Grammar
	n            uint64
	expansionLen []uint64
	delta        uint64
	log          xlog.Logger
	samples      []sample
}

// Build constructs an Accessor over g, which must already be
// dependency-renumbered (see grammar.Grammar.Renumber).
func Build(g *grammar.Grammar, opts ...Option) (*Accessor, error) {
	if g.RuleCount() > 0 && !g.Renumbered() {
		return nil, xerrors.Wrapf(xerrors.ErrLogical, "slg: grammar must be dependency-renumbered")
	}
	cfg := buildOptions(opts)

	expansionLen, err := g.ExpansionLengths()
	if err != nil {
		return nil, err
	}

	a := &Accessor{g: g, expansionLen: expansionLen, delta: cfg.delta, log: cfg.log}
	if g.RuleCount() == 0 {
		return a, nil
	}
	a.n = expansionLen[g.StartRuleID()]

	root := []frame{{ruleID: g.StartRuleID()}}
	for t := uint64(0); t < a.n; t += a.delta {
		stack, _, err := a.locate(cloneStack(root), t)
		if err != nil {
			return nil, err
		}
		a.samples = append(a.samples, sample{pos: t, stack: stack})
	}
	a.log.Infof("slg: built %d sample(s) at delta=%d for source length %d", len(a.samples), a.delta, a.n)
	return a, nil
}

// FromFile loads a grammar tuple file from disk and builds an Accessor
// over it.
func FromFile(path string, opts ...Option) (*Accessor, error) {
	src, err := raio.OpenFile(path)
	if err != nil {
		return nil, xerrors.Wrapf(err, "slg: open %s", path)
	}
	defer src.Close()
	data, err := src.Bytes()
	if err != nil {
		return nil, xerrors.Wrapf(err, "slg: read %s", path)
	}
	g, err := grammar.DecodeBytes(data)
	if err != nil {
		return nil, xerrors.Wrapf(err, "slg: decode %s", path)
	}
	if !g.Renumbered() {
		g, err = g.Renumber()
		if err != nil {
			return nil, xerrors.Wrapf(err, "slg: renumber %s", path)
		}
	}
	return Build(g, opts...)
}

// SourceLength returns |T|.
func (a *Accessor) SourceLength() uint64 { return a.n }

// RuleCount returns the number of rules in the underlying grammar.
func (a *Accessor) RuleCount() int { return a.g.RuleCount() }

// locate descends stack (starting from wherever it was last left off)
// until it reaches the symbol covering text position target, skipping
// whole sibling subtrees via their precomputed expansion length rather
// than visiting every symbol inside them. It returns the updated stack
// (left positioned exactly at target, ready for a later call with a
// larger target to resume from) and the character at target.
func (a *Accessor) locate(stack []frame, target uint64) ([]frame, byte, error) {
	for {
		if len(stack) == 0 {
			return nil, 0, xerrors.Wrapf(xerrors.ErrLogical, "slg: position %d not covered by any rule", target)
		}
		top := &stack[len(stack)-1]
		rule := a.g.Rule(top.ruleID)
		if top.cursor >= rule.Len() {
			stack = stack[:len(stack)-1]
			continue
		}
		s := rule.Symbol(top.cursor)
		var childLen uint64
		if grammar.IsTerminal(s) {
			childLen = 1
		} else {
			childLen = a.expansionLen[grammar.RuleID(s)]
		}
		if target < top.offset+childLen {
			if grammar.IsTerminal(s) {
				return stack, grammar.Terminal(s), nil
			}
			stack = append(stack, frame{ruleID: grammar.RuleID(s), offset: top.offset})
			continue
		}
		top.offset += childLen
		top.cursor++
	}
}

func (a *Accessor) sampleFor(i uint64) []frame {
	idx := sort.Search(len(a.samples), func(k int) bool { return a.samples[k].pos > i }) - 1
	return cloneStack(a.samples[idx].stack)
}

// At returns T[i]. i must be in [0, SourceLength()).
func (a *Accessor) At(i uint64) (byte, error) {
	if i >= a.n {
		return 0, xerrors.Wrapf(xerrors.ErrLogical, "slg: index %d out of range [0,%d)", i, a.n)
	}
	_, c, err := a.locate(a.sampleFor(i), i)
	return c, err
}

// Substr appends T[i..i+l) to buf and returns the extended buffer.
// l is clamped so that i+l <= SourceLength(); l == 0 is a no-op regardless
// of i.
func (a *Accessor) Substr(buf []byte, i, l uint64) ([]byte, error) {
	if l == 0 {
		return buf, nil
	}
	if i >= a.n {
		return buf, xerrors.Wrapf(xerrors.ErrLogical, "slg: index %d out of range [0,%d)", i, a.n)
	}
	if i+l > a.n {
		l = a.n - i
	}
	stack := a.sampleFor(i)
	for k := uint64(0); k < l; k++ {
		var c byte
		var err error
		stack, c, err = a.locate(stack, i+k)
		if err != nil {
			return buf, err
		}
		buf = append(buf, c)
	}
	return buf, nil
}

// Reproduce writes the full expansion T to w. Provided for parity with
// grammar.Grammar.Reproduce; for large T prefer Substr in chunks.
func (a *Accessor) Reproduce(w io.Writer) error {
	return a.g.Reproduce(w)
}
