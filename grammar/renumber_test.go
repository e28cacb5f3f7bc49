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

package grammar_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/textindex/ra/grammar"
)

// buildReversedABCABC builds the same language as buildABCABC but numbered
// backwards (start rule first, leaves last) so Renumber has real work to do.
func buildReversedABCABC(t *testing.T) *grammar.Grammar {
	t.Helper()
	r2 := grammar.NewRule([]grammar.Symbol{ // id 0, was id 2
		grammar.SymbolForRule(1),
		grammar.SymbolForRule(1),
	})
	r1 := grammar.NewRule([]grammar.Symbol{ // id 1, was id 1
		grammar.SymbolForRule(2),
		grammar.SymbolForTerminal('c'),
	})
	r0 := grammar.NewRule([]grammar.Symbol{ // id 2, was id 0
		grammar.SymbolForTerminal('a'),
		grammar.SymbolForTerminal('b'),
	})
	g, err := grammar.New([]*grammar.Rule{r2, r1, r0}, 0)
	require.NoError(t, err)
	return g
}

func TestRenumberPreservesExpansion(t *testing.T) {
	g := buildReversedABCABC(t)
	require.False(t, g.Renumbered())

	renumbered, err := g.Renumber()
	require.NoError(t, err)
	require.True(t, renumbered.Renumbered())

	var buf bytes.Buffer
	require.NoError(t, renumbered.Reproduce(&buf))
	require.Equal(t, "abcabc", buf.String())
}

func TestRenumberIdempotent(t *testing.T) {
	// §8 property 6: renumbering an already-renumbered grammar is a no-op
	// up to relabeling, i.e. applying it again leaves Renumbered() true and
	// the expansion unchanged.
	g := buildReversedABCABC(t)
	once, err := g.Renumber()
	require.NoError(t, err)

	twice, err := once.Renumber()
	require.NoError(t, err)
	require.True(t, twice.Renumbered())

	var a, b bytes.Buffer
	require.NoError(t, once.Reproduce(&a))
	require.NoError(t, twice.Reproduce(&b))
	require.Equal(t, a.String(), b.String())
}

func TestRenumberRejectsUnreachableRule(t *testing.T) {
	orphan := grammar.NewRule([]grammar.Symbol{grammar.SymbolForTerminal('z')})
	start := grammar.NewRule([]grammar.Symbol{grammar.SymbolForTerminal('a')})
	g, err := grammar.New([]*grammar.Rule{orphan, start}, 1)
	require.NoError(t, err)

	_, err = g.Renumber()
	require.Error(t, err)
}

func TestRenumberEmptyGrammar(t *testing.T) {
	g, err := grammar.New(nil, 0)
	require.NoError(t, err)
	renumbered, err := g.Renumber()
	require.NoError(t, err)
	require.Equal(t, 0, renumbered.RuleCount())
}
