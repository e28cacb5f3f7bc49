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

// Package grammar implements an in-memory straight-line grammar (SLG):
// dense rule storage, dependency renumbering, whole-text reproduction, and
// a decoder for the on-disk tuple format (§4.2).
package grammar

// Symbol is a grammar right-hand-side entry. Values in [0,256) are
// terminals (raw byte values); values >= 256 are nonterminals, where symbol
// s refers to rule ID s-256.
type Symbol uint32

// terminalBound is the first symbol value that denotes a nonterminal.
const terminalBound = 256

// IsTerminal reports whether s encodes a raw byte value.
func IsTerminal(s Symbol) bool { return s < terminalBound }

// IsNonTerminal reports whether s references a rule.
func IsNonTerminal(s Symbol) bool { return s >= terminalBound }

// RuleID returns the rule ID a nonterminal symbol refers to. The caller
// must ensure IsNonTerminal(s).
func RuleID(s Symbol) uint32 { return uint32(s) - terminalBound }

// SymbolForRule returns the symbol referring to rule id.
func SymbolForRule(id uint32) Symbol { return Symbol(id) + terminalBound }

// SymbolForTerminal returns the symbol for a raw byte value.
func SymbolForTerminal(b byte) Symbol { return Symbol(b) }

// Terminal returns the byte value of a terminal symbol. The caller must
// ensure IsTerminal(s).
func Terminal(s Symbol) byte { return byte(s) }
