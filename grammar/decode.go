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

	"github.com/textindex/ra/bitio"
	"github.com/textindex/ra/internal/checksum"
	"github.com/textindex/ra/internal/xerrors"
)

// Decode reads the on-disk tuple format (§4.2), the external interface §6
// describes:
//
//	rule_count      (32 bits)
//	min_rule_len    (32 bits)
//	max_rule_len    (32 bits)
//	for each rule:
//	  rule_body_len - min_rule_len   (32 bits)
//	  rule_body_len entries, each:
//	    is_nonterminal (1 bit)
//	    32-bit rule index if set, else an 8-bit character
//
// Encode additionally wraps that stream in a trailing xxhash64 checksum,
// a module-internal container (not part of §4.2) that round-trips through
// this package's own writer; Decode verifies it when present but also
// accepts a bare §4.2 stream with no trailer, since §4.2 files built by
// other tools never carry one. Any input whose last 8 bytes are not a
// matching checksum is decoded as a bare stream; a corrupted file is
// reported only if that decode itself fails.
//
// The start rule is the last rule in the file (ID rule_count-1); every
// on-disk tuple file is expected to already be in dependency order, so
// Decode does not renumber. Callers that can't assume that may still call
// Renumber on the result; Renumber is idempotent (§8 property 6) so doing
// so on an already-renumbered grammar is harmless.
func Decode(r io.Reader) (*Grammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Wrapf(xerrors.ErrIO, "grammar: read tuple stream: %v", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an already-loaded tuple file.
func DecodeBytes(data []byte) (*Grammar, error) {
	if len(data) == 0 {
		return New(nil, 0)
	}
	body, err := checksum.Split(data)
	if err != nil {
		// No valid trailing checksum: treat data as a bare §4.2 stream,
		// the format an external producer is specified to emit.
		body = data
	}
	return decodeFrom(bitio.NewReaderBytes(body))
}

func decodeFrom(br *bitio.Reader) (*Grammar, error) {
	if br.ValidBits() < 96 {
		if br.ValidBits() == 0 {
			return New(nil, 0)
		}
		return nil, xerrors.Wrapf(xerrors.ErrIO, "grammar: truncated header")
	}

	ruleCount := br.ReadUint(32)
	minRuleLen := br.ReadUint(32)
	maxRuleLen := br.ReadUint(32)
	if ruleCount == 0 {
		return New(nil, 0)
	}
	if minRuleLen > maxRuleLen {
		return nil, xerrors.Wrapf(xerrors.ErrFormat,
			"grammar: min_rule_len %d > max_rule_len %d", minRuleLen, maxRuleLen)
	}

	rules := make([]*Rule, ruleCount)
	for i := uint(0); i < ruleCount; i++ {
		if br.Eof() {
			return nil, xerrors.Wrapf(xerrors.ErrIO, "grammar: truncated rule %d", i)
		}
		delta := br.ReadUint(32)
		bodyLen := delta + minRuleLen
		if bodyLen > maxRuleLen {
			return nil, xerrors.Wrapf(xerrors.ErrFormat,
				"grammar: rule %d body length %d exceeds max_rule_len %d", i, bodyLen, maxRuleLen)
		}
		syms := make([]Symbol, bodyLen)
		for j := uint(0); j < bodyLen; j++ {
			if br.Eof() {
				return nil, xerrors.Wrapf(xerrors.ErrIO, "grammar: truncated rule %d entry %d", i, j)
			}
			isNonTerminal := br.ReadBit()
			if isNonTerminal == 1 {
				idx := br.ReadUint(32)
				syms[j] = SymbolForRule(uint32(idx))
			} else {
				ch := br.ReadUint(8)
				syms[j] = SymbolForTerminal(byte(ch))
			}
		}
		rules[i] = NewRule(syms)
	}

	return New(rules, uint32(ruleCount-1))
}
