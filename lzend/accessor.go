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

package lzend

import (
	"bytes"

	"github.com/textindex/ra/internal/xerrors"
	"github.com/textindex/ra/internal/xlog"
	"github.com/textindex/ra/raio"
)

// Accessor answers at/substr queries over an LZ-End index.
type Accessor struct {
	idx *Index
	log xlog.Logger
}

// Build constructs an Accessor from an already-decoded parse.
func Build(phrases []Phrase, opts ...Option) (*Accessor, error) {
	cfg := buildOptions(opts)
	for p, ph := range phrases {
		if ph.Len == 1 && ph.Link != 0 {
			cfg.log.Warningf("lzend: phrase %d has len=1 with a stored link %d; link is ignored for single-character phrases", p, ph.Link)
		}
	}
	idx, err := NewIndex(phrases)
	if err != nil {
		return nil, err
	}
	cfg.log.Infof("lzend: built index over %d phrase(s), source length %d", idx.PhraseCount(), idx.SourceLength())
	return &Accessor{idx: idx, log: cfg.log}, nil
}

// FromFile loads a parse file from disk and builds an Accessor over it.
func FromFile(path string, opts ...Option) (*Accessor, error) {
	src, err := raio.OpenFile(path)
	if err != nil {
		return nil, xerrors.Wrapf(err, "lzend: open %s", path)
	}
	defer src.Close()
	data, err := src.Bytes()
	if err != nil {
		return nil, xerrors.Wrapf(err, "lzend: read %s", path)
	}
	phrases, err := DecodeParse(bytes.NewReader(data))
	if err != nil {
		return nil, xerrors.Wrapf(err, "lzend: decode %s", path)
	}
	return Build(phrases, opts...)
}

// SourceLength returns |T|.
func (a *Accessor) SourceLength() uint64 { return a.idx.SourceLength() }

// PhraseCount returns the number of phrases in the parse.
func (a *Accessor) PhraseCount() int { return a.idx.PhraseCount() }

// At returns T[i]. i must be in [0, SourceLength()). Termination is
// guaranteed because every source jump strictly decreases i (the source
// of a phrase always lies left of the phrase itself).
func (a *Accessor) At(i uint64) (byte, error) {
	if i >= a.idx.n {
		return 0, xerrors.Wrapf(xerrors.ErrLogical, "lzend: index %d out of range [0,%d)", i, a.idx.n)
	}
	for {
		p := a.idx.phraseContaining(i)
		if a.idx.b.Get(uint32(i)) {
			return a.idx.l[p], nil
		}
		src := a.idx.sourceStart(p)
		i = src + (i - a.idx.phraseStart(p))
	}
}

// substrRange is a pending [i, end) span of text still to resolve. Substr
// keeps a stack of these instead of recursing so that a back-reference
// chain of depth(parse) levels (not guaranteed O(log n) per §4.4) is
// bounded by that stack's size, never by the host call stack, per §4.4/§9.
type substrRange struct {
	i, end uint64
}

// Substr appends T[i..i+l) to buf and returns the extended buffer, l
// clamped so i+l <= SourceLength(). l == 0 is a no-op regardless of i.
//
// Rather than resolving each character through At independently, it walks
// whole phrases at a time: every position in a pending span that isn't a
// phrase's final (literal) character maps, together with its
// phrase-mates, to one contiguous run in an earlier phrase's source, so
// the whole run is pushed as a single new span instead of resolved one At
// call per character. Termination follows At's: every pushed span's
// source lies strictly left of the span it was derived from.
func (a *Accessor) Substr(buf []byte, i, l uint64) ([]byte, error) {
	if l == 0 {
		return buf, nil
	}
	n := a.idx.n
	if i >= n {
		return buf, xerrors.Wrapf(xerrors.ErrLogical, "lzend: index %d out of range [0,%d)", i, n)
	}
	if i+l > n {
		l = n - i
	}

	stack := make([]substrRange, 0, 64)
	stack = append(stack, substrRange{i: i, end: i + l})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i >= top.end {
			stack = stack[:len(stack)-1]
			continue
		}
		p := a.idx.phraseContaining(top.i)
		pEnd := a.idx.phraseEnd(p)
		if top.i == pEnd {
			buf = append(buf, a.idx.l[p])
			top.i++
			continue
		}
		// pEnd itself is the phrase's literal character, handled above;
		// the non-literal run stops one position short of it.
		runEnd := pEnd - 1
		if top.end-1 < runEnd {
			runEnd = top.end - 1
		}
		run := runEnd - top.i + 1
		src := a.idx.sourceStart(p) + (top.i - a.idx.phraseStart(p))
		top.i += run
		stack = append(stack, substrRange{i: src, end: src + run})
	}
	return buf, nil
}
