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

package cmd

import (
	"github.com/textindex/ra/lzend"
	"github.com/textindex/ra/slg"
)

// accessor is the common surface both variants expose, enough to serve
// at/substr/stat without the command layer caring which one backs it.
type accessor interface {
	SourceLength() uint64
	At(i uint64) (byte, error)
	Substr(buf []byte, i, l uint64) ([]byte, error)
}

func openAccessor(path string) (accessor, error) {
	switch variant {
	case "lzend":
		return lzend.FromFile(path)
	default:
		var opts []slg.Option
		if delta > 0 {
			opts = append(opts, slg.WithDelta(delta))
		}
		return slg.FromFile(path, opts...)
	}
}

func componentCount(a accessor) (label string, count int) {
	switch v := a.(type) {
	case *lzend.Accessor:
		return "phrases", v.PhraseCount()
	case *slg.Accessor:
		return "rules", v.RuleCount()
	default:
		return "", 0
	}
}
