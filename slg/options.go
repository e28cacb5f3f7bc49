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

package slg

import "github.com/textindex/ra/internal/xlog"

// Sampling density presets from §9 ("Sampling density Δ"). Smaller deltas
// trade space for speed.
const (
	Delta512   = 512
	Delta6400  = 6400
	Delta25600 = 25600
)

// Options configures an Accessor at construction time.
type Options struct {
	delta uint64
	log   xlog.Logger
}

// Option mutates Options; follows the same functional-options shape as the
// rest of this module's construction surfaces.
type Option func(*Options)

// WithDelta sets the sample spacing, in text positions. Defaults to
// Delta512.
func WithDelta(delta uint64) Option {
	return func(o *Options) { o.delta = delta }
}

// WithLogger overrides the default logger.
func WithLogger(l xlog.Logger) Option {
	return func(o *Options) { o.log = l }
}

func defaultOptions() Options {
	return Options{delta: Delta512, log: xlog.Default()}
}

func buildOptions(opts []Option) Options {
	cfg := defaultOptions()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
