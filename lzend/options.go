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

import "github.com/textindex/ra/internal/xlog"

// Options configures an Accessor at construction time.
type Options struct {
	log xlog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLogger overrides the default logger.
func WithLogger(l xlog.Logger) Option {
	return func(o *Options) { o.log = l }
}

func buildOptions(opts []Option) Options {
	cfg := Options{log: xlog.Default()}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
