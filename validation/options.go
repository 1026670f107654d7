// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// config collects options before the underlying validator is built.
type config struct {
	maxErrors   int
	tags        map[string]validator.Func
	structRules map[reflect.Type]validator.StructLevelFunc
}

func newConfig() *config {
	return &config{tags: map[string]validator.Func{}, structRules: map[reflect.Type]validator.StructLevelFunc{}}
}

func (c *config) validate() error {
	var errs error
	if c.maxErrors < 0 {
		errs = errors.Join(errs, fmt.Errorf("max errors %d is negative", c.maxErrors))
	}
	for name, fn := range c.tags {
		if name == "" || fn == nil {
			errs = errors.Join(errs, fmt.Errorf("custom tag %q has no function or no name", name))
		}
	}
	return errs
}

// Option configures a [Validator].
type Option func(*config)

// WithMaxErrors caps the field errors reported; 0 reports all of them.
func WithMaxErrors(n int) Option {
	return func(c *config) { c.maxErrors = n }
}

// WithCustomTag registers a validation tag. Registering a name twice keeps
// the last function.
func WithCustomTag(name string, fn validator.Func) Option {
	return func(c *config) { c.tags[name] = fn }
}

// WithStructRule registers fn for each of types. Rules report failures
// through [validator.StructLevel.ReportError].
func WithStructRule(fn validator.StructLevelFunc, types ...any) Option {
	return func(c *config) {
		for _, t := range types {
			c.structRules[reflect.TypeOf(t)] = fn
		}
	}
}
