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
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks struct values using go-playground/validator tags and
// registered struct-level rules. It is safe for concurrent use once built.
type Validator struct {
	cfg   *config
	inner *validator.Validate
}

// New creates a [Validator].
//
//	v, err := validation.New(
//	    validation.WithStructRule(obstacleRule, Obstacle{}),
//	    validation.WithMaxErrors(10),
//	)
func New(opts ...Option) (*Validator, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	inner := validator.New(validator.WithRequiredStructEnabled())

	// Use json tags as field names for error paths.
	inner.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return jsonFieldName(fld)
	})

	for name, fn := range cfg.tags {
		if err := inner.RegisterValidation(name, fn); err != nil {
			return nil, fmt.Errorf("register custom tag %q: %w", name, err)
		}
	}
	for typ, fn := range cfg.structRules {
		inner.RegisterStructValidation(fn, reflect.Zero(typ).Interface())
	}

	return &Validator{cfg: cfg, inner: inner}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a struct or pointer to struct. Failures are returned as
// [*Error] with "tag.<name>" codes.
func (v *Validator) Validate(val any) error {
	if val == nil {
		return ErrCannotValidateNilValue
	}

	err := v.inner.Struct(val)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Fields: []FieldError{{Code: "validation_error", Message: err.Error()}}}
	}

	return v.formatTagErrors(errs)
}

// formatTagErrors converts go-playground errors into an [*Error] with stable codes.
func (v *Validator) formatTagErrors(errs validator.ValidationErrors) error {
	var result Error

	for _, e := range errs {
		// Strip the top-level struct name.
		path := e.Namespace()
		if idx := strings.Index(path, "."); idx != -1 {
			path = path[idx+1:]
		}
		path = strings.NewReplacer("[", ".", "]", "").Replace(path)

		result.Add(path, "tag."+e.Tag(), tagErrorMessage(e), map[string]any{
			"tag":   e.Tag(),
			"param": e.Param(),
			"value": fmt.Sprint(e.Value()),
		})

		if v.cfg.maxErrors > 0 && len(result.Fields) >= v.cfg.maxErrors {
			result.Truncated = true
			break
		}
	}

	result.Sort()
	return &result
}

func jsonFieldName(field reflect.StructField) string {
	name := field.Tag.Get("json")
	if name == "-" {
		return ""
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return field.Name
	}
	return name
}

func tagErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "hexcolor":
		return "must be a hex color"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "excluded_with", "excluded_unless":
		return "must not be set"
	case "finite":
		return "must be a finite number"
	case "angle_window":
		return fmt.Sprintf("must be within ±%s degrees of the direction", e.Param())
	case "required_if", "required_with":
		return "is required here"
	default:
		return fmt.Sprintf("failed %s", e.Tag())
	}
}
