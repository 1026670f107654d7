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

package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

var durationType = reflect.TypeFor[time.Duration]()

// applyDefaults fills zero-valued fields from their `default:"..."` tag,
// recursing into nested structs.
func applyDefaults(val reflect.Value) error {
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("binding target is a %s, not a struct", val.Kind())
	}
	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			if err := applyDefaults(field); err != nil {
				return err
			}
			continue
		}
		def, ok := typ.Field(i).Tag.Lookup("default")
		if !ok || !field.IsZero() {
			continue
		}
		if err := setDefault(field, def); err != nil {
			return fmt.Errorf("default for %s: %w", typ.Field(i).Name, err)
		}
	}
	return nil
}

// setDefault parses def with cast and converts it to the field's type.
// Integer defaults that do not fit the field are rejected.
func setDefault(field reflect.Value, def string) error {
	t := field.Type()
	var (
		v   any
		err error
	)
	switch k := t.Kind(); {
	case t == durationType:
		v, err = cast.ToDurationE(def)
	case k == reflect.String:
		v = def
	case k == reflect.Bool:
		v, err = cast.ToBoolE(def)
	case k >= reflect.Int && k <= reflect.Int64:
		var n int64
		if n, err = cast.ToInt64E(def); err == nil && field.OverflowInt(n) {
			err = fmt.Errorf("%d overflows %s", n, t)
		}
		v = n
	case k >= reflect.Uint && k <= reflect.Uint64:
		var n uint64
		if n, err = cast.ToUint64E(def); err == nil && field.OverflowUint(n) {
			err = fmt.Errorf("%d overflows %s", n, t)
		}
		v = n
	case k == reflect.Float32 || k == reflect.Float64:
		v, err = cast.ToFloat64E(def)
	case k == reflect.Slice && t.Elem().Kind() == reflect.String:
		v = cast.ToStringSlice(def)
	default:
		return fmt.Errorf("default tag not supported on %s", t)
	}
	if err != nil {
		return err
	}
	field.Set(reflect.ValueOf(v).Convert(t))
	return nil
}
