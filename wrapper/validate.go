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

package wrapper

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"rivaas.dev/beatmap/validation"
)

var validate = validation.MustNew(
	validation.WithStructRule(noteRule, ColorNote{}),
	validation.WithStructRule(obstacleRule, Obstacle{}),
	validation.WithStructRule(eventRule, BasicEvent{}),
	validation.WithMaxErrors(64),
)

// Validate checks a wrapper value: a single entity, a [Beatmap] or a
// [Song]. Failures are returned as [*validation.Error].
func Validate(v any) error {
	return validate.Validate(v)
}

// noteRule keeps the angle offset finite and within half a step of the
// direction: [-22.5, 22.5) for directional notes and [-45, 45) for dots.
func noteRule(sl validator.StructLevel) {
	n, ok := sl.Current().Interface().(ColorNote)
	if !ok {
		return
	}

	if math.IsNaN(n.AngleOffset) || math.IsInf(n.AngleOffset, 0) {
		sl.ReportError(n.AngleOffset, "angleOffset", "AngleOffset", "finite", "")
		return
	}

	half := 22.5
	if n.Direction == DirectionAny {
		half = 45
	}
	if n.AngleOffset < -half || n.AngleOffset >= half {
		sl.ReportError(n.AngleOffset, "angleOffset", "AngleOffset", "angle_window", fmt.Sprint(half))
	}
}

// obstacleRule requires row data on extended obstacles and forbids it elsewhere.
func obstacleRule(sl validator.StructLevel) {
	o, ok := sl.Current().Interface().(Obstacle)
	if !ok {
		return
	}

	extended := o.Type == ObstacleExtended
	if extended && o.RowIndex == nil {
		sl.ReportError(o.RowIndex, "rowIndex", "RowIndex", "required_if", "type extended")
	}
	if extended && o.Rowspan == nil {
		sl.ReportError(o.Rowspan, "rowspan", "Rowspan", "required_if", "type extended")
	}
	if !extended && o.RowIndex != nil {
		sl.ReportError(o.RowIndex, "rowIndex", "RowIndex", "excluded_unless", "type extended")
	}
	if !extended && o.Rowspan != nil {
		sl.ReportError(o.Rowspan, "rowspan", "Rowspan", "excluded_unless", "type extended")
	}
}

// eventRule ties colorType and laserSpeed to the event type.
func eventRule(sl validator.StructLevel) {
	e, ok := sl.Current().Interface().(BasicEvent)
	if !ok {
		return
	}

	switch {
	case e.Type.IsLightEffect() && e.ColorType == "":
		sl.ReportError(e.ColorType, "colorType", "ColorType", "required_if", "light effect")
	case !e.Type.IsLightEffect() && e.ColorType != "":
		sl.ReportError(e.ColorType, "colorType", "ColorType", "excluded_unless", "light effect")
	}

	switch {
	case e.Type == EventValue && e.LaserSpeed == nil:
		sl.ReportError(e.LaserSpeed, "laserSpeed", "LaserSpeed", "required_if", "type value")
	case e.Type != EventValue && e.LaserSpeed != nil:
		sl.ReportError(e.LaserSpeed, "laserSpeed", "LaserSpeed", "excluded_unless", "type value")
	}
}
