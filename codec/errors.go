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

package codec

import (
	"errors"
	"fmt"

	"rivaas.dev/beatmap/validation"
)

// Sentinel errors. Every typed error below unwraps to one of them.
var (
	ErrInvalidCoordinate       = errors.New("invalid coordinate")
	ErrInvalidAngle            = errors.New("invalid angle")
	ErrSchemaValidation        = errors.New("schema validation failed")
	ErrUnsupportedVersion      = errors.New("unsupported version")
	ErrUnrecognizedEventEffect = errors.New("unrecognized event effect")
	ErrUnknownTrack            = errors.New("unknown event track")
	ErrInvalidEntity           = errors.New("invalid entity")
	ErrUnknownProvider         = errors.New("unknown extension provider")
)

// InvalidCoordinateError reports a serial coordinate that is neither a
// vanilla in-range integer nor accepted by the active extension provider.
type InvalidCoordinateError struct {
	Value    float64
	Min, Max float64
	Bounded  bool
}

func (e *InvalidCoordinateError) Error() string {
	if e.Bounded {
		return fmt.Sprintf("invalid coordinate %v: want integer in [%v, %v]", e.Value, e.Min, e.Max)
	}
	return fmt.Sprintf("invalid coordinate %v: want integer", e.Value)
}

func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// Code implements rivaas.dev/beatmap/errors.ErrorCode.
func (e *InvalidCoordinateError) Code() string { return "invalid_coordinate" }

// HTTPStatus implements rivaas.dev/beatmap/errors.ErrorType.
func (e *InvalidCoordinateError) HTTPStatus() int { return 422 }

// InvalidAngleError reports a cut direction outside the vanilla table and
// the active provider's range.
type InvalidAngleError struct {
	Direction int
	Offset    float64
}

func (e *InvalidAngleError) Error() string {
	return fmt.Sprintf("invalid cut direction %d (offset %v)", e.Direction, e.Offset)
}

func (e *InvalidAngleError) Unwrap() error { return ErrInvalidAngle }

// Code implements rivaas.dev/beatmap/errors.ErrorCode.
func (e *InvalidAngleError) Code() string { return "invalid_angle" }

// HTTPStatus implements rivaas.dev/beatmap/errors.ErrorType.
func (e *InvalidAngleError) HTTPStatus() int { return 422 }

// SchemaValidationError reports a raw document rejected by its schema.
// Label names the entity kind and version, e.g. "ColorNote/v3".
type SchemaValidationError struct {
	Label string
	Err   error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Label, e.Err)
}

// Unwrap exposes both [ErrSchemaValidation] and the underlying
// [*validation.Error].
func (e *SchemaValidationError) Unwrap() []error {
	return []error{ErrSchemaValidation, e.Err}
}

// Code implements rivaas.dev/beatmap/errors.ErrorCode.
func (e *SchemaValidationError) Code() string { return "schema_validation" }

// HTTPStatus implements rivaas.dev/beatmap/errors.ErrorType.
func (e *SchemaValidationError) HTTPStatus() int { return 422 }

// Details implements rivaas.dev/beatmap/errors.ErrorDetails.
func (e *SchemaValidationError) Details() any {
	var verr *validation.Error
	if errors.As(e.Err, &verr) {
		return verr.Fields
	}
	return nil
}

// UnsupportedVersionError reports a version an entity kind has no codec for.
type UnsupportedVersionError struct {
	Kind    string
	Version Version
}

func (e *UnsupportedVersionError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("unsupported version %d", int(e.Version))
	}
	return fmt.Sprintf("%s: unsupported version %d", e.Kind, int(e.Version))
}

func (e *UnsupportedVersionError) Unwrap() error { return ErrUnsupportedVersion }

// Code implements rivaas.dev/beatmap/errors.ErrorCode.
func (e *UnsupportedVersionError) Code() string { return "unsupported_version" }

// HTTPStatus implements rivaas.dev/beatmap/errors.ErrorType.
func (e *UnsupportedVersionError) HTTPStatus() int { return 400 }

// UnrecognizedEventEffectError reports an event value or wrapper effect
// that has no mapping on the event's track.
type UnrecognizedEventEffectError struct {
	Track  int
	Kind   TrackKind
	Value  float64
	Effect string
}

func (e *UnrecognizedEventEffectError) Error() string {
	if e.Effect != "" {
		return fmt.Sprintf("event effect %q not valid on %s track %d", e.Effect, e.Kind, e.Track)
	}
	return fmt.Sprintf("event value %v not recognized on %s track %d", e.Value, e.Kind, e.Track)
}

func (e *UnrecognizedEventEffectError) Unwrap() error { return ErrUnrecognizedEventEffect }

// Code implements rivaas.dev/beatmap/errors.ErrorCode.
func (e *UnrecognizedEventEffectError) Code() string { return "unrecognized_event_effect" }

// HTTPStatus implements rivaas.dev/beatmap/errors.ErrorType.
func (e *UnrecognizedEventEffectError) HTTPStatus() int { return 422 }

// UnknownTrackError reports an event on a track absent from the track table.
type UnknownTrackError struct {
	Track int
}

func (e *UnknownTrackError) Error() string {
	return fmt.Sprintf("event track %d is not in the track table", e.Track)
}

func (e *UnknownTrackError) Unwrap() error { return ErrUnknownTrack }

// Code implements rivaas.dev/beatmap/errors.ErrorCode.
func (e *UnknownTrackError) Code() string { return "unknown_track" }

// HTTPStatus implements rivaas.dev/beatmap/errors.ErrorType.
func (e *UnknownTrackError) HTTPStatus() int { return 422 }

// InvalidEntityError reports a wrapper entity that fails its own
// validation rules before serialization.
type InvalidEntityError struct {
	Kind string
	Err  error
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Kind, e.Err)
}

// Unwrap exposes both [ErrInvalidEntity] and the underlying cause.
func (e *InvalidEntityError) Unwrap() []error {
	return []error{ErrInvalidEntity, e.Err}
}

// Code implements rivaas.dev/beatmap/errors.ErrorCode.
func (e *InvalidEntityError) Code() string { return "invalid_entity" }

// HTTPStatus implements rivaas.dev/beatmap/errors.ErrorType.
func (e *InvalidEntityError) HTTPStatus() int { return 422 }

// Details implements rivaas.dev/beatmap/errors.ErrorDetails.
func (e *InvalidEntityError) Details() any {
	var verr *validation.Error
	if errors.As(e.Err, &verr) {
		return verr.Fields
	}
	return nil
}
