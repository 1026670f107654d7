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

import "fmt"

// ObstacleType is the shape class of an obstacle.
type ObstacleType string

// Obstacle types.
const (
	// ObstacleFull spans the whole height of the grid.
	ObstacleFull ObstacleType = "full"
	// ObstacleTop hangs from the top of the grid.
	ObstacleTop ObstacleType = "top"
	// ObstacleExtended has an explicit row position and height.
	ObstacleExtended ObstacleType = "extended"
)

// Obstacle is a wall. RowIndex and Rowspan are set only for extended
// obstacles.
type Obstacle struct {
	BeatNum      float64      `json:"beatNum"`
	BeatDuration float64      `json:"beatDuration" validate:"gte=0"`
	ColIndex     float64      `json:"colIndex"`
	Colspan      float64      `json:"colspan"`
	Type         ObstacleType `json:"type" validate:"oneof=full top extended"`
	RowIndex     *float64     `json:"rowIndex,omitempty"`
	Rowspan      *float64     `json:"rowspan,omitempty"`
	Fast         bool         `json:"fast,omitempty"`
}

// ID returns "beatNum-colIndex-type".
func (o Obstacle) ID() string {
	return fmt.Sprintf("%s-%s-%s", formatNum(o.BeatNum), formatNum(o.ColIndex), o.Type)
}

// Extended builds an extended obstacle.
func Extended(beat, duration, col, colspan, row, rowspan float64) Obstacle {
	return Obstacle{
		BeatNum:      beat,
		BeatDuration: duration,
		ColIndex:     col,
		Colspan:      colspan,
		Type:         ObstacleExtended,
		RowIndex:     &row,
		Rowspan:      &rowspan,
	}
}
