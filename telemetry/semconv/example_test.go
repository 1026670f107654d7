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

package semconv_test

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"rivaas.dev/beatmap/telemetry/semconv"
)

// ExampleVersion logs a conversion with the shared keys.
func ExampleVersion() {
	logger := slog.Default().With(
		semconv.ServiceName, "beatconv",
		semconv.ServiceVersion, "1.0.0",
	)
	logger.Info("export finished",
		semconv.Archive, "song.zip",
		semconv.Version, "v4",
	)

	fmt.Println(attribute.String(semconv.Version, "v4").Key)
	// Output: beatmap.version
}
