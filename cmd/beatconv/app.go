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

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
	"gopkg.in/alecthomas/kingpin.v2"

	"rivaas.dev/beatmap/config"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// cli holds the parsed command line. Override flags are strings so an unset
// flag can be told apart from a zero value and left to the lower layers.
type cli struct {
	configPath    string
	target        string
	extensions    string
	unknownTracks string
	workers       string
	logLevel      string
	logFormat     string
	tracing       string
	metricsDump   bool
	errorFormat   string
	set           map[string]string

	convertIn, convertOut string
	inspectIn             string
	inspectFormat         string
	validateIn            []string
	configFormat          string
}

func newApp(c *cli, stderr io.Writer) *kingpin.Application {
	app := kingpin.New("beatconv", "Convert rhythm-game map archives between format versions.")
	app.Version(version)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.HelpFlag.Short('h')

	app.Flag("config", "Settings file (YAML, TOML or JSON); defaults to "+config.DefaultFile+" when present.").Short('c').PlaceHolder("FILE").StringVar(&c.configPath)
	app.Flag("target", "Target format version (1-4).").Short('t').PlaceHolder("VERSION").StringVar(&c.target)
	app.Flag("extensions", "Extension provider, e.g. mapping-extensions.").PlaceHolder("NAME").StringVar(&c.extensions)
	app.Flag("unknown-tracks", "Policy for events on unknown tracks.").EnumVar(&c.unknownTracks, "fail", "skip")
	app.Flag("workers", "Difficulties converted at once; 0 uses every CPU.").PlaceHolder("N").StringVar(&c.workers)
	app.Flag("log-level", "Log level.").EnumVar(&c.logLevel, "debug", "info", "warn", "error")
	app.Flag("log-format", "Log format; defaults to console on a terminal, JSON otherwise.").EnumVar(&c.logFormat, "json", "text", "console")
	app.Flag("tracing", "Span exporter.").EnumVar(&c.tracing, "noop", "stdout", "otlp", "otlp-http")
	app.Flag("metrics-dump", "Print metrics in Prometheus text format to stderr on exit.").BoolVar(&c.metricsDump)
	app.Flag("error-format", "Failure document format.").Default("rfc9457").EnumVar(&c.errorFormat, "rfc9457", "simple")
	app.Flag("set", "Override any setting, e.g. --set tracks.20=light.").PlaceHolder("KEY=VALUE").StringMapVar(&c.set)

	convert := app.Command("convert", "Convert an archive to another format version.")
	convert.Arg("input", "Source archive.").Required().ExistingFileVar(&c.convertIn)
	convert.Arg("output", "Destination archive.").Required().StringVar(&c.convertOut)

	inspect := app.Command("inspect", "Describe the song and difficulties in an archive.")
	inspect.Arg("input", "Archive to inspect.").Required().ExistingFileVar(&c.inspectIn)
	inspect.Flag("format", "Output format.").Short('f').Default("text").EnumVar(&c.inspectFormat, "text", "json", "yaml", "toml")

	validate := app.Command("validate", "Check that archives decode without errors.")
	validate.Arg("input", "Archives to check.").Required().ExistingFilesVar(&c.validateIn)

	app.Command("version", "Print the build version and supported formats.")

	cfg := app.Command("config", "Print the merged settings.")
	cfg.Flag("format", "Output format.").Short('f').Default("yaml").EnumVar(&c.configFormat, "json", "yaml", "toml")

	return app
}

// overrides turns the flags that were given into a settings layer.
func (c *cli) overrides() (map[string]any, error) {
	values := map[string]any{}
	for k, v := range c.set {
		// scalars are typed the way a settings file would type them
		var typed any
		if err := yaml.Unmarshal([]byte(v), &typed); err != nil || typed == nil {
			typed = v
		}
		values[strings.ToLower(k)] = typed
	}

	if c.target != "" {
		values["target"] = c.target
	}
	if c.extensions != "" {
		values["extensions"] = c.extensions
	}
	if c.unknownTracks != "" {
		values["unknown_tracks"] = c.unknownTracks
	}
	if c.workers != "" {
		n, err := cast.ToIntE(c.workers)
		if err != nil {
			return nil, fmt.Errorf("--workers: %w", err)
		}
		values["workers"] = n
	}
	if c.logLevel != "" {
		values["log.level"] = c.logLevel
	}
	if c.logFormat != "" {
		values["log.format"] = c.logFormat
	}
	if c.tracing != "" {
		values["tracing.provider"] = c.tracing
	}
	if c.metricsDump {
		values["metrics.dump"] = true
	}
	return values, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := cli{set: map[string]string{}}
	app := newApp(&c, stderr)

	cmd, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "beatconv: %v\n", err)
		return exitUsage
	}

	if cmd == "version" {
		if err = writeBanner(stdout); err != nil {
			return exitFailure
		}
		return exitOK
	}

	values, err := c.overrides()
	if err != nil {
		fmt.Fprintf(stderr, "beatconv: %v\n", err)
		return exitUsage
	}
	settings, cfg, err := config.LoadSettings(ctx, c.configPath, config.WithValues(values))
	if err != nil {
		return reportFailure(stderr, c.errorFormat, c.configPath, err, exitUsage)
	}

	if cmd == "config" {
		return runConfig(stdout, stderr, cfg, c.configFormat)
	}

	rt, err := newRuntime(ctx, settings, stderr)
	if err != nil {
		return reportFailure(stderr, c.errorFormat, "", err, exitUsage)
	}
	defer rt.close(stderr)

	var (
		instance string
		cmdErr   error
	)
	switch cmd {
	case "convert":
		instance, cmdErr = runConvert(ctx, rt, stdout, c.convertIn, c.convertOut)
	case "inspect":
		instance, cmdErr = runInspect(ctx, rt, stdout, c.inspectIn, c.inspectFormat)
	case "validate":
		instance, cmdErr = runValidate(ctx, rt, stdout, c.validateIn)
	default:
		app.Usage(args)
		return exitUsage
	}
	if cmdErr != nil {
		return reportFailure(stderr, c.errorFormat, instance, cmdErr, exitFailure)
	}
	return exitOK
}
