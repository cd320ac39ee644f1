/*
LEAP harness configuration file parser.

Copyright 2026, Richard Cornwell

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package harnessconfig reads the leapstep harness's ".cfg" file: plain
// "key = value" lines, '#' comments, blank lines ignored. There is
// exactly one "device" (the core), so unlike a multi-model config
// parser this one carries no per-unit option grammar or device-model
// registry.
package harnessconfig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Config holds the settings the harness reads out of a .cfg file.
type Config struct {
	// TracePath is the execution-info trace file to replay.
	TracePath string
	// SampleLimit caps how many mismatches are reported (0 uses the
	// harness default).
	SampleLimit int
	// LogFile names a file to duplicate log output into, in addition to
	// stderr; empty means stderr only.
	LogFile string
	// Debug enables verbose (debug-level) logging.
	Debug bool
}

// Parse reads a harness config from r. Unknown keys are rejected; a
// missing "trace" key is not an error here (the CLI flag may supply it
// instead).
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Config{}, fmt.Errorf("harnessconfig: line %d: missing '=': %q", lineNumber, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "trace":
			cfg.TracePath = value
		case "samples":
			cfg.SampleLimit, err = strconv.Atoi(value)
		case "logfile":
			cfg.LogFile = value
		case "debug":
			cfg.Debug, err = strconv.ParseBool(value)
		default:
			return Config{}, fmt.Errorf("harnessconfig: line %d: unknown key %q", lineNumber, key)
		}
		if err != nil {
			return Config{}, fmt.Errorf("harnessconfig: line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
