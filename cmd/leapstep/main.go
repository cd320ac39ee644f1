/*
leapstep - LEAP execution-step trace replay harness.

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

// leapstep replays a stream of execution-info records against the LEAP
// core and reports how many steps matched the expected post-state.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/rcornwell/leapstep/internal/harnessconfig"
	"github.com/rcornwell/leapstep/internal/hexfmt"
	"github.com/rcornwell/leapstep/internal/leap"
	"github.com/rcornwell/leapstep/internal/logging"
)

const (
	contextBytes     = 4 * 64 * 4
	instructionBytes = 16
	recordBytes      = contextBytes + instructionBytes + contextBytes

	defaultSampleLimit = 30
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "leapstep.cfg", "Configuration file")
	optTrace := getopt.StringLong("trace", 't', "", "Execution-info trace file (overrides config)")
	optSamples := getopt.IntLong("samples", 's', 0, "Max sampled mismatches to report (overrides config)")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file (overrides config)")
	optInteractive := getopt.BoolLong("interactive", 'i', "Step through the trace interactively")
	optDebug := getopt.BoolLong("debug", 'd', "Enable debug logging")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := loadConfig(*optConfig)
	if *optTrace != "" {
		cfg.TracePath = *optTrace
	}
	if *optSamples != 0 {
		cfg.SampleLimit = *optSamples
	}
	if *optLogFile != "" {
		cfg.LogFile = *optLogFile
	}
	if *optDebug {
		cfg.Debug = true
	}
	if cfg.SampleLimit <= 0 {
		cfg.SampleLimit = defaultSampleLimit
	}

	var file *os.File
	if cfg.LogFile != "" {
		var err error
		file, err = os.Create(cfg.LogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "leapstep: cannot create log file:", err)
			os.Exit(1)
		}
	}
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}
	Logger = slog.New(logging.NewHandler(file, level, cfg.Debug))
	slog.SetDefault(Logger)

	if cfg.TracePath == "" {
		Logger.Error("no trace file specified (use -t or set 'trace' in the config file)")
		os.Exit(1)
	}

	trace, err := os.Open(cfg.TracePath)
	if err != nil {
		Logger.Error("cannot open trace file", "path", cfg.TracePath, "error", err.Error())
		os.Exit(1)
	}
	defer trace.Close()

	if *optInteractive {
		runInteractive(trace)
		return
	}
	runBatch(trace, cfg)
}

func loadConfig(path string) harnessconfig.Config {
	f, err := os.Open(path)
	if err != nil {
		return harnessconfig.Config{}
	}
	defer f.Close()

	cfg, err := harnessconfig.Parse(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "leapstep: config error:", err)
		os.Exit(1)
	}
	return cfg
}

// record is one execution-info entry: a context, the instruction applied
// to it, and the context the hardware produced.
type record struct {
	ctx      leap.Context
	inst     leap.Instruction
	expected leap.Context
}

// readRecord reads one 2064-byte execution-info record. A clean EOF
// before any bytes are read is reported via io.EOF-equivalent ok=false;
// a partial record is a fatal framing error, per the harness's contract
// with the core (the core itself never sees framing at all).
func readRecord(r io.Reader) (record, bool, error) {
	buf := make([]byte, recordBytes)
	n, err := io.ReadFull(r, buf)
	if n == 0 && errors.Is(err, io.EOF) {
		return record{}, false, nil
	}
	if err != nil {
		return record{}, false, fmt.Errorf("truncated execution-info record: %w", err)
	}

	var rec record
	off := 0
	off = decodeContext(&rec.ctx, buf, off)
	rec.inst = decodeInstruction(buf, off)
	off += instructionBytes
	decodeContext(&rec.expected, buf, off)

	return rec, true, nil
}

func decodeContext(ctx *leap.Context, buf []byte, off int) int {
	for b := 0; b < 4; b++ {
		for i := 0; i < 64; i++ {
			ctx.Banks[b][i] = le32(buf, off)
			off += 4
		}
	}
	return off
}

func decodeInstruction(buf []byte, off int) leap.Instruction {
	return leap.Instruction{
		I0: le32(buf, off),
		I1: le32(buf, off+4),
		I2: le32(buf, off+8),
		I3: le32(buf, off+12),
	}
}

func le32(buf []byte, off int) uint32 {
	return uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
}

// runBatch replays every record in the trace, printing up to
// cfg.SampleLimit randomly sampled mismatches and a final good/bad/total
// summary.
func runBatch(trace *os.File, cfg harnessconfig.Config) {
	good, bad, notImpl := 0, 0, 0
	var mismatchCount int
	sampled := make([]string, 0, cfg.SampleLimit)

	for {
		rec, ok, err := readRecord(trace)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		if !ok {
			break
		}

		got, status := leap.Step(rec.ctx, rec.inst)
		switch {
		case status == leap.NotImplemented:
			notImpl++
		case got == rec.expected:
			good++
		default:
			bad++
			mismatchCount++
			if len(sampled) < cfg.SampleLimit {
				sampled = append(sampled, describeMismatch(rec))
			} else if n := rand.Intn(mismatchCount); n < cfg.SampleLimit {
				sampled[n] = describeMismatch(rec)
			}
		}
	}

	for _, s := range sampled {
		fmt.Fprintln(os.Stderr, s)
	}
	total := good + bad + notImpl
	fmt.Fprintf(os.Stderr, "good=%d bad=%d not_implemented=%d total=%d\n", good, bad, notImpl, total)
}

func describeMismatch(rec record) string {
	var b strings.Builder
	hexfmt.FormatWord(&b, []uint32{rec.inst.I0, rec.inst.I1, rec.inst.I2, rec.inst.I3})
	return b.String()
}

// runInteractive steps through the trace one record at a time under
// operator control.
func runInteractive(trace *os.File) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	index := 0
	for {
		rec, ok, err := readRecord(trace)
		if err != nil {
			Logger.Error(err.Error())
			return
		}
		if !ok {
			fmt.Println("end of trace")
			return
		}
		index++

		got, status := leap.Step(rec.ctx, rec.inst)

		var b strings.Builder
		hexfmt.FormatWord(&b, []uint32{rec.inst.I0, rec.inst.I1, rec.inst.I2, rec.inst.I3})
		fmt.Printf("#%d inst: %s status: %v\n", index, b.String(), status)
		if status == leap.OK && got != rec.expected {
			fmt.Println("  MISMATCH against expected context")
		}

		cmd, err := line.Prompt("leapstep> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			return
		}
		line.AppendHistory(cmd)
		if strings.TrimSpace(cmd) == "q" {
			return
		}
	}
}

