// Command ym7128b streams interleaved audio samples through a
// YM7128B engine: read from stdin, process, write to stdout. Flags
// select the wire sample format, the engine variant and rate, the
// register configuration (by preset, full hex dump, or individual
// --reg-<NAME> fields), and a dry/wet output mix. Flag parsing follows
// doismellburning-samoyed's pflag-based CLI shape; diagnostics go
// through charmbracelet/log rather than bare fmt.Fprintf.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/surroundproc/ym7128b/internal/dbvol"
	"github.com/surroundproc/ym7128b/internal/preset"
	"github.com/surroundproc/ym7128b/internal/regdump"
	"github.com/surroundproc/ym7128b/internal/sformat"
	"github.com/surroundproc/ym7128b/internal/ym7128b/engine"
	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{ReportTimestamp: false})

	fs := pflag.NewFlagSet("ym7128b", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	formatName := fs.StringP("format", "f", "S16_LE", "sample format: "+sformat.JoinValidNames())
	engineName := fs.StringP("engine", "e", "float", "engine variant: fixed, float, ideal, short")
	rate := fs.Float64P("rate", "r", 44100, "operating rate in Hz (ideal/short only)")
	presetName := fs.String("preset", "", "named preset register configuration")
	dump := fs.String("regdump", "", "full 32-byte register dump, as 64 hex digits or 32 space-separated bytes")
	dryDB := fs.Float64("dry", -128, "dry (input) mix level in dB; |dB| >= 128 mutes")
	wetDB := fs.Float64("wet", 0, "wet (processed) mix level in dB; |dB| >= 128 mutes")
	help := fs.BoolP("help", "h", false, "display usage and exit")

	regFlags := make(map[string]*string, register.Count)
	for addr := uint8(0); addr < register.Count; addr++ {
		name := register.Name(addr)
		if name == "" {
			continue
		}
		regFlags[name] = fs.String("reg-"+name, "", "set register "+name+" from a two-hex-digit byte")
	}

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ym7128b [OPTIONS]\n\n")
		fmt.Fprintf(stderr, "Streams interleaved stereo samples from stdin through a YM7128B engine to stdout.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		logger.Error("argument parsing failed", "err", err)
		return 1
	}
	if *help {
		fs.Usage()
		return 0
	}

	format, err := sformat.Parse(*formatName)
	if err != nil {
		logger.Error("invalid format", "err", err)
		return 1
	}

	proc, err := newEngine(*engineName, *rate)
	if err != nil {
		logger.Error("invalid engine configuration", "err", err)
		return 1
	}

	if *presetName != "" {
		p, ok := preset.Table[*presetName]
		if !ok {
			logger.Error("unknown preset", "name", *presetName)
			return 1
		}
		for addr := uint8(0); addr < register.Count; addr++ {
			proc.Write(addr, p.Registers[addr])
		}
		logger.Debug("applied preset", "name", *presetName)
	}

	if *dump != "" {
		tokens := strings.Fields(*dump)
		if len(tokens) == 1 && len(tokens[0]) == register.Count*2 {
			tokens = splitHexPairs(tokens[0])
		}
		parsed, err := regdump.ParseDump(tokens)
		if err != nil {
			logger.Error("invalid regdump", "err", err)
			return 1
		}
		for addr := uint8(0); addr < register.Count; addr++ {
			proc.Write(addr, parsed[addr])
		}
		logger.Debug("applied regdump")
	}

	for name, val := range regFlags {
		if *val == "" {
			continue
		}
		addr, ok := regdump.FieldByName(name)
		if !ok {
			logger.Error("unknown register", "name", name)
			return 1
		}
		v, err := regdump.ParseHex(*val)
		if err != nil {
			logger.Error("invalid register value", "name", name, "err", err)
			return 1
		}
		proc.Write(addr, v)
		logger.Debug("wrote register", "name", name, "value", v)
	}

	dryGain := dbvol.ToLinear(*dryDB)
	wetGain := dbvol.ToLinear(*wetDB)

	proc.Start()

	reader := sformat.NewReader(stdin, format)
	writer := sformat.NewWriter(stdout, format)

	if err := stream(proc, reader, writer, dryGain, wetGain); err != nil {
		logger.Error("stream failed", "err", err)
		return 1
	}
	return 0
}

func newEngine(name string, rate float64) (engine.Processor, error) {
	if (name == "ideal" || name == "short") && rate < 1 {
		return nil, &regdump.ConfigError{What: name + " engine rate", Token: strconv.FormatFloat(rate, 'g', -1, 64), Err: engine.ErrInvalidRate}
	}
	switch name {
	case "fixed":
		return engine.NewFixed(), nil
	case "float":
		return engine.NewFloat(), nil
	case "ideal":
		e := engine.NewIdealFloat()
		if err := e.Setup(rate); err != nil {
			return nil, &regdump.ConfigError{What: "ideal engine rate", Token: strconv.FormatFloat(rate, 'g', -1, 64), Err: err}
		}
		return e, nil
	case "short":
		e := engine.NewIdealShort()
		if err := e.Setup(rate); err != nil {
			return nil, &regdump.ConfigError{What: "short engine rate", Token: strconv.FormatFloat(rate, 'g', -1, 64), Err: err}
		}
		return e, nil
	default:
		return nil, &regdump.ConfigError{What: "unknown engine", Token: name}
	}
}

// stream runs the read-process-write loop until a clean EOF. Both
// channels of each input tick are read and passed to the engine, and
// their average forms the dry signal; each output tick's K stereo
// pairs are dry/wet-mixed against it and written in sequence.
func stream(proc engine.Processor, r *sformat.Reader, w *sformat.Writer, dryGain, wetGain float32) error {
	for {
		left, err := r.ReadSample()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		right, err := r.ReadSample()
		if err != nil {
			return err
		}

		out := proc.Process(engine.ProcessIn{Input: [2]float32{left, right}})
		dry := (left + right) / 2
		for i := 0; i < out.N; i++ {
			if err := w.WriteSample(dry*dryGain + out.Left[i]*wetGain); err != nil {
				return err
			}
			if err := w.WriteSample(dry*dryGain + out.Right[i]*wetGain); err != nil {
				return err
			}
		}
	}
}

func splitHexPairs(s string) []string {
	pairs := make([]string, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		pairs = append(pairs, s[i:i+2])
	}
	return pairs
}
