// Command ym7128b-play is a live-playback front end: it streams
// interleaved stereo samples from stdin through a YM7128B engine the
// same way cmd/ym7128b does, but instead of writing processed samples
// back out to a byte stream, it pushes them to an oto.Player for
// immediate audible output. The oto wiring (a lock-free ring buffer
// of samples plus a reused pull buffer) follows the teacher's OtoPlayer.
package main

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	"github.com/spf13/pflag"

	"github.com/surroundproc/ym7128b/internal/preset"
	"github.com/surroundproc/ym7128b/internal/sformat"
	"github.com/surroundproc/ym7128b/internal/ym7128b/engine"
	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
)

// ring is a fixed-capacity circular buffer of interleaved stereo
// float32 samples. Reads that outrun writes return silence instead of
// blocking, the same underrun behavior as the teacher's
// ReadSampleFromRing: the playback callback must never stall on an
// empty buffer.
type ring struct {
	buf        []float32
	writeIndex atomic.Uint64
	readIndex  atomic.Uint64
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]float32, capacity)}
}

func (r *ring) push(sample float32) {
	i := r.writeIndex.Load()
	r.buf[int(i)%len(r.buf)] = sample
	r.writeIndex.Store(i + 1)
}

func (r *ring) pull() float32 {
	w := r.writeIndex.Load()
	i := r.readIndex.Load()
	if i >= w {
		return 0
	}
	s := r.buf[int(i)%len(r.buf)]
	r.readIndex.Store(i + 1)
	return s
}

// otoSource adapts a ring buffer of interleaved float32 stereo samples
// to oto's io.Reader pull model.
type otoSource struct {
	samples *ring
	scratch []float32
}

func (s *otoSource) Read(p []byte) (int, error) {
	n := len(p) / 4
	if cap(s.scratch) < n {
		s.scratch = make([]float32, n)
	}
	buf := s.scratch[:n]
	for i := range buf {
		buf[i] = s.samples.pull()
	}
	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&buf[0]))[:len(p)])
	return len(p), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stderr))
}

func run(args []string, stdin io.Reader, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{ReportTimestamp: false})

	fs := pflag.NewFlagSet("ym7128b-play", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	formatName := fs.StringP("format", "f", "S16_LE", "input sample format: "+sformat.JoinValidNames())
	engineName := fs.StringP("engine", "e", "float", "engine variant: fixed, float, ideal, short")
	rate := fs.IntP("rate", "r", 44100, "playback sample rate in Hz")
	presetName := fs.String("preset", "direct", "named preset register configuration")
	help := fs.BoolP("help", "h", false, "display usage and exit")

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

	proc, err := newEngineForPlayback(*engineName, float64(*rate))
	if err != nil {
		logger.Error("invalid engine configuration", "err", err)
		return 1
	}
	p, ok := preset.Table[*presetName]
	if !ok {
		logger.Error("unknown preset", "name", *presetName)
		return 1
	}
	for addr := uint8(0); addr < register.Count; addr++ {
		proc.Write(addr, p.Registers[addr])
	}
	proc.Start()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		logger.Error("failed to open audio output", "err", err)
		return 1
	}
	<-ready

	buf := newRing(1 << 16)
	player := ctx.NewPlayer(&otoSource{samples: buf})
	player.Play()
	defer player.Close()

	reader := sformat.NewReader(stdin, format)
	for {
		left, err := reader.ReadSample()
		if err != nil {
			if err == io.EOF {
				return 0
			}
			logger.Error("read failed", "err", err)
			return 1
		}
		right, err := reader.ReadSample()
		if err != nil {
			logger.Error("read failed", "err", err)
			return 1
		}
		out := proc.Process(engine.ProcessIn{Input: [2]float32{left, right}})
		for i := 0; i < out.N; i++ {
			buf.push(out.Left[i])
			buf.push(out.Right[i])
		}
	}
}

func newEngineForPlayback(name string, rate float64) (engine.Processor, error) {
	switch name {
	case "fixed":
		return engine.NewFixed(), nil
	case "float":
		return engine.NewFloat(), nil
	case "ideal":
		e := engine.NewIdealFloat()
		if err := e.Setup(rate); err != nil {
			return nil, err
		}
		return e, nil
	case "short":
		e := engine.NewIdealShort()
		if err := e.Setup(rate); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
