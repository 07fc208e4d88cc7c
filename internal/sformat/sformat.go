// Package sformat implements the byte-stream sample format adapters a
// CLI driver needs around the core engine: normalized float32 samples
// on one side, an interleaved wire format (fixed-width integer,
// float, or the no-op "dummy" format) on the other. None of this is
// part of the core signal path — it's the thin boundary described in
// the sample format contract, modelled on the pack's binary
// register-stream parsers (vgm_parser.go, ay_parser.go) that decode a
// byte stream into typed values the same shape.
package sformat

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// Format identifies a wire sample encoding.
type Format int

const (
	U8 Format = iota
	S8
	U16LE
	U16BE
	S16LE
	S16BE
	U32LE
	U32BE
	S32LE
	S32BE
	FloatLE
	FloatBE
	Float64LE
	Float64BE
	Dummy
)

var formatNames = map[string]Format{
	"U8":        U8,
	"S8":        S8,
	"U16_LE":    U16LE,
	"U16_BE":    U16BE,
	"S16_LE":    S16LE,
	"S16_BE":    S16BE,
	"U32_LE":    U32LE,
	"U32_BE":    U32BE,
	"S32_LE":    S32LE,
	"S32_BE":    S32BE,
	"FLOAT_LE":  FloatLE,
	"FLOAT_BE":  FloatBE,
	"FLOAT64_LE": Float64LE,
	"FLOAT64_BE": Float64BE,
	"dummy":     Dummy,
}

// Parse resolves a format name (as accepted by -f/--format) to a
// Format, or reports an error naming the unrecognized token.
func Parse(name string) (Format, error) {
	f, ok := formatNames[name]
	if !ok {
		return 0, fmt.Errorf("sformat: unknown format %q", name)
	}
	return f, nil
}

// BytesPerSample returns the wire width of one sample in this format.
// Dummy returns 0.
func (f Format) BytesPerSample() int {
	switch f {
	case U8, S8:
		return 1
	case U16LE, U16BE, S16LE, S16BE:
		return 2
	case U32LE, U32BE, S32LE, S32BE, FloatLE, FloatBE:
		return 4
	case Float64LE, Float64BE:
		return 8
	case Dummy:
		return 0
	default:
		return 0
	}
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return "unknown"
}

// Reader decodes a wire-format byte stream into normalized float32
// samples in [-1, 1).
type Reader struct {
	r      io.Reader
	format Format
	buf    [8]byte
}

// NewReader wraps r to read samples in the given format.
func NewReader(r io.Reader, format Format) *Reader {
	return &Reader{r: r, format: format}
}

// ReadSample reads one sample. It returns io.EOF when the underlying
// reader is exhausted exactly on a sample boundary (clean end of
// stream), and a wrapped io.ErrUnexpectedEOF when a short read lands
// mid-sample.
func (r *Reader) ReadSample() (float32, error) {
	if r.format == Dummy {
		return 0, nil
	}
	n := r.format.BytesPerSample()
	buf := r.buf[:n]
	read, err := io.ReadFull(r.r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || (err == io.EOF && read > 0) {
			return 0, fmt.Errorf("sformat: short read mid-sample: %w", io.ErrUnexpectedEOF)
		}
		return 0, err
	}
	return decode(r.format, buf), nil
}

func decode(format Format, buf []byte) float32 {
	switch format {
	case U8:
		return (float32(buf[0]) - 128) / 128
	case S8:
		return float32(int8(buf[0])) / 128
	case U16LE:
		return (float32(binary.LittleEndian.Uint16(buf)) - 32768) / 32768
	case U16BE:
		return (float32(binary.BigEndian.Uint16(buf)) - 32768) / 32768
	case S16LE:
		return float32(int16(binary.LittleEndian.Uint16(buf))) / 32768
	case S16BE:
		return float32(int16(binary.BigEndian.Uint16(buf))) / 32768
	case U32LE:
		return (float32(binary.LittleEndian.Uint32(buf)) - 2147483648) / 2147483648
	case U32BE:
		return (float32(binary.BigEndian.Uint32(buf)) - 2147483648) / 2147483648
	case S32LE:
		return float32(int32(binary.LittleEndian.Uint32(buf))) / 2147483648
	case S32BE:
		return float32(int32(binary.BigEndian.Uint32(buf))) / 2147483648
	case FloatLE:
		return math.Float32frombits(binary.LittleEndian.Uint32(buf))
	case FloatBE:
		return math.Float32frombits(binary.BigEndian.Uint32(buf))
	case Float64LE:
		return float32(math.Float64frombits(binary.LittleEndian.Uint64(buf)))
	case Float64BE:
		return float32(math.Float64frombits(binary.BigEndian.Uint64(buf)))
	default:
		return 0
	}
}

// Writer encodes normalized float32 samples into a wire-format byte
// stream.
type Writer struct {
	w      io.Writer
	format Format
	buf    [8]byte
}

// NewWriter wraps w to write samples in the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteSample encodes and writes one sample, saturating to the
// format's representable range.
func (w *Writer) WriteSample(sample float32) error {
	if w.format == Dummy {
		return nil
	}
	n := w.format.BytesPerSample()
	buf := w.buf[:n]
	encode(w.format, sample, buf)
	_, err := w.w.Write(buf)
	if err != nil {
		return fmt.Errorf("sformat: write failed: %w", err)
	}
	return nil
}

func encode(format Format, sample float32, buf []byte) {
	switch format {
	case U8:
		buf[0] = byte(clampInt(int32(sample*128)+128, 0, 255))
	case S8:
		buf[0] = byte(int8(clampInt(int32(sample*128), -128, 127)))
	case U16LE:
		binary.LittleEndian.PutUint16(buf, uint16(clampInt(int32(sample*32768)+32768, 0, 65535)))
	case U16BE:
		binary.BigEndian.PutUint16(buf, uint16(clampInt(int32(sample*32768)+32768, 0, 65535)))
	case S16LE:
		binary.LittleEndian.PutUint16(buf, uint16(int16(clampInt(int32(sample*32768), -32768, 32767))))
	case S16BE:
		binary.BigEndian.PutUint16(buf, uint16(int16(clampInt(int32(sample*32768), -32768, 32767))))
	case U32LE:
		binary.LittleEndian.PutUint32(buf, uint32(clampInt64(int64(sample*2147483648)+2147483648, 0, 4294967295)))
	case U32BE:
		binary.BigEndian.PutUint32(buf, uint32(clampInt64(int64(sample*2147483648)+2147483648, 0, 4294967295)))
	case S32LE:
		binary.LittleEndian.PutUint32(buf, uint32(int32(clampInt64(int64(sample*2147483648), -2147483648, 2147483647))))
	case S32BE:
		binary.BigEndian.PutUint32(buf, uint32(int32(clampInt64(int64(sample*2147483648), -2147483648, 2147483647))))
	case FloatLE:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(sample))
	case FloatBE:
		binary.BigEndian.PutUint32(buf, math.Float32bits(sample))
	case Float64LE:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(float64(sample)))
	case Float64BE:
		binary.BigEndian.PutUint64(buf, math.Float64bits(float64(sample)))
	}
}

func clampInt(x, lo, hi int32) int32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampInt64(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ValidNames returns the accepted -f/--format tokens, for usage text.
func ValidNames() []string {
	names := make([]string, 0, len(formatNames))
	for name := range formatNames {
		names = append(names, name)
	}
	return names
}

// JoinValidNames renders ValidNames as a comma-separated list, for
// error messages.
func JoinValidNames() string {
	return strings.Join(ValidNames(), ", ")
}
