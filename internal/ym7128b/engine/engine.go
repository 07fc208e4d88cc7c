// Package engine implements the four YM7128B chip engine variants —
// Fixed, Float, IdealFloat, and IdealShort — behind a single
// Processor interface, per the "clean re-architecture" design note in
// spec.md §9. All four share the same signal-flow graph (spec.md
// §4.4): a feedback tap through a one-pole low-pass filter and VC
// gain, input mixing into the delay line, eight GL/GR tap reads
// summed into a stereo pair, and VL/VR output gain. They differ only
// in numeric type, operating rate, and oversampling.
package engine

import (
	"errors"
	"fmt"
)

// ProcessIn is one input tick. Both channels are averaged into the
// mono sample the processing graph operates on (see Mono); callers
// that only have mono input set both channels equal.
type ProcessIn struct {
	Input [2]float32
}

// Mono averages the two input channels into the single sample the
// processing graph operates on.
func (p ProcessIn) Mono() float32 {
	return (p.Input[0] + p.Input[1]) / 2
}

// ProcessOut is one input tick's worth of stereo output. N is the
// number of valid (Left[i], Right[i]) pairs: 2 for the oversampled
// Fixed/Float engines, 1 for the Ideal variants.
type ProcessOut struct {
	Left  [2]float32
	Right [2]float32
	N     int
}

// Processor is the shared surface all four engine variants implement,
// exactly the seven operations spec.md §6 lists (Ctor/Dtor fold into
// Go's zero-value construction and garbage collection).
type Processor interface {
	Reset()
	Start()
	Stop()
	Write(addr uint8, value uint8)
	Read(addr uint8) uint8
	Process(in ProcessIn) ProcessOut
}

// Gate is the embeddable Start/Stop lifecycle flag spec.md §4.4
// describes: Process is a no-op while the gate is not running, and
// Reset never touches it.
type Gate struct {
	running bool
}

// Start enables Process output.
func (g *Gate) Start() { g.running = true }

// Stop disables Process output; Process then returns silence without
// advancing any engine state.
func (g *Gate) Stop() { g.running = false }

// Running reports whether the gate currently allows Process to run.
func (g *Gate) Running() bool { return g.running }

// ErrInvalidRate is returned by Setup on the Ideal variants when given
// a non-positive operating rate.
var ErrInvalidRate = errors.New("ym7128b: invalid sample rate")

// AllocError reports a delay buffer allocation failure in Setup or
// construction, per spec.md §7.
type AllocError struct {
	Op  string
	Err error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("ym7128b: %s: %v", e.Op, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }
