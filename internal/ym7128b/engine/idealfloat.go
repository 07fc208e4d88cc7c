package engine

import (
	"github.com/surroundproc/ym7128b/internal/ym7128b/coeff"
	"github.com/surroundproc/ym7128b/internal/ym7128b/delay"
	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
)

// IdealFloat is the floating-point engine with a caller-configurable
// operating rate (spec.md §4.6 row 3). Taps are addressed at
// fractional sample positions via linear interpolation instead of
// being rounded to the nearest integer sample, and output is not
// oversampled since the engine already runs at the target rate.
type IdealFloat struct {
	Gate
	regs register.File
	line *delay.FloatLine

	rate  float64
	fracs [coeff.NumTaps]float64

	lpPrev float32
}

// NewIdealFloat constructs an IdealFloat engine. Setup must be called
// with a valid rate before Process is used; until then Process treats
// the engine as if stopped.
func NewIdealFloat() *IdealFloat {
	return &IdealFloat{}
}

// Setup (re)allocates the delay line and tap table for the given
// sample rate, in Hz. It returns ErrInvalidRate for a non-positive
// rate, wrapped in an AllocError naming the failed operation.
func (e *IdealFloat) Setup(rate float64) error {
	if rate <= 0 {
		return &AllocError{Op: "IdealFloat.Setup", Err: ErrInvalidRate}
	}
	_, fracs := coeff.ScaledTapDelay(rate)
	maxDelay := fracs[coeff.NumTaps-1]
	capacity := int(maxDelay) + 2 // +1 for ceil, +1 for ReadFrac's d+1 lookahead
	e.line = delay.NewFloatLine(capacity)
	e.rate = rate
	e.fracs = fracs
	return nil
}

// Reset zeros all mutable state without affecting the Start/Stop gate
// or the rate/tap configuration set by Setup.
func (e *IdealFloat) Reset() {
	e.regs.Reset()
	if e.line != nil {
		e.line.Reset()
	}
	e.lpPrev = 0
}

// Write stores value (masked to its field width) at addr.
func (e *IdealFloat) Write(addr uint8, value uint8) { e.regs.Write(addr, value) }

// Read returns the stored register byte at addr.
func (e *IdealFloat) Read(addr uint8) uint8 { return e.regs.Read(addr) }

// Process consumes one input tick and emits one stereo pair. While the
// gate is stopped, or before Setup has been called, output is silence
// and no state advances.
func (e *IdealFloat) Process(in ProcessIn) ProcessOut {
	if !e.Running() || e.line == nil {
		return ProcessOut{N: 1}
	}

	x := in.Mono()

	t0 := e.fracs[e.regs.Read(register.T0)]
	fb := e.line.ReadFrac(t0)

	c0 := coeff.GainDecodeF(e.regs.Read(register.C0))
	c1 := coeff.GainDecodeF(e.regs.Read(register.C1))
	ylp := fb*c0 + e.lpPrev*c1
	e.lpPrev = ylp

	vc := coeff.GainDecodeF(e.regs.Read(register.VC))
	vcFiltered := ylp * vc

	vm := coeff.GainDecodeF(e.regs.Read(register.VM))
	mixed := x*vm + vcFiltered
	e.line.Write(mixed)

	var left, right float32
	tapAddrs := [8]uint8{register.T1, register.T2, register.T3, register.T4, register.T5, register.T6, register.T7, register.T8}
	for k := 0; k < 8; k++ {
		sample := e.line.ReadFrac(e.fracs[e.regs.Read(tapAddrs[k])])
		gl := coeff.GainDecodeF(e.regs.Read(register.GL1 + uint8(k)))
		gr := coeff.GainDecodeF(e.regs.Read(register.GR1 + uint8(k)))
		left += sample * gl
		right += sample * gr
	}

	vl := coeff.GainDecodeF(e.regs.Read(register.VL))
	vr := coeff.GainDecodeF(e.regs.Read(register.VR))

	return ProcessOut{
		Left:  [2]float32{left * vl},
		Right: [2]float32{right * vr},
		N:     1,
	}
}
