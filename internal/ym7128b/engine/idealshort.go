package engine

import (
	"github.com/surroundproc/ym7128b/internal/ym7128b/coeff"
	"github.com/surroundproc/ym7128b/internal/ym7128b/delay"
	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
	"github.com/surroundproc/ym7128b/internal/ym7128b/satmath"
)

// IdealShort is the saturating fixed-point engine with a
// caller-configurable operating rate (spec.md §4.6 row 4). Taps are
// addressed at the nearest whole sample for the rescaled rate rather
// than interpolated, and output is not oversampled.
type IdealShort struct {
	Gate
	regs register.File
	line *delay.Line

	rate  float64
	ticks [coeff.NumTaps]int

	lpPrev int16
}

// NewIdealShort constructs an IdealShort engine. Setup must be called
// with a valid rate before Process is used; until then Process treats
// the engine as if stopped.
func NewIdealShort() *IdealShort {
	return &IdealShort{}
}

// Setup (re)allocates the delay line and tap table for the given
// sample rate, in Hz. It returns ErrInvalidRate for a non-positive
// rate, wrapped in an AllocError naming the failed operation.
func (e *IdealShort) Setup(rate float64) error {
	if rate <= 0 {
		return &AllocError{Op: "IdealShort.Setup", Err: ErrInvalidRate}
	}
	ints, _ := coeff.ScaledTapDelay(rate)
	e.line = delay.NewLine(ints[coeff.NumTaps-1] + 1)
	e.rate = rate
	e.ticks = ints
	return nil
}

// Reset zeros all mutable state without affecting the Start/Stop gate
// or the rate/tap configuration set by Setup.
func (e *IdealShort) Reset() {
	e.regs.Reset()
	if e.line != nil {
		e.line.Reset()
	}
	e.lpPrev = 0
}

// Write stores value (masked to its field width) at addr.
func (e *IdealShort) Write(addr uint8, value uint8) { e.regs.Write(addr, value) }

// Read returns the stored register byte at addr.
func (e *IdealShort) Read(addr uint8) uint8 { return e.regs.Read(addr) }

// Process consumes one input tick and emits one stereo pair. While the
// gate is stopped, or before Setup has been called, output is silence
// and no state advances.
func (e *IdealShort) Process(in ProcessIn) ProcessOut {
	if !e.Running() || e.line == nil {
		return ProcessOut{N: 1}
	}

	x := toFixed(in.Mono())

	t0 := e.ticks[e.regs.Read(register.T0)]
	fb := e.line.Read(t0)

	c0 := int16(coeff.GainDecode(e.regs.Read(register.C0)))
	c1 := int16(coeff.GainDecode(e.regs.Read(register.C1)))
	ylp := satmath.AddSat(satmath.MulSat(fb, c0), satmath.MulSat(e.lpPrev, c1))
	e.lpPrev = ylp

	vc := int16(coeff.GainDecode(e.regs.Read(register.VC)))
	vcFiltered := satmath.MulSat(ylp, vc)

	vm := int16(coeff.GainDecode(e.regs.Read(register.VM)))
	mixed := satmath.AddSat(satmath.MulSat(x, vm), vcFiltered)
	e.line.Write(mixed)

	var left, right int16
	tapAddrs := [8]uint8{register.T1, register.T2, register.T3, register.T4, register.T5, register.T6, register.T7, register.T8}
	for k := 0; k < 8; k++ {
		sample := e.line.Read(e.ticks[e.regs.Read(tapAddrs[k])])
		gl := int16(coeff.GainDecode(e.regs.Read(register.GL1 + uint8(k))))
		gr := int16(coeff.GainDecode(e.regs.Read(register.GR1 + uint8(k))))
		left = satmath.AddSat(left, satmath.MulSat(sample, gl))
		right = satmath.AddSat(right, satmath.MulSat(sample, gr))
	}

	vl := int16(coeff.GainDecode(e.regs.Read(register.VL)))
	vr := int16(coeff.GainDecode(e.regs.Read(register.VR)))

	l0 := satmath.MulSat(left, vl)
	r0 := satmath.MulSat(right, vr)

	return ProcessOut{
		Left:  [2]float32{fromFixed(l0)},
		Right: [2]float32{fromFixed(r0)},
		N:     1,
	}
}
