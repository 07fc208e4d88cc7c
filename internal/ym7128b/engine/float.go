package engine

import (
	"github.com/surroundproc/ym7128b/internal/ym7128b/coeff"
	"github.com/surroundproc/ym7128b/internal/ym7128b/delay"
	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
)

// Float is the floating-point engine running at the chip's native
// rate with 2x oversampled output (spec.md §4.6 row 2). It shares
// Fixed's signal graph and oversampling shape but carries samples as
// unclamped float32 instead of saturating fixed-point.
type Float struct {
	Gate
	regs register.File
	line *delay.FloatLine

	lpPrev       float32
	prevRawLeft  float32
	prevRawRight float32
}

// NewFloat constructs a Float engine sized for the chip's native-rate
// delay line.
func NewFloat() *Float {
	e := &Float{}
	e.line = delay.NewFloatLine(coeff.TapDelay[coeff.NumTaps-1] + 1)
	return e
}

// Reset zeros all mutable state without affecting the Start/Stop gate.
func (e *Float) Reset() {
	e.regs.Reset()
	e.line.Reset()
	e.lpPrev = 0
	e.prevRawLeft = 0
	e.prevRawRight = 0
}

// Write stores value (masked to its field width) at addr.
func (e *Float) Write(addr uint8, value uint8) { e.regs.Write(addr, value) }

// Read returns the stored register byte at addr.
func (e *Float) Read(addr uint8) uint8 { return e.regs.Read(addr) }

// Process consumes one input tick and emits two oversampled stereo
// pairs. While the gate is stopped, output is silence and no state
// advances.
func (e *Float) Process(in ProcessIn) ProcessOut {
	if !e.Running() {
		return ProcessOut{N: 2}
	}

	x := in.Mono()

	t0 := coeff.TapDelay[e.regs.Read(register.T0)]
	fb := e.line.Read(t0)

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
		sample := e.line.Read(coeff.TapDelay[e.regs.Read(tapAddrs[k])])
		gl := coeff.GainDecodeF(e.regs.Read(register.GL1 + uint8(k)))
		gr := coeff.GainDecodeF(e.regs.Read(register.GR1 + uint8(k)))
		left += sample * gl
		right += sample * gr
	}

	vl := coeff.GainDecodeF(e.regs.Read(register.VL))
	vr := coeff.GainDecodeF(e.regs.Read(register.VR))

	l0 := left * vl
	r0 := right * vr

	avgLeft := (left + e.prevRawLeft) / 2
	avgRight := (right + e.prevRawRight) / 2
	l1 := avgLeft * vl
	r1 := avgRight * vr

	e.prevRawLeft = left
	e.prevRawRight = right

	return ProcessOut{
		Left:  [2]float32{l0, l1},
		Right: [2]float32{r0, r1},
		N:     2,
	}
}
