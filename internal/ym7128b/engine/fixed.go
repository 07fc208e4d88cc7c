package engine

import (
	"github.com/surroundproc/ym7128b/internal/ym7128b/coeff"
	"github.com/surroundproc/ym7128b/internal/ym7128b/delay"
	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
	"github.com/surroundproc/ym7128b/internal/ym7128b/satmath"
)

// fullScale converts between the engine's internal signed 14-bit
// fixed-point samples and the [-1, 1) float32 samples Process accepts
// and returns at the external interface boundary.
const fullScale = 8192.0

// Fixed is the bit-exact, saturating fixed-point engine running at the
// chip's native rate with 2x oversampled output (spec.md §4.6 row 1).
type Fixed struct {
	Gate
	regs register.File
	line *delay.Line

	lpPrev       int16 // y_lp[n-1]
	prevRawLeft  int16 // left accumulator from the previous input tick
	prevRawRight int16
}

// NewFixed constructs a Fixed engine sized for the chip's native-rate
// delay line.
func NewFixed() *Fixed {
	e := &Fixed{}
	e.line = delay.NewLine(coeff.TapDelay[coeff.NumTaps-1] + 1)
	return e
}

// Reset zeros all mutable state (registers, delay line, filter and
// oversample history) without affecting the Start/Stop gate.
func (e *Fixed) Reset() {
	e.regs.Reset()
	e.line.Reset()
	e.lpPrev = 0
	e.prevRawLeft = 0
	e.prevRawRight = 0
}

// Write stores value (masked to its field width) at addr. Always
// total: out-of-range addresses are silently ignored.
func (e *Fixed) Write(addr uint8, value uint8) { e.regs.Write(addr, value) }

// Read returns the stored register byte at addr.
func (e *Fixed) Read(addr uint8) uint8 { return e.regs.Read(addr) }

// Process consumes one input tick and emits two oversampled stereo
// pairs. While the gate is stopped, output is silence and no state
// advances.
func (e *Fixed) Process(in ProcessIn) ProcessOut {
	if !e.Running() {
		return ProcessOut{N: 2}
	}

	x := toFixed(in.Mono())

	t0 := coeff.TapDelay[e.regs.Read(register.T0)]
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
		sample := e.line.Read(coeff.TapDelay[e.regs.Read(tapAddrs[k])])
		gl := int16(coeff.GainDecode(e.regs.Read(register.GL1 + uint8(k))))
		gr := int16(coeff.GainDecode(e.regs.Read(register.GR1 + uint8(k))))
		left = satmath.AddSat(left, satmath.MulSat(sample, gl))
		right = satmath.AddSat(right, satmath.MulSat(sample, gr))
	}

	vl := int16(coeff.GainDecode(e.regs.Read(register.VL)))
	vr := int16(coeff.GainDecode(e.regs.Read(register.VR)))

	l0 := satmath.MulSat(left, vl)
	r0 := satmath.MulSat(right, vr)

	avgLeft := int16((int32(left) + int32(e.prevRawLeft)) / 2)
	avgRight := int16((int32(right) + int32(e.prevRawRight)) / 2)
	l1 := satmath.MulSat(avgLeft, vl)
	r1 := satmath.MulSat(avgRight, vr)

	e.prevRawLeft = left
	e.prevRawRight = right

	return ProcessOut{
		Left:  [2]float32{fromFixed(l0), fromFixed(l1)},
		Right: [2]float32{fromFixed(r0), fromFixed(r1)},
		N:     2,
	}
}

// toFixed converts an external float32 sample in [-1, 1) to the
// engine's internal signed 14-bit fixed-point range, saturating.
func toFixed(f float32) int16 {
	return satmath.Sat(int32(f * fullScale))
}

// fromFixed converts an internal signed 14-bit fixed-point sample back
// to an external float32 sample in [-1, 1).
func fromFixed(x int16) float32 {
	return float32(x) / fullScale
}
