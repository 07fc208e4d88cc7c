// Package dbvol converts the CLI's --dry/--wet decibel arguments into
// a linear gain multiplier, generalizing the step-table gain
// conversions the pack's chip engines use (sid_engine.go, psg_engine.go
// both decode a small integer register field through a volume table)
// into a closed-form function over the CLI's continuous dB range.
package dbvol

import "math"

// MuteThresholdDB is the magnitude beyond which a dB value is treated
// as fully muted rather than converted.
const MuteThresholdDB = 128

// ToLinear converts db to a linear amplitude multiplier: 10^(db/20).
// Any db with |db| >= MuteThresholdDB returns exactly 0.
func ToLinear(db float64) float32 {
	if db <= -MuteThresholdDB || db >= MuteThresholdDB {
		return 0
	}
	return float32(math.Pow(10, db/20))
}
