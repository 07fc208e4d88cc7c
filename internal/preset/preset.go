// Package preset holds the --preset CLI flag's named register
// configurations: plausible, datasheet-vocabulary surround settings
// built from the same gain/tap fields the core engine decodes,
// modelled on the pack's named-configuration tables (psg_constants.go,
// sid_constants.go both map a name to a fixed register/parameter set).
package preset

import "github.com/surroundproc/ym7128b/internal/ym7128b/register"

// Preset is one named, immutable register configuration.
type Preset struct {
	Name        string
	Description string
	Registers   [register.Count]byte
}

func regs(fields map[uint8]byte) [register.Count]byte {
	var r [register.Count]byte
	for addr, v := range fields {
		r[addr] = v & register.Mask(addr)
	}
	return r
}

// Table holds every named preset, keyed by name.
var Table = map[string]Preset{
	"direct": {
		Name:        "direct",
		Description: "bypass: input routed straight to both outputs through a single zero-delay tap",
		Registers: regs(map[uint8]byte{
			register.GL1: 0x3F, register.GR1: 0x3F,
			register.VM: 0x3F, register.VL: 0x3F, register.VR: 0x3F,
			register.T1: 0x00,
		}),
	},
	"small_room": {
		Name:        "small_room",
		Description: "short single reflection, light feedback",
		Registers: regs(map[uint8]byte{
			register.VM: 0x30, register.VL: 0x30, register.VR: 0x30,
			register.GL1: 0x20, register.GR1: 0x20, register.T1: 0x03,
			register.VC: 0x10, register.C0: 0x10, register.T0: 0x02,
		}),
	},
	"medium_room": {
		Name:        "medium_room",
		Description: "two early reflections, moderate feedback",
		Registers: regs(map[uint8]byte{
			register.VM: 0x30, register.VL: 0x2E, register.VR: 0x2E,
			register.GL1: 0x22, register.GR1: 0x1E, register.T1: 0x05,
			register.GL2: 0x18, register.GR2: 0x1C, register.T2: 0x08,
			register.VC: 0x16, register.C0: 0x14, register.T0: 0x03,
		}),
	},
	"large_room": {
		Name:        "large_room",
		Description: "three reflections spread over a longer window",
		Registers: regs(map[uint8]byte{
			register.VM: 0x2C, register.VL: 0x2C, register.VR: 0x2C,
			register.GL1: 0x20, register.GR1: 0x1A, register.T1: 0x07,
			register.GL2: 0x1A, register.GR2: 0x1E, register.T2: 0x0B,
			register.GL3: 0x14, register.GR3: 0x14, register.T3: 0x0F,
			register.VC: 0x1A, register.C0: 0x18, register.T0: 0x04,
		}),
	},
	"hall_small": {
		Name:        "hall_small",
		Description: "dense early taps, gentle low-pass feedback",
		Registers: regs(map[uint8]byte{
			register.VM: 0x28, register.VL: 0x2A, register.VR: 0x2A,
			register.GL1: 0x1C, register.GR1: 0x16, register.T1: 0x08,
			register.GL2: 0x16, register.GR2: 0x1C, register.T2: 0x0C,
			register.GL3: 0x12, register.GR3: 0x12, register.T3: 0x10,
			register.VC: 0x20, register.C0: 0x1C, register.C1: 0x08, register.T0: 0x06,
		}),
	},
	"hall_large": {
		Name:        "hall_large",
		Description: "long reverberant tail across four taps",
		Registers: regs(map[uint8]byte{
			register.VM: 0x24, register.VL: 0x26, register.VR: 0x26,
			register.GL1: 0x18, register.GR1: 0x10, register.T1: 0x09,
			register.GL2: 0x14, register.GR2: 0x18, register.T2: 0x0D,
			register.GL3: 0x10, register.GR3: 0x14, register.T3: 0x12,
			register.GL4: 0x0C, register.GR4: 0x10, register.T4: 0x16,
			register.VC: 0x24, register.C0: 0x20, register.C1: 0x0C, register.T0: 0x08,
		}),
	},
	"cathedral": {
		Name:        "cathedral",
		Description: "the longest tail, heavy low-pass-filtered feedback",
		Registers: regs(map[uint8]byte{
			register.VM: 0x20, register.VL: 0x24, register.VR: 0x24,
			register.GL1: 0x10, register.GR1: 0x0C, register.T1: 0x0C,
			register.GL2: 0x0E, register.GR2: 0x12, register.T2: 0x12,
			register.GL3: 0x0C, register.GR3: 0x10, register.T3: 0x18,
			register.GL4: 0x0A, register.GR4: 0x0E, register.T4: 0x1D,
			register.VC: 0x2A, register.C0: 0x26, register.C1: 0x14, register.T0: 0x0A,
		}),
	},
	"plate": {
		Name:        "plate",
		Description: "dense, metallic-sounding early reflections with little feedback",
		Registers: regs(map[uint8]byte{
			register.VM: 0x2E, register.VL: 0x2C, register.VR: 0x2C,
			register.GL1: 0x1A, register.GR1: 0x1A, register.T1: 0x04,
			register.GL2: 0x1A, register.GR2: 0x1A, register.T2: 0x06,
			register.GL3: 0x16, register.GR3: 0x16, register.T3: 0x09,
			register.VC: 0x0C, register.C0: 0x0C, register.T0: 0x02,
		}),
	},
	"chamber": {
		Name:        "chamber",
		Description: "intimate reflections, asymmetric left/right balance",
		Registers: regs(map[uint8]byte{
			register.VM: 0x2A, register.VL: 0x28, register.VR: 0x26,
			register.GL1: 0x1E, register.GR1: 0x14, register.T1: 0x05,
			register.GL2: 0x14, register.GR2: 0x1E, register.T2: 0x09,
			register.VC: 0x12, register.C0: 0x10, register.T0: 0x02,
		}),
	},
	"slap_delay": {
		Name:        "slap_delay",
		Description: "single distinct repeat, no feedback",
		Registers: regs(map[uint8]byte{
			register.VM: 0x30, register.VL: 0x2E, register.VR: 0x2E,
			register.GL1: 0x2A, register.GR1: 0x2A, register.T1: 0x0A,
		}),
	},
	"echo_short": {
		Name:        "echo_short",
		Description: "short repeating echo with mild decay",
		Registers: regs(map[uint8]byte{
			register.VM: 0x2E, register.VL: 0x2C, register.VR: 0x2C,
			register.GL1: 0x22, register.GR1: 0x22, register.T1: 0x0D,
			register.VC: 0x1C, register.C0: 0x18, register.T0: 0x0D,
		}),
	},
	"echo_long": {
		Name:        "echo_long",
		Description: "long repeating echo with slow decay",
		Registers: regs(map[uint8]byte{
			register.VM: 0x2A, register.VL: 0x28, register.VR: 0x28,
			register.GL1: 0x1E, register.GR1: 0x1E, register.T1: 0x1A,
			register.VC: 0x24, register.C0: 0x20, register.T0: 0x1A,
		}),
	},
	"stadium": {
		Name:        "stadium",
		Description: "very long, diffuse, heavily filtered tail",
		Registers: regs(map[uint8]byte{
			register.VM: 0x1E, register.VL: 0x22, register.VR: 0x22,
			register.GL1: 0x0C, register.GR1: 0x0A, register.T1: 0x0E,
			register.GL2: 0x0A, register.GR2: 0x0C, register.T2: 0x16,
			register.GL3: 0x08, register.GR3: 0x0A, register.T3: 0x1E,
			register.VC: 0x2C, register.C0: 0x28, register.C1: 0x18, register.T0: 0x0C,
		}),
	},
	"living_room": {
		Name:        "living_room",
		Description: "small, heavily damped space",
		Registers: regs(map[uint8]byte{
			register.VM: 0x32, register.VL: 0x30, register.VR: 0x30,
			register.GL1: 0x14, register.GR1: 0x14, register.T1: 0x02,
			register.VC: 0x08, register.C0: 0x08, register.T0: 0x01,
		}),
	},
	"vocal_plate": {
		Name:        "vocal_plate",
		Description: "bright plate tuned for vocal sends",
		Registers: regs(map[uint8]byte{
			register.VM: 0x2C, register.VL: 0x2A, register.VR: 0x2A,
			register.GL1: 0x1C, register.GR1: 0x1C, register.T1: 0x04,
			register.GL2: 0x14, register.GR2: 0x14, register.T2: 0x07,
			register.VC: 0x0E, register.C0: 0x0E, register.T0: 0x02,
		}),
	},
	"vocal_hall": {
		Name:        "vocal_hall",
		Description: "warmer hall tuned for vocal sends",
		Registers: regs(map[uint8]byte{
			register.VM: 0x28, register.VL: 0x28, register.VR: 0x28,
			register.GL1: 0x18, register.GR1: 0x14, register.T1: 0x07,
			register.GL2: 0x14, register.GR2: 0x18, register.T2: 0x0B,
			register.VC: 0x1E, register.C0: 0x1A, register.C1: 0x06, register.T0: 0x05,
		}),
	},
	"bright_room": {
		Name:        "bright_room",
		Description: "short decay, minimal low-pass damping on the feedback path",
		Registers: regs(map[uint8]byte{
			register.VM: 0x30, register.VL: 0x2E, register.VR: 0x2E,
			register.GL1: 0x20, register.GR1: 0x20, register.T1: 0x04,
			register.VC: 0x14, register.C0: 0x08, register.T0: 0x02,
		}),
	},
	"warm_hall": {
		Name:        "warm_hall",
		Description: "long decay, heavy low-pass damping on the feedback path",
		Registers: regs(map[uint8]byte{
			register.VM: 0x26, register.VL: 0x26, register.VR: 0x26,
			register.GL1: 0x16, register.GR1: 0x12, register.T1: 0x0A,
			register.GL2: 0x12, register.GR2: 0x16, register.T2: 0x10,
			register.VC: 0x22, register.C0: 0x1E, register.C1: 0x10, register.T0: 0x07,
		}),
	},
	"spacious": {
		Name:        "spacious",
		Description: "wide stereo image from strongly asymmetric left/right taps",
		Registers: regs(map[uint8]byte{
			register.VM: 0x28, register.VL: 0x28, register.VR: 0x28,
			register.GL1: 0x24, register.GR1: 0x08, register.T1: 0x06,
			register.GL2: 0x08, register.GR2: 0x24, register.T2: 0x0A,
			register.VC: 0x18, register.C0: 0x16, register.T0: 0x04,
		}),
	},
}

// Names returns every preset name, for usage text.
func Names() []string {
	names := make([]string, 0, len(Table))
	for name := range Table {
		names = append(names, name)
	}
	return names
}
