// Package regdump parses the CLI's register-configuration surface:
// two-hex-digit byte tokens, --reg-<NAME> field resolution, and a
// full 32-byte --regdump hex string. Every failure here is a
// ConfigError per the taxonomy, never propagated into the core engine
// (its Write is total and silently masks).
package regdump

import (
	"fmt"

	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
)

// ConfigError reports a malformed CLI configuration token: an unknown
// format/engine/register/preset name, malformed hex, or an
// out-of-range value.
type ConfigError struct {
	What  string
	Token string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s %q: %v", e.What, e.Token, e.Err)
	}
	return fmt.Sprintf("config: %s %q", e.What, e.Token)
}

func (e *ConfigError) Unwrap() error { return e.Err }

const hexDigits = "0123456789abcdefABCDEF"

// ParseHex parses a two-hex-digit token into a byte, returning a
// ConfigError on malformed input.
func ParseHex(s string) (byte, error) {
	if len(s) != 2 {
		return 0, &ConfigError{What: "malformed hex byte", Token: s}
	}
	var v byte
	for _, c := range s {
		hi, err := hexNibble(byte(c))
		if err != nil {
			return 0, &ConfigError{What: "malformed hex byte", Token: s, Err: err}
		}
		v = v<<4 | hi
	}
	return v, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
}

// fieldNames maps a --reg-<NAME> flag suffix to its register address,
// mirroring register.Name's reverse direction.
var fieldNames = func() map[string]uint8 {
	m := make(map[string]uint8, register.Count)
	for addr := uint8(0); addr < register.Count; addr++ {
		if name := register.Name(addr); name != "" {
			m[name] = addr
		}
	}
	return m
}()

// FieldByName resolves a --reg-<NAME> flag name to its register
// address.
func FieldByName(name string) (addr uint8, ok bool) {
	addr, ok = fieldNames[name]
	return addr, ok
}

// ParseDump parses exactly register.Count two-hex-digit tokens (as
// produced by splitting a --regdump argument) into a full register
// snapshot, in address order.
func ParseDump(hexTokens []string) ([register.Count]byte, error) {
	var dump [register.Count]byte
	if len(hexTokens) != register.Count {
		return dump, &ConfigError{
			What:  fmt.Sprintf("--regdump requires %d bytes", register.Count),
			Token: fmt.Sprintf("%d tokens", len(hexTokens)),
		}
	}
	for i, tok := range hexTokens {
		v, err := ParseHex(tok)
		if err != nil {
			return dump, err
		}
		dump[i] = v
	}
	return dump, nil
}
