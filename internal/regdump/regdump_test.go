package regdump

import (
	"errors"
	"testing"

	"github.com/surroundproc/ym7128b/internal/ym7128b/register"
)

func TestParseHexValid(t *testing.T) {
	cases := map[string]byte{"00": 0x00, "ff": 0xFF, "FF": 0xFF, "2a": 0x2A, "1F": 0x1F}
	for in, want := range cases {
		got, err := ParseHex(in)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseHex(%q) = 0x%02X, want 0x%02X", in, got, want)
		}
	}
}

func TestParseHexMalformed(t *testing.T) {
	cases := []string{"", "1", "123", "zz", "g1"}
	for _, in := range cases {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q): expected error", in)
		} else {
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("ParseHex(%q): error is not a ConfigError: %v", in, err)
			}
		}
	}
}

func TestFieldByNameAllRegisters(t *testing.T) {
	for addr := uint8(0); addr <= register.T8; addr++ {
		name := register.Name(addr)
		got, ok := FieldByName(name)
		if !ok || got != addr {
			t.Errorf("FieldByName(%q) = %d, %v, want %d, true", name, got, ok, addr)
		}
	}
	if _, ok := FieldByName("NOPE"); ok {
		t.Error("FieldByName(\"NOPE\") should not resolve")
	}
	if _, ok := FieldByName(""); ok {
		t.Error("FieldByName(\"\") should not resolve (unused addresses have no name)")
	}
}

func TestParseDumpRoundTrip(t *testing.T) {
	tokens := make([]string, register.Count)
	for i := range tokens {
		tokens[i] = "2a"
	}
	dump, err := ParseDump(tokens)
	if err != nil {
		t.Fatalf("ParseDump: %v", err)
	}
	for i, v := range dump {
		if v != 0x2A {
			t.Errorf("dump[%d] = 0x%02X, want 0x2A", i, v)
		}
	}
}

func TestParseDumpWrongLength(t *testing.T) {
	if _, err := ParseDump([]string{"00", "01"}); err == nil {
		t.Error("expected error for wrong token count")
	}
}

func TestParseDumpPropagatesHexError(t *testing.T) {
	tokens := make([]string, register.Count)
	for i := range tokens {
		tokens[i] = "00"
	}
	tokens[5] = "zz"
	if _, err := ParseDump(tokens); err == nil {
		t.Error("expected error for malformed token")
	}
}
