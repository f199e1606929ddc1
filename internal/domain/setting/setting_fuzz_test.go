package setting

import (
	"testing"
)

// FuzzSetRawValueNumber checks that arbitrary text never lands in a number
// setting unparsed: either SetRawValue rejects it, or the stored value reads
// back as the same decimal.
func FuzzSetRawValueNumber(f *testing.F) {
	seeds := []string{
		"",
		"0",
		"1",
		"-1",
		"20",
		"4.50",
		"-0.001",
		"2147483647",
		"99999999999999999999999999999",
		"abc",
		"12abc",
		"  123  ",
		"0x1F",
		"1e10",
		"NaN",
		"Inf",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		s, err := NewPlatformSetting("fuzz", "fuzz_number", ValueTypeNumber, "")
		if err != nil {
			t.Fatalf("NewPlatformSetting failed: %v", err)
		}

		if err := s.SetRawValue(input, 1); err != nil {
			// rejected input must leave the setting untouched
			if s.HasValue() {
				t.Errorf("SetRawValue(%q) failed but stored %q", input, s.Value())
			}
			return
		}

		got, err := s.GetNumberValue()
		if err != nil {
			t.Errorf("accepted %q but GetNumberValue failed: %v", input, err)
			return
		}
		if got.String() != s.Value() {
			t.Errorf("stored %q reads back as %q", s.Value(), got.String())
		}
	})
}

// FuzzSetRawValueBoolean checks the boolean path the same way.
func FuzzSetRawValueBoolean(f *testing.F) {
	seeds := []string{
		"", "true", "false", "True", "False", "TRUE", "FALSE",
		"1", "0", "t", "f", "T", "F", "yes", "no", "on", "off", "2",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		s, err := NewPlatformSetting("fuzz", "fuzz_bool", ValueTypeBoolean, "")
		if err != nil {
			t.Fatalf("NewPlatformSetting failed: %v", err)
		}

		if err := s.SetRawValue(input, 1); err != nil {
			return
		}

		if _, err := s.GetBoolValue(); err != nil {
			t.Errorf("accepted %q but GetBoolValue failed: %v", input, err)
		}
	})
}
