package wmbus

import "testing"

func TestClassifyCI(t *testing.T) {
	cases := []struct {
		ci   byte
		want HeaderKind
	}{
		{0x72, HeaderLong},
		{0x7A, HeaderShort},
		{0x69, HeaderNone},
		{0x70, HeaderNone},
		{0xFF, HeaderNone},
	}
	for _, c := range cases {
		if got := ClassifyCI(c.ci); got != c.want {
			t.Errorf("ClassifyCI(%#x) = %v, want %v", c.ci, got, c.want)
		}
	}
}

func TestCILabelManufacturerRange(t *testing.T) {
	for ci := byte(0xA0); ci <= 0xB7; ci++ {
		if got := CILabel(ci); got != "Manufacturer specific Application Layer" {
			t.Errorf("CILabel(%#x) = %q, want manufacturer-specific label", ci, got)
		}
	}
}

func TestCILabelUnknown(t *testing.T) {
	if got := CILabel(0xC5); got != "unknown CI value" {
		t.Errorf("CILabel(0xC5) = %q, want %q", got, "unknown CI value")
	}
}
