package wmbus

import "testing"

func TestDecodeBCD(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint64
	}{
		{"zero", []byte{0x00}, 0},
		{"single byte", []byte{0x12}, 12},
		{"four bytes", []byte{0x12, 0x34, 0x56, 0x78}, 78563412},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := decodeBCD(c.in); got != c.want {
				t.Errorf("decodeBCD(%x) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestDecodeSignedLE(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want int64
	}{
		{"positive 2 byte", []byte{0x64, 0x00}, 100},
		{"negative 2 byte", []byte{0x9C, 0xFF}, -100},
		{"zero", []byte{0x00, 0x00}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := decodeSignedLE(c.in); got != c.want {
				t.Errorf("decodeSignedLE(%x) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestDecodeFloat32LE(t *testing.T) {
	// 1.0f = 0x3F800000, little-endian bytes 00 00 80 3F
	got := decodeFloat32LE([]byte{0x00, 0x00, 0x80, 0x3F})
	if got != 1.0 {
		t.Errorf("decodeFloat32LE = %v, want 1.0", got)
	}
}
