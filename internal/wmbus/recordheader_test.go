package wmbus

import "testing"

func TestParseDIFChainOverflow(t *testing.T) {
	b := make([]byte, 11)
	for i := range b {
		b[i] = 0x80 // MSB always set, chain never terminates
	}
	if _, _, err := parseDIFChain(b); err != ErrInvalidDifChain {
		t.Errorf("err = %v, want ErrInvalidDifChain", err)
	}
}

func TestParseVIFChainOverflow(t *testing.T) {
	b := make([]byte, 11)
	for i := range b {
		b[i] = 0x80
	}
	if _, _, err := parseVIFChain(b); err != ErrInvalidVifChain {
		t.Errorf("err = %v, want ErrInvalidVifChain", err)
	}
}

func TestClassifyDataType(t *testing.T) {
	cases := []struct {
		dif  byte
		want DataType
	}{
		{0x03, DataTypeFixed},
		{0x0D, DataTypeVariable},
		{0x08, DataTypeSelectionForReadout},
		{0x0F, DataTypeSpecialFunction},
	}
	for _, c := range cases {
		chain, _, err := parseDIFChain([]byte{c.dif})
		if err != nil {
			t.Fatalf("parseDIFChain(%x) error: %v", c.dif, err)
		}
		if chain.dataType != c.want {
			t.Errorf("parseDIFChain(%x).dataType = %v, want %v", c.dif, chain.dataType, c.want)
		}
	}
}

func TestSpecialFunctionDIFRange(t *testing.T) {
	for _, b := range []byte{0x0F, 0x1F, 0x2F, 0x7F, 0x3F, 0x50, 0x6F} {
		if !isSpecialFunctionDIF(b) {
			t.Errorf("isSpecialFunctionDIF(%#x) = false, want true", b)
		}
	}
	for _, b := range []byte{0x00, 0x03, 0x0D, 0x70} {
		if isSpecialFunctionDIF(b) {
			t.Errorf("isSpecialFunctionDIF(%#x) = true, want false", b)
		}
	}
}
