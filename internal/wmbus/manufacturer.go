package wmbus

// DecodeManufacturer converts the 2-byte, little-endian manufacturer field
// from a wM-Bus link-layer header into its 3-letter flag-association code
// (e.g. "ALL", "EFE").
func DecodeManufacturer(m [2]byte) string {
	v := uint16(m[1])<<8 | uint16(m[0])

	c1 := byte((v>>10)&0x1F) + 64
	c2 := byte((v>>5)&0x1F) + 64
	c3 := byte(v&0x1F) + 64

	return string([]byte{c1, c2, c3})
}
