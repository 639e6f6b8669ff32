package wmbus

// ShortHeader is the 4-byte wM-Bus transport-layer header: access number,
// status byte, and the 2-byte configuration word.
type ShortHeader struct {
	AccessNr      byte
	Status        byte
	Configuration [2]byte
}

// parseShortHeader reads a 4-byte short transport header. Configuration
// bytes arrive little-endian on the wire and are swapped here so that
// Configuration[0] carries the mode/accessibility bits.
func parseShortHeader(b []byte) ShortHeader {
	return ShortHeader{
		AccessNr:      b[0],
		Status:        b[1],
		Configuration: [2]byte{b[3], b[2]},
	}
}

// EncryptionMode returns the mode number from the low nibble of the
// configuration word's first byte (prEN 13757-3).
func (h ShortHeader) EncryptionMode() byte {
	return h.Configuration[0] & 0x0F
}

// EncryptionModeName returns the speaking name for the encryption mode.
func (h ShortHeader) EncryptionModeName() string {
	switch mode := h.EncryptionMode(); {
	case mode == 0:
		return "No encryption used"
	case mode == 1 || mode >= 6:
		return "Reserved"
	default:
		return map[byte]string{
			2: "DES encryption with CBC; IV is zero (deprecated)",
			3: "DES encryption with CBC; IV is not zero (deprecated)",
			4: "AES encryption with CBC; IV is zero",
			5: "AES encryption with CBC; IV is not zero",
		}[mode]
	}
}

// IsEncrypted reports whether the configuration word signals any
// encryption mode other than 0.
func (h ShortHeader) IsEncrypted() bool {
	return h.EncryptionMode() != 0
}

// HasErrors reports whether the status byte flags an error or alarm
// condition.
func (h ShortHeader) HasErrors() bool {
	return h.Status&0xC0 != 0
}

// Accessibility describes the sending device's accessibility window, from
// the top two bits of the configuration word's first byte.
func (h ShortHeader) Accessibility() string {
	switch h.Configuration[0] & 0xC0 {
	case 0x00:
		return "No access"
	case 0x40:
		return "Temporary no access"
	case 0x80:
		return "Limited access"
	case 0xC0:
		return "Unlimited access"
	default:
		return "unknown accessibility"
	}
}

// LongHeader is the 12-byte wM-Bus transport-layer header: device identity
// fields followed by an embedded ShortHeader.
type LongHeader struct {
	ShortHeader
	Identification [4]byte
	Manufacturer   [2]byte
	Version        byte
	DeviceType     byte
}

// parseLongHeader reads a 12-byte long transport header.
func parseLongHeader(b []byte) LongHeader {
	var h LongHeader
	copy(h.Identification[:], b[0:4])
	copy(h.Manufacturer[:], b[4:6])
	h.Version = b[6]
	h.DeviceType = b[7]
	h.ShortHeader = parseShortHeader(b[8:12])
	return h
}

// Header is the tagged-union HeaderVariant from the data model: at most
// one of Short or Long is populated, selected by Kind.
type Header struct {
	Kind  HeaderKind
	Short ShortHeader
	Long  LongHeader
}

// shortHeader returns the embedded ShortHeader regardless of Kind, or
// false if the header carries no transport layer at all.
func (h Header) shortHeader() (ShortHeader, bool) {
	switch h.Kind {
	case HeaderShort:
		return h.Short, true
	case HeaderLong:
		return h.Long.ShortHeader, true
	default:
		return ShortHeader{}, false
	}
}
