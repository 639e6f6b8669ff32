package wmbus

import (
	"fmt"
	"log"
)

// Frame is a fully parsed wM-Bus datagram: link-layer fields, the
// transport-layer header selected by the CI byte, and the decoded
// variable data records.
type Frame struct {
	Length         byte
	Control        byte
	Manufacturer   [2]byte
	Address        [6]byte
	CI             byte
	Header         Header
	Records        []Record
	Encrypted      bool
	Decrypted      bool
	LengthMismatch bool
}

// Config tunes frame parsing behavior that the wire format leaves
// implementation-defined. Strict escalates a length-field mismatch from
// a reported warning into a hard error.
type Config struct {
	Strict bool
}

// deviceID reverses a link-layer address's first four bytes
// (little-endian on the wire) into natural byte order, the key the
// process-wide key table is indexed by.
func deviceID(address [6]byte) [4]byte {
	return [4]byte{address[3], address[2], address[1], address[0]}
}

// Parse decodes a single wM-Bus datagram. buf is the complete frame
// including its leading length byte. keys resolves AES keys for
// encrypted frames; it may be nil if no frame in the batch is encrypted.
func Parse(buf []byte, keys KeyLookup, cfg Config) (*Frame, error) {
	if len(buf) < 1 || buf[0] < 11 {
		return nil, ErrInvalidLength
	}
	length := buf[0]

	if len(buf) < 11 {
		return nil, ErrTruncatedHeader
	}

	mismatch := int(length) != len(buf)-1
	if mismatch && cfg.Strict {
		return nil, ErrLengthFieldMismatch
	}
	if mismatch {
		log.Printf("wmbus: length field %d does not match frame length %d; decoding may be unreliable", length, len(buf)-1)
	}

	f := &Frame{Length: length, LengthMismatch: mismatch}
	f.Control = buf[1]
	copy(f.Manufacturer[:], buf[2:4])
	copy(f.Address[:], buf[4:10])
	f.CI = buf[10]

	f.Header.Kind = ClassifyCI(f.CI)

	rest := buf[11:]
	switch f.Header.Kind {
	case HeaderShort:
		if len(rest) < 4 {
			return f, ErrTruncatedHeader
		}
		f.Header.Short = parseShortHeader(rest[:4])
		rest = rest[4:]
	case HeaderLong:
		if len(rest) < 12 {
			return f, ErrTruncatedHeader
		}
		f.Header.Long = parseLongHeader(rest[:12])
		rest = rest[12:]
	}

	short, hasTL := f.Header.shortHeader()
	if hasTL && short.EncryptionMode() == 5 {
		f.Encrypted = true

		if keys == nil {
			return f, ErrMissingKey
		}
		key, ok := keys.Key(deviceID(f.Address))
		if !ok {
			return f, ErrMissingKey
		}

		plaintext, err := decryptMode5(key, rest, f.Manufacturer, f.Address, short.AccessNr)
		if err != nil {
			return f, fmt.Errorf("decrypting mode-5 payload: %w", err)
		}
		f.Decrypted = true
		rest = plaintext
	} else if hasTL {
		f.Encrypted = short.IsEncrypted()
	}

	rest = trimFiller(rest)

	records, err := parseRecords(rest)
	f.Records = records
	return f, err
}
