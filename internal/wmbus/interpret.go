package wmbus

import (
	"encoding/hex"
	"fmt"
)

// Telegram is a single raw wM-Bus datagram as received off the wire,
// hex-encoded.
type Telegram struct {
	Hex string
}

// DataPoint is one decoded value, shaped for the JSON facade described in
// spec.md §6.
type DataPoint struct {
	Type   string      `json:"type"`
	Sensor string      `json:"sensor"`
	Value  interface{} `json:"value"`
}

// Result is the JSON-facing decode outcome for a single telegram.
type Result struct {
	Manufacturer string      `json:"manufacturer"`
	Serial       string      `json:"serial"`
	DeviceType   string      `json:"deviceType"`
	Encrypted    bool        `json:"encrypted"`
	Decrypted    bool        `json:"decrypted"`
	Data         []DataPoint `json:"data"`
}

// Interpret decodes a single telegram and shapes it into the public
// JSON-facing Result, deriving the serial number from the link-layer
// address (or, when a long transport header is present, from its
// identification field) the way get_wmbus_address/ID formatting in
// original_source/mqtt_wmbus_interpreter/wmbus.py does: the first four
// address bytes, reversed, printed as 8 hex digits.
func Interpret(telegram Telegram, keys KeyLookup, cfg Config) (*Result, error) {
	buf, err := hex.DecodeString(telegram.Hex)
	if err != nil {
		return nil, fmt.Errorf("decoding telegram hex: %w", err)
	}

	frame, err := Parse(buf, keys, cfg)
	if err != nil {
		return nil, err
	}

	manufacturer, address, deviceType := frame.Manufacturer, frame.Address, frame.Address[5]
	if frame.Header.Kind == HeaderLong {
		long := frame.Header.Long
		manufacturer = long.Manufacturer
		address = [6]byte{long.Identification[0], long.Identification[1], long.Identification[2], long.Identification[3], long.Version, long.DeviceType}
		deviceType = long.DeviceType
	}

	res := &Result{
		Manufacturer: DecodeManufacturer(manufacturer),
		Serial:       serialFromAddress(address),
		DeviceType:   DeviceTypeName(deviceType),
		Encrypted:    frame.Encrypted,
		Decrypted:    frame.Decrypted,
	}

	for _, rec := range frame.Records {
		res.Data = append(res.Data, DataPoint{
			Type:   rec.Function,
			Sensor: rec.Description,
			Value:  valueToJSON(rec.Value),
		})
	}

	return res, nil
}

// serialFromAddress renders the device serial number: the first four
// address bytes, byte-reversed, as 8 hex digits.
func serialFromAddress(address [6]byte) string {
	reversed := [4]byte{address[3], address[2], address[1], address[0]}
	return hex.EncodeToString(reversed[:])
}

// valueToJSON converts a decoded Value into the interface{} shape the
// JSON encoder expects, collapsing the tagged union down to the single
// populated field.
func valueToJSON(v Value) interface{} {
	switch v.Kind {
	case ValueInt:
		return v.Int
	case ValueFloat:
		return v.Float
	case ValueBCD:
		return v.BCD
	default:
		return nil
	}
}
