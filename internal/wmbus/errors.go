package wmbus

import "errors"

// Sentinel errors for the wM-Bus decode pipeline. Parse and the record
// parsers return these either directly or wrapped with
// fmt.Errorf("...: %w", ...), so callers can errors.Is against the stage
// that failed.
var (
	// ErrInvalidLength is returned when the frame's length byte is below
	// the minimum a wM-Bus link-layer header requires (11).
	ErrInvalidLength = errors.New("wmbus: invalid frame length field")

	// ErrTruncatedHeader is returned when the buffer is too short to hold
	// the link-layer fields or the selected transport-layer header.
	ErrTruncatedHeader = errors.New("wmbus: truncated header")

	// ErrLengthFieldMismatch is returned only when Config.Strict escalates
	// the normally-non-fatal length mismatch into a hard error.
	ErrLengthFieldMismatch = errors.New("wmbus: frame length field does not match buffer length")

	// ErrMissingKey is returned when a frame requires decryption but no key
	// is registered for its device id.
	ErrMissingKey = errors.New("wmbus: no key configured for device")

	// ErrCiphertextNotBlockAligned is returned when the encrypted payload's
	// length is not a multiple of the AES block size.
	ErrCiphertextNotBlockAligned = errors.New("wmbus: ciphertext is not a multiple of the AES block size")

	// ErrFillerSentinelMismatch is returned when decrypted plaintext does
	// not begin with the 0x2F 0x2F filler sentinel, signalling a wrong key
	// or corrupted ciphertext.
	ErrFillerSentinelMismatch = errors.New("wmbus: decrypted plaintext missing filler sentinel")

	// ErrInvalidDifChain is returned when a DIF/DIFE chain exceeds 10 bytes
	// or runs past the end of the available data.
	ErrInvalidDifChain = errors.New("wmbus: DIF chain exceeds maximum length")

	// ErrInvalidVifChain is returned when a VIF/VIFE chain exceeds 10 bytes
	// or runs past the end of the available data.
	ErrInvalidVifChain = errors.New("wmbus: VIF chain exceeds maximum length")

	// ErrRecordOverflow is returned when a record's value (or its
	// variable-length byte) runs past the end of the available data.
	ErrRecordOverflow = errors.New("wmbus: record overflows available data")

	// ErrUnsupportedDataField is returned for a DIF length nibble with no
	// defined meaning.
	ErrUnsupportedDataField = errors.New("wmbus: unsupported data field length code")
)
