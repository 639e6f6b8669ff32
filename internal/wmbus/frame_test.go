package wmbus

import (
	"crypto/aes"
	"crypto/cipher"
	"testing"
)

// buildFrame assembles a complete wM-Bus datagram (including its leading
// length byte) from its link-layer fields and a fully-formed body (header
// bytes followed by data), computing the length byte to match.
func buildFrame(control byte, manufacturer [2]byte, address [6]byte, ci byte, body []byte) []byte {
	buf := make([]byte, 0, 11+len(body))
	buf = append(buf, 0) // placeholder for length
	buf = append(buf, control)
	buf = append(buf, manufacturer[:]...)
	buf = append(buf, address[:]...)
	buf = append(buf, ci)
	buf = append(buf, body...)
	buf[0] = byte(len(buf) - 1)
	return buf
}

func TestParseCleartextLongTLWaterMeter(t *testing.T) {
	manufacturer := [2]byte{0x93, 0x15} // some manufacturer code
	address := [6]byte{0x11, 0x22, 0x33, 0x44, 0x01, 0x07}

	// Long header: identification(4) + manufacturer(2) + version(1) + device_type(1) + short header(4)
	header := []byte{0x11, 0x22, 0x33, 0x44, manufacturer[0], manufacturer[1], 0x01, 0x07,
		0x00, 0x00, 0x00, 0x00} // access_nr, status, config (mode 0 => cleartext)

	record := []byte{0x03, 0x13, 0x10, 0x00, 0x00} // DIF len=3 signed, VIF=Volume l, value=16

	body := append(append([]byte{}, header...), record...)
	buf := buildFrame(0x44, manufacturer, address, 0x72, body)

	frame, err := Parse(buf, nil, Config{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if frame.Header.Kind != HeaderLong {
		t.Fatalf("Header.Kind = %v, want HeaderLong", frame.Header.Kind)
	}
	if frame.Encrypted {
		t.Errorf("Encrypted = true, want false")
	}
	if len(frame.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(frame.Records))
	}
	if frame.Records[0].Value.Kind != ValueInt || frame.Records[0].Value.Int != 16 {
		t.Errorf("Records[0].Value = %+v, want Int 16", frame.Records[0].Value)
	}
}

func TestParseMode5EncryptedRoundTrip(t *testing.T) {
	manufacturer := [2]byte{0x44, 0x00} // feeds the IV; the key is looked up by address
	address := [6]byte{0x57, 0x00, 0x00, 0x44, 0x01, 0x07}
	key := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0, 0xCA, 0xFE, 0xBA, 0xBE}

	accessNr := byte(0x2A)
	// short header (CI 0x7A): access_nr, status, config (mode 5 low nibble)
	shortHeader := []byte{accessNr, 0x00, 0x00, 0x05}

	plaintext := []byte{
		0x2F, 0x2F, // filler sentinel
		0x03, 0x13, 0x10, 0x00, 0x00, // one record: volume 16 l
		0x2F, 0x2F, 0x2F, 0x2F, 0x2F, 0x2F, 0x2F, 0x2F, 0x2F, // pad to 16-byte block
	}
	if len(plaintext)%aes.BlockSize != 0 {
		t.Fatalf("test plaintext length %d not block aligned", len(plaintext))
	}

	iv := buildMode5IV(manufacturer, address, accessNr)
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	body := append(append([]byte{}, shortHeader...), ciphertext...)
	buf := buildFrame(0x7A, manufacturer, address, 0x7A, body)

	keys := staticKeyLookup{deviceID(address): key}

	frame, err := Parse(buf, keys, Config{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !frame.Encrypted || !frame.Decrypted {
		t.Fatalf("Encrypted=%v Decrypted=%v, want true/true", frame.Encrypted, frame.Decrypted)
	}
	if len(frame.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(frame.Records))
	}
	if frame.Records[0].Value.Int != 16 {
		t.Errorf("record value = %d, want 16", frame.Records[0].Value.Int)
	}

	// Flipping one key bit must fail the filler sentinel check.
	badKey := append([]byte{}, key...)
	badKey[0] ^= 0x01
	badKeys := staticKeyLookup{deviceID(address): badKey}
	if _, err := Parse(buf, badKeys, Config{}); err == nil {
		t.Fatal("expected FillerSentinelMismatch with wrong key, got nil error")
	}
}

func TestParseFillerOnlyPayload(t *testing.T) {
	manufacturer := [2]byte{0x01, 0x02}
	address := [6]byte{0x01, 0x02, 0x03, 0x04, 0x01, 0x07}
	shortHeader := []byte{0x00, 0x00, 0x00, 0x00} // mode 0
	body := append(append([]byte{}, shortHeader...), 0x2F, 0x2F, 0x2F, 0x2F)
	buf := buildFrame(0x44, manufacturer, address, 0x7A, body)

	frame, err := Parse(buf, nil, Config{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(frame.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(frame.Records))
	}
}

func TestParseLengthFieldMismatchWarns(t *testing.T) {
	manufacturer := [2]byte{0x01, 0x02}
	address := [6]byte{0x01, 0x02, 0x03, 0x04, 0x01, 0x07}
	shortHeader := []byte{0x00, 0x00, 0x00, 0x00}
	buf := buildFrame(0x44, manufacturer, address, 0x7A, shortHeader)
	buf[0] = 0x20 // deliberately wrong length byte

	frame, err := Parse(buf, nil, Config{})
	if err != nil {
		t.Fatalf("Parse returned error in non-strict mode: %v", err)
	}
	if !frame.LengthMismatch {
		t.Error("LengthMismatch = false, want true")
	}

	if _, err := Parse(buf, nil, Config{Strict: true}); err != ErrLengthFieldMismatch {
		t.Errorf("strict mode err = %v, want ErrLengthFieldMismatch", err)
	}
}

func TestParseRejectsTooShortLength(t *testing.T) {
	buf := []byte{0x05, 0x44, 0x01, 0x02}
	if _, err := Parse(buf, nil, Config{}); err != ErrInvalidLength {
		t.Errorf("err = %v, want ErrInvalidLength", err)
	}
}
