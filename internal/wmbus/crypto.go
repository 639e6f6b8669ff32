package wmbus

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
)

// KeyLookup resolves the AES key for a device, addressed by its 4-byte
// device id (the link-layer address's first four bytes, reversed to
// natural byte order).
type KeyLookup interface {
	Key(deviceID [4]byte) ([]byte, bool)
}

// fillerSentinel is the 2-byte 0x2F2F filler pattern a mode-5 plaintext
// must begin with; its absence signals a wrong key or corruption.
var fillerSentinel = []byte{0x2F, 0x2F}

// buildMode5IV constructs the 16-byte initialization vector for
// encryption mode 5 (AES-CBC, non-zero IV): manufacturer (2 bytes),
// link-layer address (6 bytes), and the access number repeated to fill
// the remaining 8 bytes, grounded on the IV assembly in
// original_source/mqtt_wmbus_interpreter/wmbus.py.
func buildMode5IV(manufacturer [2]byte, address [6]byte, accessNr byte) []byte {
	iv := make([]byte, aes.BlockSize)
	iv[0], iv[1] = manufacturer[0], manufacturer[1]
	copy(iv[2:8], address[:])
	for i := 8; i < aes.BlockSize; i++ {
		iv[i] = accessNr
	}
	return iv
}

// decryptMode5 decrypts an AES-128-CBC ciphertext using the mode-5 IV
// derivation and requires the decrypted plaintext to begin with the
// 0x2F2F filler sentinel, per the explicit key-or-corruption check in
// §4.1 step 5. Filler trimming happens separately afterward.
func decryptMode5(key, ciphertext []byte, manufacturer [2]byte, address [6]byte, accessNr byte) ([]byte, error) {
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrCiphertextNotBlockAligned
	}
	if len(ciphertext) == 0 {
		return nil, nil
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := buildMode5IV(manufacturer, address, accessNr)
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	if len(plaintext) < 2 || !bytes.Equal(plaintext[:2], fillerSentinel) {
		return nil, ErrFillerSentinelMismatch
	}

	return plaintext, nil
}

// trimFiller strips leading and trailing 0x2F filler bytes from data,
// applied unconditionally after the decryption step regardless of
// whether the frame was encrypted. Idempotent: trimming twice yields the
// same result as trimming once.
func trimFiller(data []byte) []byte {
	start, end := 0, len(data)
	for start < end && data[start] == 0x2F {
		start++
	}
	for end > start && data[end-1] == 0x2F {
		end--
	}
	return data[start:end]
}
