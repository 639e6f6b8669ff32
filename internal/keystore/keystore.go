// Package keystore holds the process-wide device-id-to-AES-key mapping
// the wM-Bus decoder consults for mode-5 frames.
package keystore

import (
	"sync"

	"github.com/wmbusd/wmbusd/internal/wmbus"
)

// MemoryStore is a read-mostly, RWMutex-guarded map of device id to AES
// key, generalized from the FQDN-to-target routing table in
// ewancrowle-porter's internal/strategy/simple.go.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[[4]byte][]byte
}

// NewMemoryStore builds a key store seeded with the demo device keys
// described in SPEC_FULL.md §4.2.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{keys: make(map[[4]byte][]byte)}
	s.UpdateKey([4]byte{0x57, 0x00, 0x00, 0x44}, []byte{
		0xCA, 0xFE, 0xBA, 0xBE, 0x12, 0x34, 0x56, 0x78,
		0x9A, 0xBC, 0xDE, 0xF0, 0xCA, 0xFE, 0xBA, 0xBE,
	})
	s.UpdateKey([4]byte{0x00, 0x00, 0x00, 0x00}, []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	})
	return s
}

// Key implements wmbus.KeyLookup.
func (s *MemoryStore) Key(deviceID [4]byte) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[deviceID]
	return key, ok
}

// UpdateKey sets or replaces the key for a device id.
func (s *MemoryStore) UpdateKey(deviceID [4]byte, key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[deviceID] = key
}

// Snapshot returns a copy of every device id currently keyed, for
// diagnostics endpoints.
func (s *MemoryStore) Snapshot() map[[4]byte][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[[4]byte][]byte, len(s.keys))
	for k, v := range s.keys {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

var _ wmbus.KeyLookup = (*MemoryStore)(nil)
