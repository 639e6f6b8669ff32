package keystore

import "testing"

func TestMemoryStoreSeededKeys(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Key([4]byte{0x57, 0x00, 0x00, 0x44}); !ok {
		t.Error("expected demo device key to be present")
	}
	if _, ok := s.Key([4]byte{0xDE, 0xAD, 0xBE, 0xEF}); ok {
		t.Error("expected unknown device to have no key")
	}
}

func TestMemoryStoreUpdateKey(t *testing.T) {
	s := NewMemoryStore()
	id := [4]byte{0x01, 0x02, 0x03, 0x04}
	key := make([]byte, 16)

	if _, ok := s.Key(id); ok {
		t.Fatal("key should not exist before UpdateKey")
	}
	s.UpdateKey(id, key)
	got, ok := s.Key(id)
	if !ok || len(got) != 16 {
		t.Errorf("Key() = %v, %v; want 16-byte key, true", got, ok)
	}
}

func TestMemoryStoreSnapshotIsACopy(t *testing.T) {
	s := NewMemoryStore()
	id := [4]byte{0x57, 0x00, 0x00, 0x44}
	before, _ := s.Key(id)
	want := append([]byte{}, before...)

	snap := s.Snapshot()
	snap[id][0] ^= 0xFF

	after, _ := s.Key(id)
	if string(after) != string(want) {
		t.Error("mutating a snapshot value affected the underlying store")
	}
}
