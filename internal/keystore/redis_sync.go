package keystore

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// keyUpdate is the wire shape published on the sync channel when a key is
// added or rotated, mirroring the Route payload in
// ewancrowle-porter's internal/sync/redis.go.
type keyUpdate struct {
	DeviceID string `json:"device_id"` // hex-encoded 4 bytes
	Key      string `json:"key"`       // hex-encoded 16 bytes
}

// RedisSync keeps a MemoryStore in sync with a shared Redis-backed key
// table, grounded on ewancrowle-porter's internal/sync/redis.go.
type RedisSync struct {
	client  *redis.Client
	channel string
	store   *MemoryStore
}

// NewRedisSync returns nil if Redis-backed key sync is disabled, matching
// the nil-receiver pattern the porter package uses throughout RedisSync's
// methods.
func NewRedisSync(addr, password string, db int, channel string, enabled bool, store *MemoryStore) *RedisSync {
	if !enabled {
		return nil
	}
	if addr == "" {
		log.Printf("keystore: redis sync enabled but no address configured: %v", pkgerrors.New("redis.address must not be empty"))
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisSync{client: client, channel: channel, store: store}
}

// redisKeyTableKey is the Redis hash holding device_id(hex) -> key(hex).
const redisKeyTableKey = "wmbusd:keys"

// LoadInitialKeys populates the store from the shared Redis hash at
// startup.
func (s *RedisSync) LoadInitialKeys(ctx context.Context) error {
	if s == nil {
		return nil
	}

	entries, err := s.client.HGetAll(ctx, redisKeyTableKey).Result()
	if err != nil {
		return err
	}
	for deviceHex, keyHex := range entries {
		id, key, err := decodeKeyEntry(deviceHex, keyHex)
		if err != nil {
			log.Printf("keystore: skipping malformed Redis key entry %s: %v", deviceHex, err)
			continue
		}
		s.store.UpdateKey(id, key)
		log.Printf("keystore: loaded key for device %s from Redis", deviceHex)
	}
	return nil
}

// PublishUpdate persists a key and announces it on the sync channel.
func (s *RedisSync) PublishUpdate(ctx context.Context, deviceID [4]byte, key []byte) error {
	if s == nil {
		return nil
	}

	update := keyUpdate{
		DeviceID: hex.EncodeToString(deviceID[:]),
		Key:      hex.EncodeToString(key),
	}
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}

	if err := s.client.HSet(ctx, redisKeyTableKey, update.DeviceID, update.Key).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, data).Err()
}

// Subscribe blocks, applying key updates published by other instances
// until ctx is canceled.
func (s *RedisSync) Subscribe(ctx context.Context) {
	if s == nil {
		return
	}

	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for msg := range ch {
		var update keyUpdate
		if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
			log.Printf("keystore: error unmarshaling sync message: %v", err)
			continue
		}
		id, key, err := decodeKeyEntry(update.DeviceID, update.Key)
		if err != nil {
			log.Printf("keystore: malformed sync message: %v", err)
			continue
		}
		log.Printf("keystore: syncing key update for device %s from Redis", update.DeviceID)
		s.store.UpdateKey(id, key)
	}
}

func decodeKeyEntry(deviceHex, keyHex string) ([4]byte, []byte, error) {
	var id [4]byte
	idBytes, err := hex.DecodeString(deviceHex)
	if err != nil {
		return id, nil, err
	}
	if len(idBytes) != 4 {
		return id, nil, fmt.Errorf("device id %q is not 4 bytes", deviceHex)
	}
	copy(id[:], idBytes)

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return id, nil, err
	}
	return id, key, nil
}
