package main

import (
	"context"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wmbusd/wmbusd/internal/api"
	"github.com/wmbusd/wmbusd/internal/config"
	"github.com/wmbusd/wmbusd/internal/keystore"
	"github.com/wmbusd/wmbusd/internal/mqttingest"
	"github.com/wmbusd/wmbusd/internal/pipeline"
	"github.com/wmbusd/wmbusd/internal/telemetry"
	"github.com/wmbusd/wmbusd/internal/wmbus"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize the key store and load statically-configured keys
	keys := keystore.NewMemoryStore()
	for _, k := range cfg.Keys {
		id, key, err := decodeConfiguredKey(k.DeviceID, k.Key)
		if err != nil {
			log.Printf("Warning: skipping malformed key entry for device %s: %v", k.DeviceID, err)
			continue
		}
		keys.UpdateKey(id, key)
		log.Printf("Loaded key from config for device %s", k.DeviceID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize Redis key sync
	redisSync := keystore.NewRedisSync(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Channel, cfg.Redis.Enabled, keys)
	if redisSync != nil {
		if err := redisSync.LoadInitialKeys(ctx); err != nil {
			log.Printf("Warning: failed to load initial keys from Redis: %v", err)
		}
		go redisSync.Subscribe(ctx)
	}

	// 4. Initialize telemetry and the recent-frames diagnostic sink
	collector := telemetry.NewCollector(prometheus.DefaultRegisterer)
	recent := api.NewRecentFrames(64)

	// 5. Initialize and start the decode pipeline
	decodeCfg := wmbus.Config{Strict: cfg.Decode.Strict}
	pool := pipeline.NewPool(cfg.Decode.Workers, cfg.Decode.QueueDepth, keys, decodeCfg, recent, collector)
	pool.Start(ctx)
	defer pool.Stop()

	// 6. Initialize and start the MQTT ingest receiver
	in := make(chan wmbus.Telegram, cfg.Decode.QueueDepth)
	receiver := mqttingest.NewReceiver(mqttingest.Config{
		Broker:      cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		Username:    cfg.MQTT.Username,
		Password:    cfg.MQTT.Password,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}, in, collector)
	if err := receiver.Start(); err != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", err)
	}
	defer receiver.Stop(250)

	go func() {
		for telegram := range in {
			if err := pool.Submit(ctx, telegram); err != nil {
				return
			}
		}
	}()

	// 7. Initialize and start the API server
	server := api.NewServer(cfg, keys, redisSync, recent)
	go func() {
		log.Printf("API server listening on :%d", cfg.API.Port)
		if err := server.Start(); err != nil {
			log.Fatalf("API server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down wmbusd...")
	cancel()
}

var errShortDeviceID = errors.New("device id must decode to 4 bytes")

func decodeConfiguredKey(deviceHex, keyHex string) ([4]byte, []byte, error) {
	var id [4]byte
	idBytes, err := hex.DecodeString(deviceHex)
	if err != nil {
		return id, nil, err
	}
	if len(idBytes) != 4 {
		return id, nil, errShortDeviceID
	}
	copy(id[:], idBytes)

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return id, nil, err
	}
	return id, key, nil
}
