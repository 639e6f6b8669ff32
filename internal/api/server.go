// Package api exposes the decode pipeline over HTTP using gofiber/fiber,
// generalized from ewancrowle-porter's internal/api/server.go: the same
// fiber.App + fiber.Map JSON response shape, re-pointed at telegram
// decoding, key management, and a recent-frames diagnostic feed instead
// of route management.
package api

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wmbusd/wmbusd/internal/config"
	"github.com/wmbusd/wmbusd/internal/keystore"
	"github.com/wmbusd/wmbusd/internal/wmbus"
)

// RecentFrames is a small ring buffer of the most recently decoded
// results, for the GET /frames/recent diagnostic endpoint.
type RecentFrames struct {
	mu    sync.Mutex
	items []*wmbus.Result
	cap   int
}

// NewRecentFrames builds a ring buffer holding at most capacity results.
func NewRecentFrames(capacity int) *RecentFrames {
	if capacity < 1 {
		capacity = 1
	}
	return &RecentFrames{cap: capacity}
}

// Accept implements pipeline.Sink, recording every successfully decoded
// result.
func (r *RecentFrames) Accept(result *wmbus.Result, _ wmbus.Telegram, err error) {
	if err != nil || result == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, result)
	if len(r.items) > r.cap {
		r.items = r.items[len(r.items)-r.cap:]
	}
}

// Snapshot returns a copy of the buffered results, most recent last.
func (r *RecentFrames) Snapshot() []*wmbus.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*wmbus.Result, len(r.items))
	copy(out, r.items)
	return out
}

// Server is the HTTP facade over the decode pipeline and key store.
type Server struct {
	app     *fiber.App
	cfg     *config.Config
	keys    *keystore.MemoryStore
	sync    *keystore.RedisSync
	recent  *RecentFrames
}

// NewServer builds and wires the fiber app's routes.
func NewServer(cfg *config.Config, keys *keystore.MemoryStore, redisSync *keystore.RedisSync, recent *RecentFrames) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	if cfg.API.LogRequests {
		app.Use(logger.New())
	}

	s := &Server{
		app:    app,
		cfg:    cfg,
		keys:   keys,
		sync:   redisSync,
		recent: recent,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Post("/decode", s.handleDecode)
	s.app.Post("/keys", s.handleUpdateKey)
	s.app.Get("/frames/recent", s.handleRecentFrames)

	if s.cfg.Metrics.Enabled {
		path := s.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// Start begins serving on the configured API port.
func (s *Server) Start() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.API.Port))
}

type decodeRequest struct {
	Data string `json:"data"`
}

func (s *Server) handleDecode(c *fiber.Ctx) error {
	var req decodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := wmbus.Interpret(wmbus.Telegram{Hex: req.Data}, s.keys, wmbus.Config{Strict: s.cfg.Decode.Strict})
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

type keyRequest struct {
	DeviceID string `json:"device_id"` // hex, 4 bytes
	Key      string `json:"key"`       // hex, 16 bytes
}

func (s *Server) handleUpdateKey(c *fiber.Ctx) error {
	var req keyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, key, err := decodeKeyRequest(req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	s.keys.UpdateKey(id, key)

	if s.sync != nil {
		if err := s.sync.PublishUpdate(c.Context(), id, key); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to sync key"})
		}
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleRecentFrames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"frames": s.recent.Snapshot()})
}

func decodeKeyRequest(req keyRequest) (id [4]byte, key []byte, err error) {
	idBytes, err := hex.DecodeString(req.DeviceID)
	if err != nil {
		return id, nil, fmt.Errorf("decoding device_id: %w", err)
	}
	if len(idBytes) != 4 {
		return id, nil, fmt.Errorf("device_id must decode to 4 bytes, got %d", len(idBytes))
	}
	copy(id[:], idBytes)

	key, err = hex.DecodeString(req.Key)
	if err != nil {
		return id, nil, fmt.Errorf("decoding key: %w", err)
	}
	if len(key) != 16 {
		return id, nil, fmt.Errorf("key must decode to 16 bytes, got %d", len(key))
	}

	return id, key, nil
}
