// Package mqttingest subscribes to the MQTT topic a wireless-metering
// gateway publishes hex-encoded telegrams on, and pushes each one onto a
// channel for pipeline.Pool to drain. Grounded on
// original_source/mqtt_wmbus_interpreter/gwmqtt_client.py's
// startReceiver/on_message pair.
package mqttingest

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/wmbusd/wmbusd/internal/telemetry"
	"github.com/wmbusd/wmbusd/internal/wmbus"
)

// telegramBatch is the JSON-RPC-shaped payload the gateway publishes:
// {"method": "wmbus", "params": {"telegrams": ["...", ...]}}.
type telegramBatch struct {
	Method string `json:"method"`
	Params struct {
		Telegrams []string `json:"telegrams"`
	} `json:"params"`
}

// Receiver subscribes to a gateway's telegram topic and forwards decoded
// telegrams to a channel.
type Receiver struct {
	client       mqtt.Client
	topicPrefix  string
	out          chan<- wmbus.Telegram
	collector    *telemetry.Collector
}

// Config holds the broker connection parameters, mirroring
// startReceiver's argument list.
type Config struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// NewReceiver builds a Receiver that pushes every ingested telegram onto
// out. out should be buffered; onMessage blocks the MQTT client's
// callback goroutine if it is full.
func NewReceiver(cfg Config, out chan<- wmbus.Telegram, collector *telemetry.Collector) *Receiver {
	r := &Receiver{topicPrefix: cfg.TopicPrefix, out: out, collector: collector}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = r.onConnect

	r.client = mqtt.NewClient(opts)
	return r
}

// Start connects to the broker and blocks until the connection completes
// or fails.
func (r *Receiver) Start() error {
	token := r.client.Connect()
	token.Wait()
	return token.Error()
}

// Stop disconnects cleanly, waiting up to quiesceMillis for in-flight
// work to finish.
func (r *Receiver) Stop(quiesceMillis uint) {
	r.client.Disconnect(quiesceMillis)
}

func (r *Receiver) onConnect(client mqtt.Client) {
	topic := r.topicPrefix + "/+/out"
	log.Printf("mqttingest: connected, subscribing to %s", topic)
	if token := client.Subscribe(topic, 0, r.onMessage); token.Wait() && token.Error() != nil {
		log.Printf("mqttingest: subscribe failed: %v", token.Error())
	}
}

func (r *Receiver) onMessage(_ mqtt.Client, msg mqtt.Message) {
	if r.collector != nil {
		r.collector.MQTTMessagesReceived.Inc()
	}

	payload := msg.Payload()
	if strings.HasSuffix(msg.Topic(), "/zlib") {
		inflated, err := inflate(payload)
		if err != nil {
			log.Printf("mqttingest: zlib inflate failed for topic %s: %v", msg.Topic(), err)
			return
		}
		payload = inflated
	}

	var batch telegramBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		log.Printf("mqttingest: malformed payload on topic %s: %v", msg.Topic(), err)
		return
	}
	if batch.Method != "wmbus" {
		return
	}

	for _, hexTelegram := range batch.Params.Telegrams {
		r.out <- wmbus.Telegram{Hex: hexTelegram}
	}
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening zlib stream: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
