// Package config loads wmbusd's configuration via viper, generalizing
// ewancrowle-porter's internal/config/config.go from relay/routing
// settings to the decode pipeline's own ambient stack (MQTT ingest,
// Redis key sync, HTTP facade, metrics, decode tuning).
package config

import "github.com/spf13/viper"

// Config is the root configuration object, unmarshaled from a YAML file
// via viper with mapstructure tags, matching the teacher's own shape.
type Config struct {
	MQTT struct {
		Broker      string `mapstructure:"broker"`
		ClientID    string `mapstructure:"client_id"`
		Username    string `mapstructure:"username"`
		Password    string `mapstructure:"password"`
		TopicPrefix string `mapstructure:"topic_prefix"`
	} `mapstructure:"mqtt"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		Channel  string `mapstructure:"channel"`
	} `mapstructure:"redis"`

	API struct {
		Port        int  `mapstructure:"port"`
		LogRequests bool `mapstructure:"log_requests"`
	} `mapstructure:"api"`

	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"metrics"`

	Decode struct {
		Workers    int  `mapstructure:"workers"`
		QueueDepth int  `mapstructure:"queue_depth"`
		Strict     bool `mapstructure:"strict"`
	} `mapstructure:"decode"`

	Keys []struct {
		DeviceID string `mapstructure:"device_id"` // hex, 4 bytes
		Key      string `mapstructure:"key"`       // hex, 16 bytes
	} `mapstructure:"keys"`
}

// LoadConfig reads config.yaml from the working directory or ./config,
// falling back to defaults when no file is present, matching
// LoadConfig's tolerant ReadInConfig handling in the teacher package.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.client_id", "wmbusd")
	viper.SetDefault("mqtt.topic_prefix", "gwmqtt")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.channel", "wmbusd_keys")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.log_requests", false)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("decode.workers", 4)
	viper.SetDefault("decode.queue_depth", 256)
	viper.SetDefault("decode.strict", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
