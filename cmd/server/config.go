package main

import (
	"github.com/BurntSushi/toml"

	"pulse/pkg/service"
)

type Config struct {
	ServiceName    string `toml:"serviceName"`
	CensorConfPath string `toml:"censorConfPath"`
	FixturesDir    string `toml:"fixturesDir"`

	HTTPAddr    string   `toml:"httpAddr"`
	LogLevel    string   `toml:"logLevel"`
	CORSOrigins []string `toml:"corsOrigins"`

	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`

	FailureRate float64         `toml:"failureRate"`
	Latency     service.Latency `toml:"latency"`
}

// loadConfig reads path on top of the defaults. Keys missing from the file
// keep their default values.
func loadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceName: "pulse",
		HTTPAddr:    ":8080",
		LogLevel:    "info",
		Latency:     service.DefaultLatency(),
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
