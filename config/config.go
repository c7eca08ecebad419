package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Instrument string `yaml:"instrument"`
	Logging    struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Kafka struct {
		Enabled              bool     `yaml:"enabled"`
		Brokers              []string `yaml:"brokers"`
		TradeTopic           string   `yaml:"trade_topic"`
		DepthTopic           string   `yaml:"depth_topic"`
		BroadcastIntervalMs  int      `yaml:"broadcast_interval_ms"`
		DepthIntervalSeconds int      `yaml:"depth_interval_seconds"`
	} `yaml:"kafka"`
	Tape struct {
		Dir              string `yaml:"dir"`
		SegmentSizeBytes int64  `yaml:"segment_size_bytes"`
	} `yaml:"tape"`
	Outbox struct {
		Dir string `yaml:"dir"`
	} `yaml:"outbox"`
	Snapshot struct {
		Dir             string `yaml:"dir"`
		IntervalSeconds int    `yaml:"interval_seconds"`
	} `yaml:"snapshot"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

func defaultConfig() Config {
	var c Config
	c.Instrument = "SIM"
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Kafka.Enabled = false
	c.Kafka.Brokers = []string{"127.0.0.1:9092"}
	c.Kafka.TradeTopic = "matchbook.trades"
	c.Kafka.DepthTopic = "matchbook.depth"
	c.Kafka.BroadcastIntervalMs = 250
	c.Kafka.DepthIntervalSeconds = 1
	c.Tape.Dir = "./data/tape"
	c.Tape.SegmentSizeBytes = 2 * 1024 * 1024
	c.Outbox.Dir = "./data/outbox"
	c.Snapshot.Dir = "./data/snapshots"
	c.Snapshot.IntervalSeconds = 30
	c.Metrics.Addr = ""
	return c
}

// Load builds the configuration from defaults, an optional yaml file
// named by MATCHBOOK_CONFIG, and environment overrides, in that order.
func Load() Config {
	c := defaultConfig()
	if path := os.Getenv("MATCHBOOK_CONFIG"); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	if v := os.Getenv("MATCHBOOK_INSTRUMENT"); v != "" {
		c.Instrument = v
	}
	if v := os.Getenv("MATCHBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MATCHBOOK_LOG_PRETTY"); v == "1" || v == "true" {
		c.Logging.Pretty = true
	}
	if v := os.Getenv("MATCHBOOK_KAFKA_ENABLED"); v == "1" || v == "true" {
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("MATCHBOOK_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitCSV(v)
	}
	if v := os.Getenv("MATCHBOOK_KAFKA_TRADE_TOPIC"); v != "" {
		c.Kafka.TradeTopic = v
	}
	if v := os.Getenv("MATCHBOOK_KAFKA_DEPTH_TOPIC"); v != "" {
		c.Kafka.DepthTopic = v
	}
	if v := os.Getenv("MATCHBOOK_TAPE_DIR"); v != "" {
		c.Tape.Dir = v
	}
	if v := os.Getenv("MATCHBOOK_OUTBOX_DIR"); v != "" {
		c.Outbox.Dir = v
	}
	if v := os.Getenv("MATCHBOOK_SNAPSHOT_DIR"); v != "" {
		c.Snapshot.Dir = v
	}
	if v := os.Getenv("MATCHBOOK_SNAPSHOT_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Snapshot.IntervalSeconds = n
		}
	}
	if v := os.Getenv("MATCHBOOK_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	return c
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
