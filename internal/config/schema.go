package config

import "time"

// Config is the top-level YAML structure for the breadboard service.
type Config struct {
	Server ServerConf `yaml:"server"`
	Log    LogConf    `yaml:"log"`
	Limits LimitsConf `yaml:"limits"`
	Events EventsConf `yaml:"events"`
}

// ServerConf holds the HTTP listener settings.
type ServerConf struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs int    `yaml:"write_timeout_ms"` // 0 = unbounded; the event stream needs it
	ShutdownMs     int    `yaml:"shutdown_grace_ms"`
}

// LogConf selects the log level and output format.
type LogConf struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// LimitsConf caps board size as enforced by the API layer. Zero means
// unlimited; the core never rejects growth on its own.
type LimitsConf struct {
	MaxGates int `yaml:"max_gates"`
	MaxWires int `yaml:"max_wires"`
}

// EventsConf tunes the snapshot change feed.
type EventsConf struct {
	ClientBuffer int `yaml:"client_buffer"`
	HeartbeatMs  int `yaml:"heartbeat_ms"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeoutMs == 0 {
		cfg.Server.ReadTimeoutMs = 5000
	}
	if cfg.Server.ShutdownMs == 0 {
		cfg.Server.ShutdownMs = 10000
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Limits.MaxGates == 0 {
		cfg.Limits.MaxGates = 1024
	}
	if cfg.Limits.MaxWires == 0 {
		cfg.Limits.MaxWires = 4096
	}
	if cfg.Events.ClientBuffer == 0 {
		cfg.Events.ClientBuffer = 8
	}
	if cfg.Events.HeartbeatMs == 0 {
		cfg.Events.HeartbeatMs = 15000
	}
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConf) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutMs) * time.Millisecond
}

// WriteTimeout returns the write timeout as a duration.
func (s ServerConf) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutMs) * time.Millisecond
}

// ShutdownGrace returns the graceful-shutdown window as a duration.
func (s ServerConf) ShutdownGrace() time.Duration {
	return time.Duration(s.ShutdownMs) * time.Millisecond
}

// Heartbeat returns the event-stream heartbeat period as a duration.
func (e EventsConf) Heartbeat() time.Duration {
	return time.Duration(e.HeartbeatMs) * time.Millisecond
}
