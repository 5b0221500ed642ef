package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Validate checks the config for:
//   - A usable listen address
//   - Non-negative timeouts and limits
//   - A log level zerolog understands
//   - Sane event-stream tuning
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if cfg.Server.ReadTimeoutMs < 0 {
		errs = append(errs, "server.read_timeout_ms must not be negative")
	}
	if cfg.Server.WriteTimeoutMs < 0 {
		errs = append(errs, "server.write_timeout_ms must not be negative")
	}
	if cfg.Server.ShutdownMs < 0 {
		errs = append(errs, "server.shutdown_grace_ms must not be negative")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		errs = append(errs, "log.level: unknown level "+cfg.Log.Level)
	}
	if cfg.Limits.MaxGates < 0 {
		errs = append(errs, "limits.max_gates must not be negative")
	}
	if cfg.Limits.MaxWires < 0 {
		errs = append(errs, "limits.max_wires must not be negative")
	}
	if cfg.Events.ClientBuffer < 1 {
		errs = append(errs, "events.client_buffer must be at least 1")
	}
	if cfg.Events.HeartbeatMs < 100 {
		errs = append(errs, "events.heartbeat_ms must be at least 100")
	}

	if len(errs) > 0 {
		return errors.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
