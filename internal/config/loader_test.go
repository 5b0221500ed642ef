package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "breadboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	assert := require.New(t)
	cfg := Default()
	assert.NoError(Validate(cfg))
	assert.Equal(":8080", cfg.Server.Addr)
	assert.Equal("info", cfg.Log.Level)
	assert.Equal(1024, cfg.Limits.MaxGates)
	assert.Equal(4096, cfg.Limits.MaxWires)
	assert.Equal(0, cfg.Server.WriteTimeoutMs) // event stream needs no write deadline
	assert.Equal(15*time.Second, cfg.Events.Heartbeat())
}

func TestLoad(t *testing.T) {
	assert := require.New(t)
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  read_timeout_ms: 1000
log:
  level: debug
  pretty: true
limits:
  max_gates: 16
events:
  heartbeat_ms: 500
`)
	l, err := NewLoader(path)
	assert.NoError(err)
	cfg := l.Config()
	assert.Equal("127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(time.Second, cfg.Server.ReadTimeout())
	assert.Equal("debug", cfg.Log.Level)
	assert.True(cfg.Log.Pretty)
	assert.Equal(16, cfg.Limits.MaxGates)
	// untouched keys fall back to defaults
	assert.Equal(4096, cfg.Limits.MaxWires)
	assert.Equal(8, cfg.Events.ClientBuffer)
}

func TestLoadErrors(t *testing.T) {
	td := []struct {
		name, body string
	}{
		{"malformed yaml", ":\n  - ["},
		{"bad level", "log:\n  level: shouting\n"},
		{"negative limit", "limits:\n  max_gates: -1\n"},
		{"tiny heartbeat", "events:\n  heartbeat_ms: 10\n"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, d.body))
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestReloadKeepsOldOnError(t *testing.T) {
	assert := require.New(t)
	path := writeConfig(t, "limits:\n  max_gates: 16\n")
	l, err := NewLoader(path)
	assert.NoError(err)

	var reloads int
	l.OnChange(func(*Config) { reloads++ })

	assert.NoError(os.WriteFile(path, []byte("log:\n  level: shouting\n"), 0o600))
	_, err = l.Reload()
	assert.Error(err)
	assert.Equal(16, l.Config().Limits.MaxGates)
	assert.Equal(0, reloads)

	assert.NoError(os.WriteFile(path, []byte("limits:\n  max_gates: 32\n"), 0o600))
	_, err = l.Reload()
	assert.NoError(err)
	assert.Equal(32, l.Config().Limits.MaxGates)
	assert.Equal(1, reloads)
}

func TestWatch(t *testing.T) {
	assert := require.New(t)
	path := writeConfig(t, "limits:\n  max_gates: 16\n")
	l, err := NewLoader(path)
	assert.NoError(err)

	changed := make(chan *Config, 1)
	l.OnChange(func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	stop, err := l.Watch()
	assert.NoError(err)
	defer stop()

	assert.NoError(os.WriteFile(path, []byte("limits:\n  max_gates: 64\n"), 0o600))

	select {
	case cfg := <-changed:
		assert.Equal(64, cfg.Limits.MaxGates)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}
