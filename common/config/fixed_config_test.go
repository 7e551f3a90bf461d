package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "gate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	require.NoError(t, Load(""))
	cfg := Get()
	assert.Equal(t, 8080, cfg.HttpPort)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
appName: gate-test
httpPort: 9090
log:
  level: debug
engine:
  workers: 2
  analyzeTimeout: 500
redis:
  addr: 127.0.0.1:6379
`)
	require.NoError(t, Load(path))
	cfg := Get()
	assert.Equal(t, "gate-test", cfg.AppName)
	assert.Equal(t, 9090, cfg.HttpPort)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Engine.Workers)
	assert.Equal(t, 500, cfg.Engine.AnalyzeTimeout)
	// 未配置的字段保持默认值
	assert.Equal(t, 256, cfg.Engine.QueueSize)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "engine:\n  workers: 0\n")
	assert.Error(t, Load(path))
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestLoad_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: info\n")
	require.NoError(t, Load(path))

	changed := make(chan string, 4)
	OnChange(func(c *Config) {
		select {
		case changed <- c.Log.Level:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))
	select {
	case level := <-changed:
		assert.Equal(t, "warn", level)
	case <-time.After(5 * time.Second):
		t.Skip("文件监听事件未到达，跳过")
	}
}
