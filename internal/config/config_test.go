package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := New(filepath.Join(t.TempDir(), "absent.ini"))
	assert.Error(t, err)
	require.NotNil(t, cfg)

	def := DefaultConfig()
	assert.Equal(t, def.LogFile, cfg.LogFile)
	assert.Equal(t, 100, cfg.MaxEntries)
	assert.Equal(t, "IPMonitor", cfg.EventSource)
	assert.Equal(t, "Application", cfg.EventLog)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipmon.ini")
	content := `LogDir = /var/lib/ipmon
logfile = history.json
maxentries = 25
eventsource = NetWatch
loglevel = debug
interval = 2m

[display]
wlan = wlan0
ethernet = eth0
switch = virbr0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/ipmon", cfg.LogDir)
	assert.Equal(t, "history.json", cfg.LogFile)
	assert.Equal(t, filepath.Join("/var/lib/ipmon", "history.json"), cfg.HistoryPath())
	assert.Equal(t, 25, cfg.MaxEntries)
	assert.Equal(t, "NetWatch", cfg.EventSource)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Minute, cfg.Interval)
	assert.Equal(t, "wlan0", cfg.WLANName)
	assert.Equal(t, "eth0", cfg.EthernetName)
	assert.Equal(t, "virbr0", cfg.SwitchName)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipmon.ini")
	require.NoError(t, os.WriteFile(path, []byte("logfile = a.json\nmaxentries = 10\n"), 0644))

	t.Setenv("IPMON_LOGFILE", "b.json")
	t.Setenv("IPMON_MAXENTRIES", "not-a-number")
	t.Setenv("IPMON_INTERVAL", "30s")

	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, "b.json", cfg.LogFile)
	assert.Equal(t, 10, cfg.MaxEntries)
	assert.Equal(t, 30*time.Second, cfg.Interval)
}

func TestNonPositiveMaxEntriesFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipmon.ini")
	require.NoError(t, os.WriteFile(path, []byte("maxentries = 0\n"), 0644))

	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxEntries)
}
