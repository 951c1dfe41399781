package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/drive-golf/game"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"sim": { "tickRate": 120 },
		"vehicle": { "maxSpeed": 500, "stuck": { "timeout": 0.8 } },
		"camera": { "initialZoom": 1.5 },
		"launch": { "additiveReinforcement": true }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, 120, GetInt("sim.tickRate"))
	assert.Equal(t, log.DebugLevel, LogLevel())

	g, err := Game()
	require.NoError(t, err)
	assert.Equal(t, 500.0, g.Vehicle.MaxSpeed)
	assert.Equal(t, 0.8, g.Vehicle.Stuck.Timeout)
	assert.Equal(t, 1.5, g.Camera.InitialZoom)
	assert.True(t, g.Launch.AdditiveReinforcement)

	// untouched keys keep their defaults
	assert.Equal(t, 1.2, g.Vehicle.TurnRate)
	assert.Equal(t, 0.2, g.Vehicle.Stuck.SampleInterval)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{}`), 0644))
	require.NoError(t, Load(dir))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "data/nats", GetString("nats.dataDir"))
	assert.Equal(t, "drivegolf", GetString("nats.bucket"))
	assert.Equal(t, 60, GetInt("sim.tickRate"))
	assert.False(t, GetBool("autopilot.enabled"))
	assert.Equal(t, 100*time.Millisecond, GetDuration("autopilot.interval"))

	g, err := Game()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), g)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	g, err := Game()
	require.NoError(t, err)
	assert.Equal(t, 50, g.Session.DefaultPower)
	assert.Equal(t, 10.0, g.Router.WinSpeed)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"logLevel":`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLogLevel_Unknown(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("logLevel", "chatty")
	assert.Equal(t, log.InfoLevel, LogLevel())
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}
