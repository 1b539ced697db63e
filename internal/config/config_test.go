package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPurpose: Validates that Load fills every section with its default
// when only the required variables are set.
// Scope: Unit Test
// Expected: Spec-level defaults: 60s interval, 0.5/2.0/5.0 slacks, 30/70
// moisture bands, plant-conditions topic prefix, QoS 1.
// Test Case ID: CFG-01
func TestConfig_LoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "plantstein", cfg.Database.Database)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.BrokerURL)
	assert.Equal(t, "plant-conditions", cfg.MQTT.TopicPrefix)
	assert.Equal(t, "room-conditions/+/+", cfg.MQTT.SensorTopic)
	assert.Equal(t, 1, cfg.MQTT.QoS)
	assert.Equal(t, 60*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 0.5, cfg.Monitor.BrightnessSlack)
	assert.Equal(t, 2.0, cfg.Monitor.TemperatureSlack)
	assert.Equal(t, 5.0, cfg.Monitor.HumiditySlack)
	assert.Equal(t, 30.0, cfg.Monitor.MoistureDryBelow)
	assert.Equal(t, 70.0, cfg.Monitor.MoistureWetAbove)
	assert.Equal(t, 5*time.Minute, cfg.Monitor.ReadingMaxAge)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

// TestPurpose: Validates environment overrides reach the typed fields.
// Scope: Unit Test
// Expected: String, int, float, and duration variables all parse into
// their sections.
// Test Case ID: CFG-02
func TestConfig_LoadOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MQTT_QOS", "2")
	t.Setenv("MONITOR_INTERVAL", "30s")
	t.Setenv("MONITOR_TEMPERATURE_SLACK", "1.5")
	t.Setenv("MONITOR_MOISTURE_DRY_BELOW", "25")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.MQTT.QoS)
	assert.Equal(t, 30*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 1.5, cfg.Monitor.TemperatureSlack)
	assert.Equal(t, 25.0, cfg.Monitor.MoistureDryBelow)
}

// TestPurpose: Validates the guard rails that keep a misconfigured monitor
// from starting.
// Scope: Unit Test
// Expected: Missing DB password, non-positive interval, negative slack,
// inverted moisture bands, and out-of-range QoS each fail validation.
// Test Case ID: CFG-03
func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Password: "secret"},
			MQTT:     MQTTConfig{QoS: 1},
			Monitor: MonitorConfig{
				Interval:         time.Minute,
				BrightnessSlack:  0.5,
				TemperatureSlack: 2.0,
				HumiditySlack:    5.0,
				MoistureDryBelow: 30,
				MoistureWetAbove: 70,
			},
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing db password", func(c *Config) { c.Database.Password = "" }},
		{"zero interval", func(c *Config) { c.Monitor.Interval = 0 }},
		{"negative slack", func(c *Config) { c.Monitor.HumiditySlack = -1 }},
		{"inverted moisture bands", func(c *Config) { c.Monitor.MoistureDryBelow = 80 }},
		{"qos out of range", func(c *Config) { c.MQTT.QoS = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestPurpose: Validates that malformed numeric and duration variables fall
// back to their defaults instead of failing startup.
// Scope: Unit Test
// Expected: Unparseable values are ignored in favor of the default.
// Test Case ID: CFG-04
func TestConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("MQTT_QOS", "highest")
	t.Setenv("MONITOR_INTERVAL", "soon")
	t.Setenv("MONITOR_BRIGHTNESS_SLACK", "narrow")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MQTT.QoS)
	assert.Equal(t, 60*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 0.5, cfg.Monitor.BrightnessSlack)
}
