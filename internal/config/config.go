package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	MQTT          MQTTConfig
	Monitor       MonitorConfig
	Observability ObservabilityConfig
	RateLimit     RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// MQTTConfig holds broker connection and topic configuration
type MQTTConfig struct {
	BrokerURL      string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	SensorTopic    string
	QoS            int
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

// MonitorConfig holds the condition-monitoring tolerances and schedule
type MonitorConfig struct {
	Interval         time.Duration
	BrightnessSlack  float64
	TemperatureSlack float64
	HumiditySlack    float64
	MoistureDryBelow float64
	MoistureWetAbove float64
	ReadingMaxAge    time.Duration
}

// ObservabilityConfig holds logging and tracing configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string
	OTELEnabled    bool
	ServiceName    string
	ServiceVersion string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  parseDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: parseDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  parseDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "plantstein"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "plantstein"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    parseInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    parseInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: parseDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		MQTT: MQTTConfig{
			BrokerURL:      getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
			ClientID:       getEnv("MQTT_CLIENT_ID", "plantstein-server"),
			Username:       getEnv("MQTT_USERNAME", ""),
			Password:       getEnv("MQTT_PASSWORD", ""),
			TopicPrefix:    getEnv("MQTT_TOPIC_PREFIX", "plant-conditions"),
			SensorTopic:    getEnv("MQTT_SENSOR_TOPIC", "room-conditions/+/+"),
			QoS:            parseInt("MQTT_QOS", 1),
			ConnectTimeout: parseDuration("MQTT_CONNECT_TIMEOUT", "10s"),
			PublishTimeout: parseDuration("MQTT_PUBLISH_TIMEOUT", "5s"),
		},
		Monitor: MonitorConfig{
			Interval:         parseDuration("MONITOR_INTERVAL", "60s"),
			BrightnessSlack:  parseFloat("MONITOR_BRIGHTNESS_SLACK", 0.5),
			TemperatureSlack: parseFloat("MONITOR_TEMPERATURE_SLACK", 2.0),
			HumiditySlack:    parseFloat("MONITOR_HUMIDITY_SLACK", 5.0),
			MoistureDryBelow: parseFloat("MONITOR_MOISTURE_DRY_BELOW", 30.0),
			MoistureWetAbove: parseFloat("MONITOR_MOISTURE_WET_ABOVE", 70.0),
			ReadingMaxAge:    parseDuration("MONITOR_READING_MAX_AGE", "5m"),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			OTELEnabled:    parseBool("OTEL_ENABLED", false),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "plantstein"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "0.1.0"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: float64(parseInt("RATELIMIT_RPS", 10)),
			Burst:             parseInt("RATELIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("MONITOR_INTERVAL must be positive")
	}
	if c.Monitor.BrightnessSlack < 0 || c.Monitor.TemperatureSlack < 0 || c.Monitor.HumiditySlack < 0 {
		return fmt.Errorf("slack values must not be negative")
	}
	if c.Monitor.MoistureDryBelow > c.Monitor.MoistureWetAbove {
		return fmt.Errorf("MONITOR_MOISTURE_DRY_BELOW must not exceed MONITOR_MOISTURE_WET_ABOVE")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("MQTT_QOS must be 0, 1, or 2")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func parseFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func parseBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func parseDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	d, err := time.ParseDuration(value)
	if err != nil {
		// Fallback to default
		d, _ = time.ParseDuration(defaultValue)
	}
	return d
}
