package config

import (
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the ambient configuration for the scanner. The directory to
// scan and the worker count are positional command-line arguments and are
// deliberately not part of the environment configuration.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - MetricsPort: The port for the monitoring server; 0 disables it.
type Config struct {
	Env         string // Env is the current environment: local, development, production.
	MetricsPort int    // MetricsPort is the monitoring server port, 0 to disable.
}

// MustLoad loads configuration from the environment (a .env file is honored
// if present) and returns a Config struct. It panics on invalid values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TALLY")
	v.AutomaticEnv()
	v.SetDefault("env", "production")
	v.SetDefault("metrics_port", "0")

	metricsPort, err := strconv.Atoi(v.GetString("metrics_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	return &Config{
		Env:         v.GetString("env"),
		MetricsPort: metricsPort,
	}
}
