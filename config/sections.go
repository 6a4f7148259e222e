package config

import (
	"fmt"
	"os"
	"time"
)

// StoreConfig selects the booking store backend.
type StoreConfig struct {
	// Driver is "memory" or "postgres".
	Driver string `json:"driver"`
	// DatabaseURL is the postgres connection string. It may also come
	// from the DATABASE_URL environment variable loaded by main.
	DatabaseURL string `json:"database_url"`
	// InitSchema creates the tables on startup when true.
	InitSchema bool `json:"init_schema"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Driver == "" {
		c.Driver = "memory"
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	switch c.Driver {
	case "memory":
		return nil
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("store: database_url is required for the postgres driver")
		}
		return nil
	default:
		return fmt.Errorf("store: unknown driver %q", c.Driver)
	}
}

// MetricsConfig configures the metrics sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// BoardConfig configures the initial view of the schedule board.
type BoardConfig struct {
	// View is "day" or "week".
	View string `json:"view"`
	// Focus is the initially focused ISO date; today when empty.
	Focus string `json:"focus"`
}

// SetDefaults applies sane defaults.
func (c *BoardConfig) SetDefaults() {
	if c.View == "" {
		c.View = "day"
	}
	if c.Focus == "" {
		c.Focus = time.Now().Format("2006-01-02")
	}
}

// Validate checks mandatory fields.
func (c BoardConfig) Validate() error {
	if c.View != "day" && c.View != "week" {
		return fmt.Errorf("board: unknown view %q", c.View)
	}
	if _, err := time.Parse("2006-01-02", c.Focus); err != nil {
		return fmt.Errorf("board: focus: %w", err)
	}
	return nil
}
