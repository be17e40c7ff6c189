// Package config loads the daemon's YAML configuration: the vendor SDK
// connection target, the persistent bus store path, the diag-shell
// toggle, and default logging. Modeled structurally on the teacher's
// pkg/config/loader.go (Load/Save, applyDefaults, Validate), collapsed
// to the handful of fields a syncd process actually needs instead of the
// teacher's full BNG configuration surface.
package config

import "time"

// Config is the daemon's top-level configuration (cmd/saisyncd's --config
// flag).
type Config struct {
	Logging Logging `yaml:"logging"`
	Vendor  Vendor  `yaml:"vendor"`
	Store   Store   `yaml:"store"`
	Diag    Diag    `yaml:"diag,omitempty"`
	Metrics Metrics `yaml:"metrics,omitempty"`
	RPC     RPC     `yaml:"rpc,omitempty"`
}

// Logging mirrors internal/obslog.Configure's parameters directly so a
// config file's logging section can be applied with no translation step.
type Logging struct {
	Format     string            `yaml:"format"`
	Level      string            `yaml:"level"`
	Components map[string]string `yaml:"components,omitempty"`
}

// Vendor identifies which ASIC SDK binding to connect to and how. The SDK
// binding itself is out of scope for this repo (pkg/syncd/vendor.SDK);
// this only carries the connection string a real binding would consume.
type Vendor struct {
	Target string `yaml:"target"`
}

// Store configures the persistent bus.Store backing VID<->RID
// translation and the VID counter.
type Store struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// Diag controls the vendor-diag thread (spec section 6); saisyncd's --diag
// flag also starts it. A zero Interval makes saisyncd use one minute.
type Diag struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval,omitempty"`
}

// Metrics controls the optional Prometheus HTTP exporter.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address,omitempty"`
}

// RPC controls the api/saipb gRPC introspection side channel saictl's
// status/setlevel/diag commands talk to.
type RPC struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "/var/lib/saisyncd/bus.db"
	}
	if c.Diag.Interval == 0 {
		c.Diag.Interval = 30 * time.Second
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9255"
	}
	if c.RPC.Address == "" {
		c.RPC.Address = ":50060"
	}
}
