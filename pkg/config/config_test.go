package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "saisyncd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "vendor:\n  target: fake\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "/var/lib/saisyncd/bus.db", cfg.Store.SQLitePath)
	require.Equal(t, ":9255", cfg.Metrics.Address)
	require.Equal(t, ":50060", cfg.RPC.Address)
}

func TestLoadRejectsMissingVendorTarget(t *testing.T) {
	path := writeConfig(t, "logging:\n  format: text\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	path := writeConfig(t, "vendor:\n  target: fake\nlogging:\n  format: xml\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saisyncd.yaml")

	cfg := &config.Config{Vendor: config.Vendor{Target: "fake"}}
	require.NoError(t, config.Save(path, cfg))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "fake", got.Vendor.Target)
}
