package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "₹", cfg.Invoice.CurrencySymbol)
	assert.False(t, cfg.Invoice.ShowTax)
	assert.Equal(t, "1", cfg.Invoice.SeedNumber)
	assert.Empty(t, cfg.Archive.DSN)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileAndEnv(t *testing.T) {
	p := writeConfig(t, `
server:
  port: 9090
invoice:
  currency_symbol: "$"
  show_tax: true
  seed_number: "INV-0001"
export:
  dir: ./out
`)
	t.Setenv("INVOICE_SERVER_PORT", "9191")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "$", cfg.Invoice.CurrencySymbol)
	assert.True(t, cfg.Invoice.ShowTax)
	assert.Equal(t, "INV-0001", cfg.Invoice.SeedNumber)
	assert.Equal(t, "./out", cfg.Export.Dir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsTwoStores(t *testing.T) {
	p := writeConfig(t, `
export:
  dir: ./out
  s3:
    bucket: invoices
`)
	_, err := Load(p)
	assert.ErrorContains(t, err, "mutually exclusive")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
