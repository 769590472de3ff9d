package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentledger.toml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./rentledger-data", cfg.DataDir)
	require.Equal(t, "0", cfg.DefaultCommission)
	require.Equal(t, "local", cfg.Environment)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentledger.toml")
	body := `DataDir = "/tmp/ledger"
AdminAddress = "0101010101010101010101010101010101010101"
VaultAddress = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
DefaultCommission = "500"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/ledger", cfg.DataDir)

	commission, err := cfg.Commission()
	require.NoError(t, err)
	require.Equal(t, int64(500), commission.Int64())

	admin, err := cfg.Admin()
	require.NoError(t, err)
	require.Equal(t, byte(0x01), admin[0])

	vault, err := cfg.Vault()
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), vault[19])
}

func TestAddressValidation(t *testing.T) {
	cfg := &Config{AdminAddress: "nothex"}
	_, err := cfg.Admin()
	require.Error(t, err)

	cfg = &Config{DefaultCommission: "-5"}
	_, err = cfg.Commission()
	require.Error(t, err)
}
