package config

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DataDir           string `toml:"DataDir"`
	AdminAddress      string `toml:"AdminAddress"`
	VaultAddress      string `toml:"VaultAddress"`
	DefaultCommission string `toml:"DefaultCommission"`
	Environment       string `toml:"Environment"`
	LogFile           string `toml:"LogFile"`
}

// Load loads the configuration from the given path, creating a default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{}
	applyDefaults(cfg)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./rentledger-data"
	}
	if strings.TrimSpace(cfg.DefaultCommission) == "" {
		cfg.DefaultCommission = "0"
	}
	if strings.TrimSpace(cfg.Environment) == "" {
		cfg.Environment = "local"
	}
}

// Commission parses the configured default commission into an integer amount.
func (c *Config) Commission() (*big.Int, error) {
	raw := strings.TrimSpace(c.DefaultCommission)
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("config: invalid DefaultCommission %q", c.DefaultCommission)
	}
	return v, nil
}

// Admin parses the configured admin address.
func (c *Config) Admin() ([20]byte, error) {
	return parseAddress(c.AdminAddress, "AdminAddress")
}

// Vault parses the configured custody vault address.
func (c *Config) Vault() ([20]byte, error) {
	return parseAddress(c.VaultAddress, "VaultAddress")
}

func parseAddress(raw, field string) ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	decoded, err := hex.DecodeString(trimmed)
	if err != nil || len(decoded) != len(addr) {
		return addr, fmt.Errorf("config: %s must be a 20-byte hex address", field)
	}
	copy(addr[:], decoded)
	return addr, nil
}
