package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/big"

	"github.com/rebaselabs/go-rebase/common"
	"github.com/rebaselabs/go-rebase/common/types"
)

// Config is the whole daemon configuration, loaded from a JSON file and
// then overridden by command line flags. The genesis fields (Owner,
// VaultAddress, InitialRate, BaseAlloc) only matter on the first start
// against an empty data dir; afterwards the stored state wins.
type Config struct {
	DataDir  string `json:"DataDir"`
	LogLevel string `json:"LogLevel"`

	RPCEnabled bool   `json:"RPCEnabled"`
	HttpHost   string `json:"HttpHost"`
	HttpPort   int    `json:"HttpPort"`

	Owner        string `json:"Owner"`
	VaultAddress string `json:"VaultAddress"`

	// InitialRate is the first global rate, scaled by 1e18. Decimal string.
	InitialRate string `json:"InitialRate"`

	// BaseAlloc seeds base-asset balances at genesis: address -> amount.
	BaseAlloc map[string]string `json:"BaseAlloc"`

	// AuditSchedule is a cron spec for the supply auditor.
	AuditSchedule string `json:"AuditSchedule"`
}

var DefaultConfig = Config{
	DataDir:       common.DefaultDataDir(),
	LogLevel:      "info",
	HttpHost:      common.DefaultHTTPHost,
	HttpPort:      common.DefaultHTTPPort,
	InitialRate:   "50000000000",
	AuditSchedule: "@every 1h",
}

// ReadConfigFile loads the file over a copy of DefaultConfig, so absent
// fields keep their defaults.
func ReadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig

	text, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(text, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config file %s failed. %v", path, err)
	}
	return &cfg, nil
}

func (c *Config) HTTPEndpoint() string {
	if c.HttpHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.HttpHost, c.HttpPort)
}

// ParseInitialRate returns the configured first global rate.
func (c *Config) ParseInitialRate() (*big.Int, error) {
	rate, ok := new(big.Int).SetString(c.InitialRate, 10)
	if !ok || rate.Sign() < 0 {
		return nil, fmt.Errorf("invalid InitialRate %q", c.InitialRate)
	}
	return rate, nil
}

// ParseOwner returns the configured owner address. Empty is an error: the
// daemon cannot start without someone holding the admin capability.
func (c *Config) ParseOwner() (types.Address, error) {
	if c.Owner == "" {
		return types.Address{}, fmt.Errorf("config Owner is empty")
	}
	return types.HexToAddress(c.Owner)
}

// ParseVaultAddress returns the configured vault address, or a freshly
// generated one when the field is empty.
func (c *Config) ParseVaultAddress() (types.Address, error) {
	if c.VaultAddress == "" {
		return types.CreateAddress()
	}
	return types.HexToAddress(c.VaultAddress)
}

// ParseBaseAlloc decodes the genesis base-asset allocations.
func (c *Config) ParseBaseAlloc() (map[types.Address]*big.Int, error) {
	alloc := make(map[types.Address]*big.Int, len(c.BaseAlloc))
	for addrStr, amountStr := range c.BaseAlloc {
		addr, err := types.HexToAddress(addrStr)
		if err != nil {
			return nil, err
		}
		amount, ok := new(big.Int).SetString(amountStr, 10)
		if !ok || amount.Sign() < 0 {
			return nil, fmt.Errorf("invalid BaseAlloc amount %q for %s", amountStr, addrStr)
		}
		alloc[addr] = amount
	}
	return alloc, nil
}
