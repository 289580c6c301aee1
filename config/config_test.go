package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rebaselabs/go-rebase/common/types"
)

func TestReadConfigFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_config.json")
	text := `{"DataDir":"/tmp/grebase-test","Owner":"","HttpPort":9999}`
	assert.NoError(t, ioutil.WriteFile(path, []byte(text), 0600))

	cfg, err := ReadConfigFile(path)
	assert.NoError(t, err)

	assert.Equal(t, "/tmp/grebase-test", cfg.DataDir)
	assert.Equal(t, 9999, cfg.HttpPort)

	// untouched fields keep their defaults
	assert.Equal(t, DefaultConfig.LogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultConfig.HttpHost, cfg.HttpHost)
	assert.Equal(t, DefaultConfig.InitialRate, cfg.InitialRate)
	assert.Equal(t, DefaultConfig.AuditSchedule, cfg.AuditSchedule)
}

func TestReadConfigFileMissing(t *testing.T) {
	_, err := ReadConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadConfigFileGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_config.json")
	assert.NoError(t, ioutil.WriteFile(path, []byte("not json"), 0600))

	_, err := ReadConfigFile(path)
	assert.Error(t, err)
}

func TestHTTPEndpoint(t *testing.T) {
	cfg := Config{HttpHost: "127.0.0.1", HttpPort: 48450}
	assert.Equal(t, "127.0.0.1:48450", cfg.HTTPEndpoint())

	cfg.HttpHost = ""
	assert.Equal(t, "", cfg.HTTPEndpoint())
}

func TestParseInitialRate(t *testing.T) {
	cfg := Config{InitialRate: "50000000000"}
	rate, err := cfg.ParseInitialRate()
	assert.NoError(t, err)
	assert.Equal(t, "50000000000", rate.String())

	cfg.InitialRate = "-1"
	_, err = cfg.ParseInitialRate()
	assert.Error(t, err)

	cfg.InitialRate = "five"
	_, err = cfg.ParseInitialRate()
	assert.Error(t, err)
}

func TestParseOwner(t *testing.T) {
	cfg := Config{}
	_, err := cfg.ParseOwner()
	assert.Error(t, err)

	addr, err := types.CreateAddress()
	assert.NoError(t, err)

	cfg.Owner = addr.Hex()
	owner, err := cfg.ParseOwner()
	assert.NoError(t, err)
	assert.Equal(t, addr, owner)
}

func TestParseVaultAddress(t *testing.T) {
	// empty generates a fresh address
	cfg := Config{}
	generated, err := cfg.ParseVaultAddress()
	assert.NoError(t, err)
	assert.False(t, generated.IsZero())

	cfg.VaultAddress = generated.Hex()
	parsed, err := cfg.ParseVaultAddress()
	assert.NoError(t, err)
	assert.Equal(t, generated, parsed)
}

func TestParseBaseAlloc(t *testing.T) {
	a, _ := types.CreateAddress()
	b, _ := types.CreateAddress()

	cfg := Config{BaseAlloc: map[string]string{
		a.Hex(): "1000000000000000000",
		b.Hex(): "42",
	}}

	alloc, err := cfg.ParseBaseAlloc()
	assert.NoError(t, err)
	assert.Len(t, alloc, 2)
	assert.Equal(t, "1000000000000000000", alloc[a].String())
	assert.Equal(t, "42", alloc[b].String())

	cfg.BaseAlloc = map[string]string{a.Hex(): "-5"}
	_, err = cfg.ParseBaseAlloc()
	assert.Error(t, err)

	cfg.BaseAlloc = map[string]string{"bogus": "1"}
	_, err = cfg.ParseBaseAlloc()
	assert.Error(t, err)
}
