package unity

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(json.RawMessage(`{"hostname":"unity01","config":{"username":"admin","password":"secret"}}`))
	require.NoError(t, err)
	assert.Equal(t, "unity01", cfg.Hostname)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.True(t, cfg.Insecure)
	assert.True(t, cfg.CatchupUnlimited)
}

func TestParseConfigOverrides(t *testing.T) {
	cfg, err := ParseConfig(json.RawMessage(`{
		"hostname": "unity01",
		"config": {
			"username": "admin",
			"password": "secret",
			"timeout": 5,
			"insecure": false,
			"catchup_unlimited": false
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.Insecure)
	assert.False(t, cfg.CatchupUnlimited)
}

func TestParseConfigMissingFields(t *testing.T) {
	_, err := ParseConfig(json.RawMessage(`{"config":{"username":"admin"}}`))
	assert.ErrorContains(t, err, "hostname")

	_, err = ParseConfig(json.RawMessage(`{"hostname":"unity01","config":{}}`))
	assert.ErrorContains(t, err, "username")
}

func TestConfigBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		expected string
	}{
		{"Bare hostname", "unity01", "https://unity01/api"},
		{"Explicit scheme", "http://127.0.0.1:8080", "http://127.0.0.1:8080/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Hostname: tt.hostname}
			assert.Equal(t, tt.expected, cfg.BaseURL())
		})
	}
}

func TestConfigTarget(t *testing.T) {
	cfg := Config{Hostname: "http://127.0.0.1:8080/extra"}
	assert.Equal(t, "127.0.0.1:8080_extra", cfg.Target())

	cfg = Config{Hostname: "unity01"}
	assert.Equal(t, "unity01", cfg.Target())
}

func TestParseInputsMerges(t *testing.T) {
	first := json.RawMessage(`{
		"DataTables": {"API_Disks": {"CommandName": "get_resource", "CommandLine": "disk"}},
		"DataFields": {"API_name": {"ParameterName": "name"}}
	}`)
	second := json.RawMessage(`{
		"DataTables": {"API_Cpu": {"CommandName": "get_historic_metric_value", "CommandLine": "sp.*.cpu.summary.utilization"}},
		"DataFields": {"API_value": {"ParameterName": "value"}}
	}`)

	input, err := ParseInputs([]json.RawMessage{first, second})
	require.NoError(t, err)

	disk, ok := input.Table("Disks")
	require.True(t, ok)
	assert.Equal(t, "get_resource", disk.CommandName)

	cpu, ok := input.Table("Cpu")
	require.True(t, ok)
	assert.Equal(t, "sp.*.cpu.summary.utilization", cpu.CommandLine)

	field, ok := input.Field("value")
	require.True(t, ok)
	assert.Equal(t, "value", field.ParameterName)

	_, ok = input.Table("Luns")
	assert.False(t, ok)
}

func TestParseInputsRejectsMalformed(t *testing.T) {
	_, err := ParseInputs([]json.RawMessage{json.RawMessage(`{nope`)})
	assert.Error(t, err)
}
