package testplugin

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protod.szuro.net/pkg/protocol"
)

func TestIdentity(t *testing.T) {
	p := New()
	assert.Equal(t, "test", p.Protocol())
	assert.Equal(t, "0.1.0", p.Version())
}

func TestLoadersPassThrough(t *testing.T) {
	p := New()

	raws := []json.RawMessage{json.RawMessage(`{"a":1}`)}
	input, err := p.LoadInputs(raws)
	require.NoError(t, err)
	assert.Equal(t, any(raws), input)

	raw := json.RawMessage(`{"b":2}`)
	config, err := p.LoadConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, any(raw), config)
}

func TestRunQueriesEchoes(t *testing.T) {
	p := New()

	res, err := p.RunQueries(context.Background(),
		protocol.QuerySpec{"cpu": {"usage", "idle"}}, nil, nil)
	require.NoError(t, err)

	table, ok := res["test_cpu"].Value()
	require.True(t, ok)
	assert.Empty(t, table.Warnings)
	require.Len(t, table.Value, 1)

	usage, ok := table.Value[0]["test_usage"].Value()
	require.True(t, ok)
	assert.Equal(t, "test", usage)
	_, ok = table.Value[0]["test_idle"].Value()
	assert.True(t, ok)
}
