package server

import (
	"net"
	netrpc "net/rpc"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protod.szuro.net/internal/testplugin"
)

func pipeDispatcher(t *testing.T) Dispatcher {
	t.Helper()
	plugin := &ProtocolPlugin{Impl: testplugin.New()}

	impl, err := plugin.Server(nil)
	require.NoError(t, err)
	srv := netrpc.NewServer()
	require.NoError(t, srv.RegisterName("Plugin", impl))

	serverConn, clientConn := net.Pipe()
	go srv.ServeConn(serverConn)
	t.Cleanup(func() { clientConn.Close() })

	raw, err := plugin.Client(nil, netrpc.NewClient(clientConn))
	require.NoError(t, err)
	return raw.(Dispatcher)
}

func TestGoPluginDispatch(t *testing.T) {
	dispatcher := pipeDispatcher(t)

	reply, err := dispatcher.Dispatch([]byte(`"protocol"`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ok":"test"}`, string(reply))

	reply, err = dispatcher.Dispatch([]byte(`"version"`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ok":"0.1.0"}`, string(reply))
}

func TestGoPluginSessionSurvivesCalls(t *testing.T) {
	dispatcher := pipeDispatcher(t)

	reply, err := dispatcher.Dispatch([]byte(`{"load_config":{"config":{}}}`))
	require.NoError(t, err)

	var envelope struct {
		Ok string `json:"Ok"`
	}
	require.NoError(t, json.Unmarshal(reply, &envelope))
	require.NotEmpty(t, envelope.Ok)

	// The ref minted by the previous call resolves on the next one.
	reply, err = dispatcher.Dispatch([]byte(`{"unload_config":{"config":"` + envelope.Ok + `"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ok":null}`, string(reply))
}

func TestGoPluginUnsupportedTag(t *testing.T) {
	dispatcher := pipeDispatcher(t)

	reply, err := dispatcher.Dispatch([]byte(`{"frobnicate":{}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Err":"unsupported request: frobnicate"}`, string(reply))
}
