package server

import (
	"context"
	"net"
	"path"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protod.szuro.net/internal/testplugin"
	"protod.szuro.net/pkg/protocol"
	"protod.szuro.net/pkg/rpc"
)

func startServer(t *testing.T) string {
	t.Helper()
	socket := path.Join(t.TempDir(), "test.sock")
	srv := NewServer(testplugin.New(), socket, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	t.Cleanup(func() {
		cancel()
		srv.Shutdown()
		require.NoError(t, <-done)
	})

	return socket
}

func dial(t *testing.T, socket string) net.Conn {
	t.Helper()
	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("unix", socket)
		if err == nil {
			t.Cleanup(func() { conn.Close() })
			return conn
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("cannot dial %s: %v", socket, err)
	return nil
}

func TestServerEndToEnd(t *testing.T) {
	socket := startServer(t)
	client := rpc.NewClient(dial(t, socket), nil)

	name, err := client.Protocol()
	require.NoError(t, err)
	assert.Equal(t, "test", name)

	inputRef, err := client.LoadInputs([]json.RawMessage{json.RawMessage(`{}`)})
	require.NoError(t, err)
	configRef, err := client.LoadConfig(json.RawMessage(`{}`))
	require.NoError(t, err)

	desc, err := client.ShowQueries(protocol.QuerySpec{"t": {"f"}}, inputRef, configRef)
	require.NoError(t, err)
	assert.Equal(t, "queries: ...", desc)

	result, err := client.RunQueries(protocol.QuerySpec{"t": {"f"}}, inputRef, configRef)
	require.NoError(t, err)
	assert.Contains(t, result, "test_t")

	require.NoError(t, client.UnloadInputs(inputRef))
	require.NoError(t, client.UnloadConfig(configRef))
}

func TestServerRemoteErrors(t *testing.T) {
	socket := startServer(t)
	client := rpc.NewClient(dial(t, socket), nil)

	_, err := client.RunQueries(protocol.QuerySpec{}, "bogus", "bogus")
	var remote *rpc.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "unknown input reference: bogus", remote.Message)

	// The connection survives the error.
	_, err = client.Version()
	assert.NoError(t, err)
}

func TestServerUnsupportedTagKeepsConnection(t *testing.T) {
	socket := startServer(t)
	framed := rpc.NewConn(dial(t, socket))

	require.NoError(t, framed.WriteMessage([]byte(`{"frobnicate":{}}`)))
	reply, err := framed.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Err":"unsupported request: frobnicate"}`, string(reply))

	require.NoError(t, framed.WriteMessage([]byte(`"protocol"`)))
	reply, err = framed.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ok":"test"}`, string(reply))
}

func TestSessionsAreIsolated(t *testing.T) {
	socket := startServer(t)
	first := rpc.NewClient(dial(t, socket), nil)
	second := rpc.NewClient(dial(t, socket), nil)

	ref, err := first.LoadConfig(json.RawMessage(`{}`))
	require.NoError(t, err)

	err = second.UnloadConfig(ref)
	var remote *rpc.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "unknown config reference: "+ref, remote.Message)
}
