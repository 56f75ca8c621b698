// This file defines the go-plugin wrapper for running a protocol plugin as a
// subprocess of the monitoring server. The plugin exposes a single Dispatch
// method carrying encoded request and response payloads, so the wire format
// stays identical to the unix-socket transport.
package server

import (
	"context"
	netrpc "net/rpc"

	goplugin "github.com/hashicorp/go-plugin"

	"protod.szuro.net/internal/logger"
	"protod.szuro.net/pkg/protocol"
	"protod.szuro.net/pkg/rpc"
)

// Handshake is the shared configuration between the monitoring server and
// its protocol plugins. This must match exactly on both sides.
var Handshake = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PROTOD_PLUGIN",
	MagicCookieValue: "protocol_plugin_daemon",
}

// PluginName is the key plugins register under in the plugin map.
const PluginName = "protocol"

// DispatchArgs carries one encoded request payload.
type DispatchArgs struct {
	Payload []byte
}

// DispatchReply carries one encoded response payload.
type DispatchReply struct {
	Payload []byte
}

// Dispatcher is what the monitoring server sees after connecting.
type Dispatcher interface {
	Dispatch(payload []byte) ([]byte, error)
}

// dispatchServer is the plugin-process side. All connections of the plugin
// client multiplex onto one session, which matches the one-client-per-plugin
// process model.
type dispatchServer struct {
	session *Session
	enc     rpc.Encoding
}

func (d *dispatchServer) Dispatch(args DispatchArgs, reply *DispatchReply) error {
	reply.Payload = d.session.HandlePayload(context.Background(), d.enc, args.Payload)
	return nil
}

// dispatchClient is the monitoring-server side.
type dispatchClient struct {
	client *netrpc.Client
}

func (d *dispatchClient) Dispatch(payload []byte) ([]byte, error) {
	var reply DispatchReply
	if err := d.client.Call("Plugin.Dispatch", DispatchArgs{Payload: payload}, &reply); err != nil {
		return nil, err
	}
	return reply.Payload, nil
}

// ProtocolPlugin is the go-plugin glue for a protocol plugin.
type ProtocolPlugin struct {
	Impl protocol.Plugin
	Enc  rpc.Encoding
}

func (p *ProtocolPlugin) Server(*goplugin.MuxBroker) (interface{}, error) {
	enc := p.Enc
	if enc == nil {
		enc = rpc.JSONEncoding{}
	}
	return &dispatchServer{session: NewSession(p.Impl), enc: enc}, nil
}

func (p *ProtocolPlugin) Client(b *goplugin.MuxBroker, c *netrpc.Client) (interface{}, error) {
	return &dispatchClient{client: c}, nil
}

// ServePlugin blocks serving the plugin over the go-plugin handshake. Used
// when the daemon is launched as a monitoring-server subprocess instead of
// binding its own socket.
func ServePlugin(impl protocol.Plugin) {
	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]goplugin.Plugin{
			PluginName: &ProtocolPlugin{Impl: impl},
		},
		Logger: logger.NewHCLogAdapter(),
	})
}
