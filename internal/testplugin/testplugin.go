// Package testplugin provides a pass-through protocol plugin used to
// exercise the dispatcher and transports without a real backend.
package testplugin

import (
	"context"

	json "github.com/goccy/go-json"

	"protod.szuro.net/pkg/protocol"
)

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Protocol() string {
	return "test"
}

func (p *Plugin) Version() string {
	return "0.1.0"
}

func (p *Plugin) LoadInputs(raws []json.RawMessage) (any, error) {
	return raws, nil
}

func (p *Plugin) LoadConfig(raw json.RawMessage) (any, error) {
	return raw, nil
}

func (p *Plugin) ShowQueries(qry protocol.QuerySpec, input any) (string, error) {
	return "queries: ...", nil
}

// RunQueries echoes one synthetic row per requested table.
func (p *Plugin) RunQueries(ctx context.Context, qry protocol.QuerySpec, input, config any) (protocol.QueryResult, error) {
	res := protocol.QueryResult{}
	for table, fields := range qry {
		row := protocol.Row{}
		for _, field := range fields {
			row["test_"+field] = protocol.Ok[any]("test")
		}
		res["test_"+table] = protocol.Ok(protocol.Table{
			Value:    []protocol.Row{row},
			Warnings: []string{},
		})
	}
	return res, nil
}
