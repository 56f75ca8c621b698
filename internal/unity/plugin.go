package unity

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/exp/slices"

	"protod.szuro.net/internal/state"
	"protod.szuro.net/pkg/protocol"
)

const ProtocolName = "DELL EMC Unity"
const PluginVersion = "0.1.0"

// Options configures where the plugin keeps its per-array polling state.
type Options struct {
	StateDir     string
	StateBackend string
}

// Plugin is the array-metrics protocol plugin.
type Plugin struct {
	opts Options
}

func New(opts Options) *Plugin {
	if opts.StateDir == "" {
		opts.StateDir = "/var/lib/protod/state"
	}
	if opts.StateBackend == "" {
		opts.StateBackend = state.FILE_BACKEND
	}
	return &Plugin{opts: opts}
}

func (p *Plugin) Protocol() string {
	return ProtocolName
}

func (p *Plugin) Version() string {
	return PluginVersion
}

func (p *Plugin) LoadInputs(raws []json.RawMessage) (any, error) {
	return ParseInputs(raws)
}

func (p *Plugin) LoadConfig(raw json.RawMessage) (any, error) {
	return ParseConfig(raw)
}

// ShowQueries describes the commands a query specification resolves to. It
// performs no I/O.
func (p *Plugin) ShowQueries(qry protocol.QuerySpec, input any) (string, error) {
	in, ok := input.(*Input)
	if !ok {
		return "", fmt.Errorf("unexpected input type %T", input)
	}

	tables := make([]string, 0, len(qry))
	for table := range qry {
		tables = append(tables, table)
	}
	slices.Sort(tables)

	var b strings.Builder
	b.WriteString("queries:\n")
	for _, table := range tables {
		dt, ok := in.Table(table)
		if !ok {
			fmt.Fprintf(&b, "  %s: unknown table\n", table)
			continue
		}
		fmt.Fprintf(&b, "  %s: %s %q fields %v\n", table, dt.CommandName, dt.CommandLine, qry[table])
	}
	return b.String(), nil
}

func (p *Plugin) RunQueries(ctx context.Context, qry protocol.QuerySpec, input, config any) (protocol.QueryResult, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T", input)
	}
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", config)
	}

	store := state.NewStore(p.opts.StateBackend, p.opts.StateDir, cfg.Target())
	defer store.Close()

	session := NewPollSession(NewClient(cfg), cfg, in, store)
	return session.Run(ctx, qry), nil
}

func (p *Plugin) GetTables(input any) (map[string]protocol.TableSpec, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T", input)
	}
	tables := make(map[string]protocol.TableSpec, len(in.DataTables))
	for name, dt := range in.DataTables {
		table := strings.TrimPrefix(name, refPrefix)
		tables[table] = protocol.TableSpec{
			Name:        table,
			Command:     dt.CommandName,
			CommandLine: dt.CommandLine,
		}
	}
	return tables, nil
}

func (p *Plugin) GetFields(input any) (map[string]protocol.FieldSpec, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T", input)
	}
	fields := make(map[string]protocol.FieldSpec, len(in.DataFields))
	for name, df := range in.DataFields {
		field := strings.TrimPrefix(name, refPrefix)
		fields[field] = protocol.FieldSpec{
			Name:      field,
			Parameter: df.ParameterName,
		}
	}
	return fields, nil
}
