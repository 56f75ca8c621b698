package unity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"protod.szuro.net/internal/logger"
	"protod.szuro.net/internal/state"
	"protod.szuro.net/pkg/protocol"
)

// maxConcurrentCommands bounds parallel API calls within one poll cycle.
const maxConcurrentCommands = 8

// commandKey identifies one upstream command. Distinct tables referencing
// the same command share one execution per cycle.
type commandKey struct {
	name string
	line string
}

type commandResult struct {
	rows []map[string]protocol.Result[any]
	err  error
}

// tableBinding is one requested table resolved against the input catalog.
type tableBinding struct {
	cmd    commandKey
	fields map[string]string // field name -> parameter name
	err    string
}

// PollSession executes one poll cycle against an array: login, run the
// distinct commands behind the requested tables, persist aggregation state,
// logout.
type PollSession struct {
	client *Client
	cfg    *Config
	input  *Input
	store  state.Store

	stateMu sync.Mutex
	states  map[string]state.MetricState
}

func NewPollSession(client *Client, cfg *Config, input *Input, store state.Store) *PollSession {
	return &PollSession{
		client: client,
		cfg:    cfg,
		input:  input,
		store:  store,
		states: map[string]state.MetricState{},
	}
}

// Run performs the cycle. Failures below the login step are scoped to the
// command or field they hit; a failed login reports the same detail for
// every requested table without touching the upstream API further.
func (s *PollSession) Run(ctx context.Context, qry protocol.QuerySpec) protocol.QueryResult {
	bindings, commands := s.resolve(qry)

	if err := s.client.Login(ctx); err != nil {
		logger.Warn("Login failed", slog.String("host", s.cfg.Hostname), slog.Any("error", err))
		res := protocol.QueryResult{}
		for table := range qry {
			res[table] = protocol.Err[protocol.Table](err.Error())
		}
		return res
	}

	states, err := s.store.Load()
	if err != nil {
		logger.Warn("Failed to load metric state, starting empty", slog.Any("error", err))
		states = map[string]state.MetricState{}
	}
	s.states = states

	results := s.execute(ctx, commands)
	res := assemble(bindings, results)

	if err := s.store.Save(s.states); err != nil {
		logger.Error("Failed to persist metric state", slog.Any("error", err))
	}
	if err := s.client.Logout(ctx); err != nil {
		logger.Warn("Logout failed", slog.String("host", s.cfg.Hostname), slog.Any("error", err))
	}
	return res
}

// resolve binds each requested table to its command and merges the
// parameter sets of tables sharing a command.
func (s *PollSession) resolve(qry protocol.QuerySpec) (map[string]*tableBinding, map[commandKey][]string) {
	bindings := map[string]*tableBinding{}
	paramSets := map[commandKey]map[string]bool{}

	for table, fields := range qry {
		b := &tableBinding{fields: map[string]string{}}
		bindings[table] = b

		dt, ok := s.input.Table(table)
		if !ok {
			b.err = fmt.Sprintf("unknown table: %s", table)
			continue
		}
		b.cmd = commandKey{name: dt.CommandName, line: dt.CommandLine}

		for _, field := range fields {
			df, ok := s.input.Field(field)
			if !ok {
				b.err = fmt.Sprintf("unknown field: %s", field)
				break
			}
			b.fields[field] = df.ParameterName
		}
		if b.err != "" {
			continue
		}

		set := paramSets[b.cmd]
		if set == nil {
			set = map[string]bool{}
			paramSets[b.cmd] = set
		}
		for _, param := range b.fields {
			set[param] = true
		}
	}

	commands := map[commandKey][]string{}
	for cmd, set := range paramSets {
		params := make([]string, 0, len(set))
		for param := range set {
			params = append(params, param)
		}
		slices.Sort(params)
		commands[cmd] = params
	}
	return bindings, commands
}

// execute runs the distinct commands in parallel. Each command's outcome is
// kept separately so one failure never hides another command's rows.
func (s *PollSession) execute(ctx context.Context, commands map[commandKey][]string) map[commandKey]*commandResult {
	results := map[commandKey]*commandResult{}
	g := errgroup.Group{}
	g.SetLimit(maxConcurrentCommands)
	for cmd, params := range commands {
		cr := &commandResult{}
		results[cmd] = cr
		g.Go(func() error {
			cr.rows, cr.err = s.runCommand(ctx, cmd, params)
			return nil
		})
	}
	g.Wait()
	return results
}

func assemble(bindings map[string]*tableBinding, results map[commandKey]*commandResult) protocol.QueryResult {
	res := protocol.QueryResult{}
	for table, b := range bindings {
		if b.err != "" {
			res[table] = protocol.Err[protocol.Table](b.err)
			continue
		}
		cr := results[b.cmd]
		if cr.err != nil {
			res[table] = protocol.Err[protocol.Table](cr.err.Error())
			continue
		}
		rows := make([]protocol.Row, 0, len(cr.rows))
		for _, raw := range cr.rows {
			row := protocol.Row{}
			for field, param := range b.fields {
				if v, ok := raw[param]; ok {
					row[field] = v
				}
			}
			rows = append(rows, row)
		}
		res[table] = protocol.Ok(protocol.Table{Value: rows, Warnings: []string{}})
	}
	return res
}

func (s *PollSession) runCommand(ctx context.Context, cmd commandKey, params []string) ([]map[string]protocol.Result[any], error) {
	switch cmd.name {
	case "get_resource":
		return s.getResource(ctx, cmd.line, params)
	case "get_pools":
		return s.getPools(ctx, cmd.line, params)
	case "get_historic_metric_value":
		return s.historicMetric(ctx, cmd.line, params)
	case "get_real_time_metric_value", "get_real_time_metric":
		// Realtime queries need query-creation permissions on the array.
		return []map[string]protocol.Result[any]{}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd.name)
	}
}

// getResource lists a resource type with only the needed fields projected
// and walks any nested sub-tree the command line addresses.
func (s *PollSession) getResource(ctx context.Context, line string, params []string) ([]map[string]protocol.Result[any], error) {
	path := strings.Split(line, ".")

	var fields []string
	if len(path) == 1 {
		seen := map[string]bool{}
		for _, param := range params {
			head, _, _ := strings.Cut(param, ".")
			if !seen[head] {
				seen[head] = true
				fields = append(fields, head)
			}
		}
	} else {
		fields = []string{path[1]}
	}

	doc, err := s.client.Query(ctx, fmt.Sprintf("types/%s/instances?fields=%s", path[0], strings.Join(fields, ",")))
	if err != nil {
		return nil, err
	}
	if msg, failed := apiError(doc); failed {
		return nil, errors.New(msg)
	}

	var rows []map[string]protocol.Result[any]
	entries, _ := doc["entries"].([]any)
	for _, e := range entries {
		entry, _ := e.(map[string]any)
		tree := entry["content"]
		if len(path) > 1 {
			branches, err := followPath(tree, path[1:])
			if err != nil {
				return nil, err
			}
			for _, branch := range branches {
				rows = append(rows, fillRow(params, branch))
			}
		} else {
			rows = append(rows, fillRow(params, tree))
		}
	}
	return rows, nil
}

// getPools lists pools with the command line's attribute projected alongside
// the pool name, emitting one row per walked branch.
func (s *PollSession) getPools(ctx context.Context, line string, params []string) ([]map[string]protocol.Result[any], error) {
	path := strings.Split(line, ".")

	doc, err := s.client.Query(ctx, fmt.Sprintf("types/pool/instances?fields=name,%s", path[0]))
	if err != nil {
		return nil, err
	}
	if msg, failed := apiError(doc); failed {
		return nil, errors.New(msg)
	}

	var rows []map[string]protocol.Result[any]
	entries, _ := doc["entries"].([]any)
	for _, e := range entries {
		entry, _ := e.(map[string]any)
		content, _ := entry["content"].(map[string]any)
		poolName := content["name"]

		branches := []any{content}
		if len(path) > 1 {
			branches, err = followPath(content, path)
			if err != nil {
				return nil, err
			}
		}
		for _, branch := range branches {
			row := make(map[string]protocol.Result[any], len(params))
			for _, param := range params {
				if param == "name" {
					row[param] = protocol.Ok(poolName)
					continue
				}
				leaves, err := followPath(branch, strings.Split(param, "."))
				if err != nil {
					row[param] = protocol.Err[any](err.Error())
					continue
				}
				row[param] = protocol.Ok(leavesValue(leaves, false))
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// apiError extracts the localized messages of an API error document.
func apiError(doc map[string]any) (string, bool) {
	if _, ok := doc["entries"]; ok {
		return "", false
	}
	errObj, ok := doc["error"].(map[string]any)
	if !ok {
		return "", false
	}
	var msgs []string
	messages, _ := errObj["messages"].([]any)
	for _, m := range messages {
		if msg, ok := m.(map[string]any); ok {
			msgs = append(msgs, fmt.Sprint(msg["en-US"]))
		}
	}
	return strings.Join(msgs, ", "), true
}
