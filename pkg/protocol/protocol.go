// Package protocol defines the contract between the protod daemon framework
// and concrete protocol plugins.
//
// A protocol plugin monitors one technology (a storage array, a hypervisor,
// a directory service) and is driven by the monitoring server through a fixed
// request vocabulary. The plugin turns raw configuration and input blobs into
// internal representations, and executes query specifications against them,
// reporting per-table and per-field outcomes so that a single bad value never
// invalidates unrelated data.
package protocol

import (
	"context"

	json "github.com/goccy/go-json"
)

// QuerySpec maps a table name to the field names requested for that table.
// Table and field names are plugin-defined strings with no meaning across
// plugins.
type QuerySpec map[string][]string

// Plugin is the surface every protocol plugin implements.
//
// LoadInputs and LoadConfig produce opaque handles owned by the session that
// loaded them; the daemon hands the same handles back to ShowQueries and
// RunQueries. Plugins never see session references.
type Plugin interface {
	// Protocol returns the plugin's protocol name, e.g. "DELL EMC Unity".
	Protocol() string

	// Version returns the plugin version string.
	Version() string

	// LoadInputs parses and merges one or more raw input blobs into the
	// plugin's internal input representation.
	LoadInputs(raw []json.RawMessage) (any, error)

	// LoadConfig parses a raw configuration blob (credentials, host,
	// options) into the plugin's internal configuration.
	LoadConfig(raw json.RawMessage) (any, error)

	// ShowQueries describes, for diagnostics, what running the given query
	// specification would do. It must not perform I/O.
	ShowQueries(qry QuerySpec, input any) (string, error)

	// RunQueries executes the query specification against the loaded input
	// and configuration and reports one result envelope per table.
	RunQueries(ctx context.Context, qry QuerySpec, input, config any) (QueryResult, error)
}

// TableLister is an optional plugin capability: enumerating the data tables
// an input defines. Plugins that do not implement it are reported as such by
// the dispatcher, which is how capability discovery works without a separate
// negotiation step.
type TableLister interface {
	GetTables(input any) (map[string]TableSpec, error)
}

// FieldLister is an optional plugin capability: enumerating the data fields
// an input defines.
type FieldLister interface {
	GetFields(input any) (map[string]FieldSpec, error)
}

// TableSpec describes one data table a plugin can produce and the command
// behind it.
type TableSpec struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	CommandLine string `json:"command_line"`
}

// FieldSpec describes one data field a plugin can produce and the command
// parameter it maps to.
type FieldSpec struct {
	Name      string `json:"name"`
	Parameter string `json:"parameter"`
}
