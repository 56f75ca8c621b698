package unity

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// refPrefix namespaces table and field identifiers in the input document.
const refPrefix = "API_"

// DataTable binds a table name to the command producing its rows.
type DataTable struct {
	CommandName string `json:"CommandName"`
	CommandLine string `json:"CommandLine"`
}

// DataField binds a field name to a command parameter.
type DataField struct {
	ParameterName string `json:"ParameterName"`
}

// Input is the merged table and field catalog the plugin polls from.
type Input struct {
	DataTables map[string]DataTable `json:"DataTables"`
	DataFields map[string]DataField `json:"DataFields"`
}

// ParseInputs decodes raw input blobs and merges them into one catalog.
// Later blobs win on duplicate identifiers.
func ParseInputs(raws []json.RawMessage) (*Input, error) {
	merged := &Input{
		DataTables: map[string]DataTable{},
		DataFields: map[string]DataField{},
	}
	for i, raw := range raws {
		var in Input
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("parse input %d: %w", i, err)
		}
		for name, table := range in.DataTables {
			merged.DataTables[name] = table
		}
		for name, field := range in.DataFields {
			merged.DataFields[name] = field
		}
	}
	return merged, nil
}

// Table resolves a query-spec table name to its command.
func (in *Input) Table(name string) (DataTable, bool) {
	table, ok := in.DataTables[refPrefix+name]
	return table, ok
}

// Field resolves a query-spec field name to its parameter.
func (in *Input) Field(name string) (DataField, bool) {
	field, ok := in.DataFields[refPrefix+name]
	return field, ok
}
