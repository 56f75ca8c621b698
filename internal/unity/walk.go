package unity

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"protod.szuro.net/pkg/protocol"
)

var durationRE = regexp.MustCompile(`^\d{1,5}:\d{2}:\d{2}\.\d{3}$`)

// followPath walks a decoded JSON tree along dotted-path segments. A "*"
// segment expands every element of the current branch set, flattening one
// level; arrays expand to their elements and objects to their values in key
// order. A named segment indexes into objects; anything else becomes a nil
// branch. Expanding a scalar is malformed upstream data.
func followPath(tree any, path []string) ([]any, error) {
	branches := []any{tree}
	if list, ok := tree.([]any); ok {
		branches = list
	}
	for _, step := range path {
		var next []any
		for _, branch := range branches {
			if step == "*" {
				switch b := branch.(type) {
				case nil:
				case []any:
					next = append(next, b...)
				case map[string]any:
					keys := make([]string, 0, len(b))
					for k := range b {
						keys = append(keys, k)
					}
					sort.Strings(keys)
					for _, k := range keys {
						next = append(next, b[k])
					}
				default:
					return nil, fmt.Errorf("cannot expand %v", branch)
				}
				continue
			}
			if m, ok := branch.(map[string]any); ok {
				next = append(next, m[step])
			} else {
				next = append(next, nil)
			}
		}
		branches = next
	}
	return branches, nil
}

// formatDuration renders an uptime-style "H:MM:SS.mmm" value as a
// human-readable string, omitting zero components.
func formatDuration(raw string) string {
	fields := strings.SplitN(raw, ":", 3)
	totalHours, _ := strconv.Atoi(fields[0])
	minutes, _ := strconv.Atoi(fields[1])
	seconds, _ := strconv.ParseFloat(fields[2], 64)

	years := totalHours / 24
	days := (totalHours / 24) % 365
	hours := totalHours % 24

	var parts []string
	if years != 0 {
		parts = append(parts, fmt.Sprintf("%d years", years))
	}
	if days != 0 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}
	if hours != 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes != 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	if seconds != 0 {
		parts = append(parts, fmt.Sprintf("%f seconds", seconds))
	}
	return strings.Join(parts, ", ")
}

// fillRow produces one row from a resource sub-tree, walking each parameter
// as a dotted path. A single matching leaf is taken directly, a single
// duration-shaped leaf is reformatted, multiple leaves are newline-joined.
// A walk failure marks only that parameter as failed.
func fillRow(params []string, tree any) map[string]protocol.Result[any] {
	row := make(map[string]protocol.Result[any], len(params))
	for _, param := range params {
		leaves, err := followPath(tree, strings.Split(param, "."))
		if err != nil {
			row[param] = protocol.Err[any](err.Error())
			continue
		}
		row[param] = protocol.Ok(leavesValue(leaves, true))
	}
	return row
}

// leavesValue reduces walked leaves to a field value.
func leavesValue(leaves []any, formatDurations bool) any {
	if len(leaves) == 1 {
		if s, ok := leaves[0].(string); ok && formatDurations && durationRE.MatchString(s) {
			return formatDuration(s)
		}
		return leaves[0]
	}
	parts := make([]string, len(leaves))
	for i, leaf := range leaves {
		parts[i] = fmt.Sprint(leaf)
	}
	return strings.Join(parts, "\n")
}
