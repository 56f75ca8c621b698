package unity

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"protod.szuro.net/internal/state"
	"protod.szuro.net/pkg/protocol"
)

// maxSamples bounds accumulation on steady-state polls. The first-ever poll
// of a path may exceed it when catch-up is unlimited.
const maxSamples = 6

// metricKey identifies one running sum: a sub-resource plus an optional
// inner key for metrics whose values are themselves keyed maps.
type metricKey struct {
	sp     string
	key    string
	hasKey bool
}

// historicMetric aggregates the rolling time series behind a metric path
// incrementally. It walks the newest-first listing, averages the samples
// newer than the stored position, and persists the new position with the
// emitted rows so an unchanged upstream is answered from cache.
func (s *PollSession) historicMetric(ctx context.Context, path string, params []string) ([]map[string]protocol.Result[any], error) {
	s.stateMu.Lock()
	prev := s.states[path]
	s.stateMu.Unlock()
	oldTS := prev.Timestamp

	base := "types/metricValue/instances?" + url.Values{
		"filter": []string{fmt.Sprintf(`path EQ "%s"`, path)},
	}.Encode()
	page := base

	var newTS float64
	count := 0
	sums := map[metricKey]float64{}
	var result []map[string]any
	done := false

	for !done {
		doc, err := s.client.Query(ctx, page)
		if err != nil {
			return nil, err
		}

		entries, _ := doc["entries"].([]any)
		for _, e := range entries {
			entry, _ := e.(map[string]any)
			content, _ := entry["content"].(map[string]any)
			tsRaw, _ := content["timestamp"].(string)
			t, err := time.Parse(time.RFC3339, tsRaw)
			if err != nil {
				return nil, fmt.Errorf("malformed metric timestamp %q", tsRaw)
			}
			ts := float64(t.Unix())
			if newTS == 0 {
				newTS = ts
			}

			// Nothing new since the last poll, answer from cache.
			if newTS == oldTS && len(sums) == 0 {
				result = prev.Result
				done = true
				break
			}

			values, hasValues := content["values"].(map[string]any)
			if ts > oldTS && hasValues && (count < maxSamples || (oldTS == 0 && s.cfg.CatchupUnlimited)) {
				count++
				for sp, value := range values {
					if inner, ok := value.(map[string]any); ok {
						for k, v := range inner {
							sums[metricKey{sp: sp, key: k, hasKey: true}] += toFloat(v)
						}
					} else {
						sums[metricKey{sp: sp}] += toFloat(value)
					}
				}
			} else {
				done = true
				break
			}
		}

		if !done {
			next := nextLink(doc)
			if next == "" {
				done = true
			} else {
				page = base + next
			}
		}
	}

	if len(result) == 0 && count > 0 {
		requested := map[string]bool{}
		for _, param := range params {
			requested[param] = true
		}
		keys := make([]metricKey, 0, len(sums))
		for k := range sums {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].sp != keys[j].sp {
				return keys[i].sp < keys[j].sp
			}
			return keys[i].key < keys[j].key
		})
		for _, k := range keys {
			row := map[string]any{}
			if requested["sp"] {
				row["sp"] = k.sp
			}
			if requested["key"] && k.hasKey {
				row["key"] = k.key
			}
			if requested["value"] {
				row["value"] = sums[k] / float64(count)
			}
			if requested["name"] {
				if name, ok := metricNames[path]; ok {
					row["name"] = name
				} else {
					row["name"] = nil
				}
			}
			result = append(result, row)
		}
	}

	// The position never moves backwards; an empty listing leaves the
	// stored state untouched.
	if newTS != 0 && newTS >= oldTS {
		s.stateMu.Lock()
		s.states[path] = state.MetricState{Timestamp: newTS, Result: result}
		s.stateMu.Unlock()
	}

	rows := make([]map[string]protocol.Result[any], 0, len(result))
	for _, raw := range result {
		row := make(map[string]protocol.Result[any], len(raw))
		for param, value := range raw {
			row[param] = protocol.Ok(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func nextLink(doc map[string]any) string {
	links, _ := doc["links"].([]any)
	for _, l := range links {
		link, _ := l.(map[string]any)
		if link["rel"] == "next" {
			href, _ := link["href"].(string)
			return href
		}
	}
	return ""
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
