package protocol

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// Result is the tagged success/failure envelope used at every granularity of
// a query response: whole query, table, and field-within-row. On the wire it
// is a single-key object, {"Ok": value} or {"Err": "cause"}.
type Result[T any] struct {
	ok    bool
	value T
	err   string
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{ok: true, value: v}
}

// Err wraps a failure cause.
func Err[T any](cause string) Result[T] {
	return Result[T]{err: cause}
}

// Value returns the wrapped value and whether the result is a success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.ok
}

// Cause returns the failure cause and whether the result is a failure.
func (r Result[T]) Cause() (string, bool) {
	return r.err, !r.ok
}

// IsOk reports whether the result is a success.
func (r Result[T]) IsOk() bool {
	return r.ok
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(map[string]T{"Ok": r.value})
	}
	return json.Marshal(map[string]string{"Err": r.err})
}

func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ok  *json.RawMessage `json:"Ok"`
		Err *string          `json:"Err"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Err != nil:
		*r = Err[T](*raw.Err)
	case raw.Ok != nil:
		var v T
		if err := json.Unmarshal(*raw.Ok, &v); err != nil {
			return err
		}
		*r = Ok(v)
	default:
		return errors.New("result envelope has neither Ok nor Err")
	}
	return nil
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%s)", r.err)
}

// Row maps a field name to the outcome of producing that field's value.
type Row map[string]Result[any]

// Table carries the rows produced for one table together with non-fatal
// anomalies encountered while producing them.
type Table struct {
	Value    []Row    `json:"value"`
	Warnings []string `json:"warnings"`
}

// QueryResult maps each requested table name to its outcome.
type QueryResult map[string]Result[Table]
