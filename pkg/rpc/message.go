package rpc

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"protod.szuro.net/pkg/protocol"
)

// Request tags, the complete vocabulary.
const (
	TagProtocol     = "protocol"
	TagVersion      = "version"
	TagLoadInputs   = "load_inputs"
	TagUnloadInputs = "unload_inputs"
	TagLoadConfig   = "load_config"
	TagUnloadConfig = "unload_config"
	TagShowQueries  = "show_queries"
	TagRunQueries   = "run_queries"
	TagGetTables    = "get_tables"
	TagGetFields    = "get_fields"
)

// Request is the decoded form of one wire request. Tag selects the variant;
// only the fields that variant carries are populated.
//
// On the wire, protocol and version are bare strings; every other variant is
// a single-key object whose key is the tag:
//
//	{"load_inputs": {"input": [<raw>, ...]}}
//	{"unload_inputs": {"input": "<ref>"}}
//	{"load_config": {"config": <raw>}}
//	{"unload_config": {"config": "<ref>"}}
//	{"show_queries": {"query": {...}, "input": "<ref>", "config": "<ref>"}}
//	{"run_queries": {"query": {...}, "input": "<ref>", "config": "<ref>"}}
//	{"get_tables": {"input": "<ref>"}}
//	{"get_fields": {"input": "<ref>"}}
type Request struct {
	Tag string

	Inputs    []json.RawMessage
	Config    json.RawMessage
	Ref       string
	Query     protocol.QuerySpec
	InputRef  string
	ConfigRef string
}

type loadInputsBody struct {
	Input []json.RawMessage `json:"input"`
}

type unloadInputsBody struct {
	Input string `json:"input"`
}

type loadConfigBody struct {
	Config json.RawMessage `json:"config"`
}

type unloadConfigBody struct {
	Config string `json:"config"`
}

type queriesBody struct {
	Query  protocol.QuerySpec `json:"query"`
	Input  string             `json:"input"`
	Config string             `json:"config"`
}

type inputRefBody struct {
	Input string `json:"input"`
}

func (r Request) MarshalJSON() ([]byte, error) {
	switch r.Tag {
	case TagProtocol, TagVersion:
		return json.Marshal(r.Tag)
	case TagLoadInputs:
		return json.Marshal(map[string]loadInputsBody{r.Tag: {Input: r.Inputs}})
	case TagUnloadInputs:
		return json.Marshal(map[string]unloadInputsBody{r.Tag: {Input: r.Ref}})
	case TagLoadConfig:
		return json.Marshal(map[string]loadConfigBody{r.Tag: {Config: r.Config}})
	case TagUnloadConfig:
		return json.Marshal(map[string]unloadConfigBody{r.Tag: {Config: r.Ref}})
	case TagShowQueries, TagRunQueries:
		return json.Marshal(map[string]queriesBody{r.Tag: {
			Query:  r.Query,
			Input:  r.InputRef,
			Config: r.ConfigRef,
		}})
	case TagGetTables, TagGetFields:
		return json.Marshal(map[string]inputRefBody{r.Tag: {Input: r.Ref}})
	default:
		return nil, fmt.Errorf("cannot encode request tag %q", r.Tag)
	}
}

func (r *Request) UnmarshalJSON(data []byte) error {
	// Bare-string variants first.
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		*r = Request{Tag: tag}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("malformed request: %w", err)
	}
	if len(envelope) != 1 {
		return errors.New("request must be a single-key object")
	}
	for key, body := range envelope {
		decoded := Request{Tag: key}
		switch key {
		case TagLoadInputs:
			var b loadInputsBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			decoded.Inputs = b.Input
		case TagUnloadInputs:
			var b unloadInputsBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			decoded.Ref = b.Input
		case TagLoadConfig:
			var b loadConfigBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			decoded.Config = b.Config
		case TagUnloadConfig:
			var b unloadConfigBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			decoded.Ref = b.Config
		case TagShowQueries, TagRunQueries:
			var b queriesBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			decoded.Query = b.Query
			decoded.InputRef = b.Input
			decoded.ConfigRef = b.Config
		case TagGetTables, TagGetFields:
			var b inputRefBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			decoded.Ref = b.Input
		}
		// Unknown keys still decode: the dispatcher answers them with an
		// unsupported-request error instead of dropping the connection.
		*r = decoded
	}
	return nil
}

// Response is the single-key success or failure envelope every request is
// answered with, {"Ok": value} or {"Err": "message"}. Ok may legitimately be
// null (unload acknowledgements), so the envelope key itself carries the
// distinction.
type Response struct {
	Ok    any
	Err   string
	IsErr bool
}

// OkResponse wraps a success payload.
func OkResponse(v any) Response {
	return Response{Ok: v}
}

// ErrResponse wraps a failure message.
func ErrResponse(msg string) Response {
	return Response{Err: msg, IsErr: true}
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.IsErr {
		return json.Marshal(map[string]string{"Err": r.Err})
	}
	payload, err := json.Marshal(r.Ok)
	if err != nil {
		return nil, err
	}
	return append(append([]byte(`{"Ok":`), payload...), '}'), nil
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if msg, ok := raw["Err"]; ok {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return err
		}
		*r = ErrResponse(s)
		return nil
	}
	if payload, ok := raw["Ok"]; ok {
		var v any
		if err := json.Unmarshal(payload, &v); err != nil {
			return err
		}
		*r = OkResponse(v)
		return nil
	}
	return errors.New("response has neither Ok nor Err")
}
