package rpc

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"protod.szuro.net/pkg/protocol"
)

// RemoteError is a failure reported by the daemon inside a well-formed
// response envelope, as opposed to a transport failure.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Client drives a protocol-plugin daemon over a byte stream. It issues one
// request at a time and is not safe for concurrent use; run one client per
// connection.
type Client struct {
	conn *Conn
	enc  Encoding
}

// NewClient wraps an established stream. JSONEncoding is used when enc is nil.
func NewClient(rw io.ReadWriter, enc Encoding) *Client {
	if enc == nil {
		enc = JSONEncoding{}
	}
	return &Client{conn: NewConn(rw), enc: enc}
}

// call performs one request/response exchange. The Ok payload is decoded
// into out unless out is nil.
func (c *Client) call(req Request, out any) error {
	payload, err := c.enc.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", req.Tag, err)
	}
	if err := c.conn.WriteMessage(payload); err != nil {
		return err
	}
	reply, err := c.conn.ReadMessage()
	if err != nil {
		return err
	}

	var envelope struct {
		Ok  json.RawMessage `json:"Ok"`
		Err *string         `json:"Err"`
	}
	if err := c.enc.Unmarshal(reply, &envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", req.Tag, err)
	}
	if envelope.Err != nil {
		return &RemoteError{Message: *envelope.Err}
	}
	if envelope.Ok == nil {
		return errors.New("response has neither Ok nor Err")
	}
	if out != nil {
		if err := c.enc.Unmarshal(envelope.Ok, out); err != nil {
			return fmt.Errorf("decode %s payload: %w", req.Tag, err)
		}
	}
	return nil
}

// Protocol asks the daemon for its protocol name.
func (c *Client) Protocol() (string, error) {
	var name string
	err := c.call(Request{Tag: TagProtocol}, &name)
	return name, err
}

// Version asks the daemon for its plugin version.
func (c *Client) Version() (string, error) {
	var version string
	err := c.call(Request{Tag: TagVersion}, &version)
	return version, err
}

// LoadInputs submits raw input blobs and returns the session reference the
// daemon issued for them.
func (c *Client) LoadInputs(inputs []json.RawMessage) (string, error) {
	var ref string
	err := c.call(Request{Tag: TagLoadInputs, Inputs: inputs}, &ref)
	return ref, err
}

// UnloadInputs releases a previously loaded input reference.
func (c *Client) UnloadInputs(ref string) error {
	return c.call(Request{Tag: TagUnloadInputs, Ref: ref}, nil)
}

// LoadConfig submits a raw configuration blob and returns its reference.
func (c *Client) LoadConfig(config json.RawMessage) (string, error) {
	var ref string
	err := c.call(Request{Tag: TagLoadConfig, Config: config}, &ref)
	return ref, err
}

// UnloadConfig releases a previously loaded configuration reference.
func (c *Client) UnloadConfig(ref string) error {
	return c.call(Request{Tag: TagUnloadConfig, Ref: ref}, nil)
}

// ShowQueries returns the daemon's description of what running the query
// specification would do.
func (c *Client) ShowQueries(qry protocol.QuerySpec, inputRef, configRef string) (string, error) {
	var desc string
	err := c.call(Request{
		Tag:       TagShowQueries,
		Query:     qry,
		InputRef:  inputRef,
		ConfigRef: configRef,
	}, &desc)
	return desc, err
}

// RunQueries executes the query specification and returns the per-table
// outcomes.
func (c *Client) RunQueries(qry protocol.QuerySpec, inputRef, configRef string) (protocol.QueryResult, error) {
	var result protocol.QueryResult
	err := c.call(Request{
		Tag:       TagRunQueries,
		Query:     qry,
		InputRef:  inputRef,
		ConfigRef: configRef,
	}, &result)
	return result, err
}

// GetTables enumerates the data tables a loaded input defines.
func (c *Client) GetTables(inputRef string) (map[string]protocol.TableSpec, error) {
	var tables map[string]protocol.TableSpec
	err := c.call(Request{Tag: TagGetTables, Ref: inputRef}, &tables)
	return tables, err
}

// GetFields enumerates the data fields a loaded input defines.
func (c *Client) GetFields(inputRef string) (map[string]protocol.FieldSpec, error) {
	var fields map[string]protocol.FieldSpec
	err := c.call(Request{Tag: TagGetFields, Ref: inputRef}, &fields)
	return fields, err
}
