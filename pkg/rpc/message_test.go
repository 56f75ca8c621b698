package rpc

import (
	"bytes"
	"io"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protod.szuro.net/pkg/protocol"
)

func TestRequestWireShapes(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		wire string
	}{
		{"protocol", Request{Tag: TagProtocol}, `"protocol"`},
		{"version", Request{Tag: TagVersion}, `"version"`},
		{
			"load_inputs",
			Request{Tag: TagLoadInputs, Inputs: []json.RawMessage{json.RawMessage(`{"DataTables":{}}`)}},
			`{"load_inputs":{"input":[{"DataTables":{}}]}}`,
		},
		{
			"unload_inputs",
			Request{Tag: TagUnloadInputs, Ref: "ref-1"},
			`{"unload_inputs":{"input":"ref-1"}}`,
		},
		{
			"load_config",
			Request{Tag: TagLoadConfig, Config: json.RawMessage(`{"hostname":"h"}`)},
			`{"load_config":{"config":{"hostname":"h"}}}`,
		},
		{
			"unload_config",
			Request{Tag: TagUnloadConfig, Ref: "ref-2"},
			`{"unload_config":{"config":"ref-2"}}`,
		},
		{
			"run_queries",
			Request{
				Tag:       TagRunQueries,
				Query:     protocol.QuerySpec{"Disks": {"name"}},
				InputRef:  "in",
				ConfigRef: "cf",
			},
			`{"run_queries":{"query":{"Disks":["name"]},"input":"in","config":"cf"}}`,
		},
		{
			"get_tables",
			Request{Tag: TagGetTables, Ref: "in"},
			`{"get_tables":{"input":"in"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.req)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(out))

			var decoded Request
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &decoded))
			assert.Equal(t, tt.req.Tag, decoded.Tag)
			assert.Equal(t, tt.req.Ref, decoded.Ref)
			assert.Equal(t, tt.req.InputRef, decoded.InputRef)
			assert.Equal(t, tt.req.ConfigRef, decoded.ConfigRef)
			assert.Equal(t, tt.req.Query, decoded.Query)
		})
	}
}

func TestRequestUnknownTagStillDecodes(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"frobnicate":{"x":1}}`), &req))
	assert.Equal(t, "frobnicate", req.Tag)
}

func TestRequestRejectsMultiKeyObjects(t *testing.T) {
	var req Request
	assert.Error(t, json.Unmarshal([]byte(`{"protocol":null,"version":null}`), &req))
}

func TestResponseEnvelope(t *testing.T) {
	ok, err := json.Marshal(OkResponse("ref-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ok":"ref-1"}`, string(ok))

	// Unload acknowledgements carry a null Ok, which must survive encoding.
	ack, err := json.Marshal(OkResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ok":null}`, string(ack))

	bad, err := json.Marshal(ErrResponse("unknown config reference: x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Err":"unknown config reference: x"}`, string(bad))

	var decoded Response
	require.NoError(t, json.Unmarshal(ack, &decoded))
	assert.False(t, decoded.IsErr)
	require.NoError(t, json.Unmarshal(bad, &decoded))
	assert.True(t, decoded.IsErr)
	assert.Equal(t, "unknown config reference: x", decoded.Err)

	assert.Error(t, json.Unmarshal([]byte(`{}`), &decoded))
}

func TestConnFraming(t *testing.T) {
	var buf bytes.Buffer
	conn := NewConn(&buf)

	require.NoError(t, conn.WriteMessage([]byte(`"protocol"`)))
	require.NoError(t, conn.WriteMessage([]byte(`"version"`)))

	first, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `"protocol"`, string(first))

	second, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `"version"`, string(second))

	_, err = conn.ReadMessage()
	assert.Equal(t, io.EOF, err)
}

func TestConnRejectsOversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff})
	_, err := NewConn(&buf).ReadMessage()
	assert.ErrorContains(t, err, "exceeds limit")
}
