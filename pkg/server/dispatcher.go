package server

import (
	"context"
	"fmt"
	"log/slog"

	"protod.szuro.net/internal/logger"
	"protod.szuro.net/pkg/protocol"
	"protod.szuro.net/pkg/rpc"
)

// Handle answers one decoded request. Every outcome, including a panicking
// plugin, becomes a response envelope; the connection itself stays usable.
func (s *Session) Handle(ctx context.Context, req rpc.Request) (resp rpc.Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Plugin panicked", slog.String("request", req.Tag), slog.Any("panic", r))
			resp = rpc.ErrResponse(fmt.Sprintf("%v", r))
		}
		requestsTotal.WithLabelValues(s.plugin.Protocol(), req.Tag).Inc()
		if resp.IsErr {
			requestErrorsTotal.WithLabelValues(s.plugin.Protocol(), req.Tag).Inc()
		}
	}()

	switch req.Tag {
	case rpc.TagProtocol:
		return rpc.OkResponse(s.plugin.Protocol())

	case rpc.TagVersion:
		return rpc.OkResponse(s.plugin.Version())

	case rpc.TagLoadInputs:
		input, err := s.plugin.LoadInputs(req.Inputs)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(s.storeInput(input))

	case rpc.TagUnloadInputs:
		if err := s.dropInput(req.Ref); err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(nil)

	case rpc.TagLoadConfig:
		config, err := s.plugin.LoadConfig(req.Config)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(s.storeConfig(config))

	case rpc.TagUnloadConfig:
		if err := s.dropConfig(req.Ref); err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(nil)

	case rpc.TagShowQueries:
		input, err := s.lookupInput(req.InputRef)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		desc, err := s.plugin.ShowQueries(req.Query, input)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(desc)

	case rpc.TagRunQueries:
		input, err := s.lookupInput(req.InputRef)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		config, err := s.lookupConfig(req.ConfigRef)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		result, err := s.plugin.RunQueries(ctx, req.Query, input, config)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(result)

	case rpc.TagGetTables:
		lister, ok := s.plugin.(protocol.TableLister)
		if !ok {
			err := &protocol.NotImplementedError{Method: req.Tag}
			return rpc.ErrResponse(err.Error())
		}
		input, err := s.lookupInput(req.Ref)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		tables, err := lister.GetTables(input)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(tables)

	case rpc.TagGetFields:
		lister, ok := s.plugin.(protocol.FieldLister)
		if !ok {
			err := &protocol.NotImplementedError{Method: req.Tag}
			return rpc.ErrResponse(err.Error())
		}
		input, err := s.lookupInput(req.Ref)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		fields, err := lister.GetFields(input)
		if err != nil {
			return rpc.ErrResponse(err.Error())
		}
		return rpc.OkResponse(fields)

	default:
		err := &protocol.UnsupportedRequestError{Tag: req.Tag}
		return rpc.ErrResponse(err.Error())
	}
}

// HandlePayload decodes one raw request, dispatches it, and encodes the
// response. Undecodable payloads get an error envelope rather than killing
// the transport.
func (s *Session) HandlePayload(ctx context.Context, enc rpc.Encoding, payload []byte) []byte {
	var req rpc.Request
	var resp rpc.Response
	if err := enc.Unmarshal(payload, &req); err != nil {
		resp = rpc.ErrResponse(err.Error())
	} else {
		resp = s.Handle(ctx, req)
	}
	out, err := enc.Marshal(resp)
	if err != nil {
		logger.Error("Failed to encode response", slog.String("request", req.Tag), slog.Any("error", err))
		out, _ = enc.Marshal(rpc.ErrResponse(fmt.Sprintf("encode response: %v", err)))
	}
	return out
}
