// Package server exposes a protocol plugin to the monitoring server, either
// over a unix socket speaking the framed wire protocol or as a hashicorp
// go-plugin subprocess.
package server

import (
	"sync"

	"github.com/google/uuid"

	"protod.szuro.net/pkg/protocol"
)

// Session holds the loaded configurations and inputs of one client
// connection. References are opaque handles minted here; they mean nothing
// to other sessions and die with the connection.
type Session struct {
	plugin protocol.Plugin

	mu      sync.Mutex
	configs map[string]any
	inputs  map[string]any
}

func NewSession(plugin protocol.Plugin) *Session {
	return &Session{
		plugin:  plugin,
		configs: make(map[string]any),
		inputs:  make(map[string]any),
	}
}

func (s *Session) storeInput(input any) string {
	ref := uuid.NewString()
	s.mu.Lock()
	s.inputs[ref] = input
	s.mu.Unlock()
	return ref
}

func (s *Session) storeConfig(config any) string {
	ref := uuid.NewString()
	s.mu.Lock()
	s.configs[ref] = config
	s.mu.Unlock()
	return ref
}

func (s *Session) lookupInput(ref string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	input, ok := s.inputs[ref]
	if !ok {
		return nil, &protocol.UnknownReferenceError{Kind: "input", Ref: ref}
	}
	return input, nil
}

func (s *Session) lookupConfig(ref string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	config, ok := s.configs[ref]
	if !ok {
		return nil, &protocol.UnknownReferenceError{Kind: "config", Ref: ref}
	}
	return config, nil
}

func (s *Session) dropInput(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inputs[ref]; !ok {
		return &protocol.UnknownReferenceError{Kind: "input", Ref: ref}
	}
	delete(s.inputs, ref)
	return nil
}

func (s *Session) dropConfig(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.configs[ref]; !ok {
		return &protocol.UnknownReferenceError{Kind: "config", Ref: ref}
	}
	delete(s.configs, ref)
	return nil
}
