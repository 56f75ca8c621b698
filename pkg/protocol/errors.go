package protocol

import "fmt"

// UnsupportedRequestError reports a request tag outside the fixed vocabulary.
type UnsupportedRequestError struct {
	Tag string
}

func (e *UnsupportedRequestError) Error() string {
	return fmt.Sprintf("unsupported request: %s", e.Tag)
}

// NotImplementedError reports a recognized request whose capability the
// target plugin does not implement.
type NotImplementedError struct {
	Method string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("Request not implemented: %s", e.Method)
}

// UnknownReferenceError reports a config or input reference that was never
// returned by a load call, or was already unloaded. The client must reload.
type UnknownReferenceError struct {
	Kind string // "config" or "input"
	Ref  string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s reference: %s", e.Kind, e.Ref)
}
