package mocks

import (
	"context"
	"encoding/json"

	"github.com/SeimoDev/LightShop/domain"
)

// MockGateway implements domain.Gateway for testing. Each method delegates
// to its Func field when set; the default resolves successfully with no
// payload.
type MockGateway struct {
	GetFunc    func(ctx context.Context, path string, out any) error
	PostFunc   func(ctx context.Context, path string, body, out any) error
	PutFunc    func(ctx context.Context, path string, body, out any) error
	DeleteFunc func(ctx context.Context, path string, out any) error

	// Calls records every invocation in order as "METHOD path".
	Calls []string
}

// NewMockGateway creates a new MockGateway with default behaviors.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Get implements domain.Gateway.
func (m *MockGateway) Get(ctx context.Context, path string, out any) error {
	m.Calls = append(m.Calls, "GET "+path)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path, out)
	}
	return nil
}

// Post implements domain.Gateway.
func (m *MockGateway) Post(ctx context.Context, path string, body, out any) error {
	m.Calls = append(m.Calls, "POST "+path)
	if m.PostFunc != nil {
		return m.PostFunc(ctx, path, body, out)
	}
	return nil
}

// Put implements domain.Gateway.
func (m *MockGateway) Put(ctx context.Context, path string, body, out any) error {
	m.Calls = append(m.Calls, "PUT "+path)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, path, body, out)
	}
	return nil
}

// Delete implements domain.Gateway.
func (m *MockGateway) Delete(ctx context.Context, path string, out any) error {
	m.Calls = append(m.Calls, "DELETE "+path)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, path, out)
	}
	return nil
}

// Resolve is a test helper that writes a JSON-roundtripped value into an
// out parameter, mimicking the gateway's envelope decoding.
func Resolve(out, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// RejectWith builds the classified error a real gateway would return.
func RejectWith(kind domain.ErrorKind, status, code int, message string) error {
	return &domain.APIError{Kind: kind, Status: status, Code: code, Message: message}
}
