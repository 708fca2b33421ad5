package generation

import (
	"context"
	"sync"

	"github.com/jonathan/proposal-customizer/internal/llm"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateFunc func(ctx context.Context, req llm.Request) (string, error)
	GetModelFunc func(req llm.Request) string
	CloseFunc    func() error

	mu    sync.Mutex
	calls []llm.Request
}

func (m *MockLLMClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "Mock proposal body", nil
}

func (m *MockLLMClient) GetModel(req llm.Request) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(req)
	}
	if req.Model != "" {
		return req.Model
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *MockLLMClient) Calls() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.calls...)
}
