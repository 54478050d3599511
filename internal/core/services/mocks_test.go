package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
)

// mockSearchClient replays a scripted sequence of responses.
// The last response repeats once the script is exhausted.
type mockSearchClient struct {
	mu        sync.Mutex
	responses []mockResponse
	calls     int
	probeIDs  []string
	block     bool
}

type mockResponse struct {
	info *domain.ServerInfo
	err  error
}

func (m *mockSearchClient) Info(ctx context.Context) (*domain.ServerInfo, error) {
	m.mu.Lock()
	m.calls++
	m.probeIDs = append(m.probeIDs, driven.ProbeIDFromContext(ctx))
	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	block := m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if idx < 0 {
		return nil, nil
	}
	return m.responses[idx].info, m.responses[idx].err
}

func (m *mockSearchClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockFactory hands out a fixed client and remembers the endpoint it was given.
type mockFactory struct {
	client   driven.SearchClient
	err      error
	endpoint domain.Endpoint
	created  int
}

func (f *mockFactory) Create(endpoint domain.Endpoint) (driven.SearchClient, error) {
	f.created++
	f.endpoint = endpoint
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

func mustInfo(raw string) *domain.ServerInfo {
	info, err := domain.ParseServerInfo([]byte(raw))
	if err != nil {
		panic(err)
	}
	return info
}
