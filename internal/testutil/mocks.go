// Package testutil provides configurable fakes for the SDK's capability
// interfaces.
package testutil

import (
	"context"
	"net/url"
	"sync"

	"github.com/ayetstudios/sdk-go/core"
)

// PostCall records one Post invocation.
type PostCall struct {
	Path string
	Body []byte
}

// GetCall records one Get invocation.
type GetCall struct {
	Path  string
	Query url.Values
}

// MockTransport is a configurable fake core.Transport with call tracking.
type MockTransport struct {
	mu sync.Mutex

	// Configurable responses
	PostResponse []byte
	PostErr      error
	GetResponse  []byte
	GetErr       error

	// Custom handlers (override default behavior)
	OnPost func(path string, body []byte) ([]byte, error)
	OnGet  func(path string, query url.Values) ([]byte, error)

	// Call tracking
	PostCalls []PostCall
	GetCalls  []GetCall

	userAgent string
}

// NewMockTransport creates a MockTransport answering success envelopes.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		PostResponse: []byte(`{"status":"success","device":{"uuid":"dev-1"},"user":{"id":1},"adslots":[]}`),
		GetResponse:  []byte(`{"status":"success","offers":[]}`),
	}
}

func (m *MockTransport) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	m.mu.Lock()
	m.PostCalls = append(m.PostCalls, PostCall{Path: path, Body: append([]byte(nil), body...)})
	handler := m.OnPost
	resp, err := m.PostResponse, m.PostErr
	m.mu.Unlock()

	if handler != nil {
		return handler(path, body)
	}
	return resp, err
}

func (m *MockTransport) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, GetCall{Path: path, Query: query})
	handler := m.OnGet
	resp, err := m.GetResponse, m.GetErr
	m.mu.Unlock()

	if handler != nil {
		return handler(path, query)
	}
	return resp, err
}

// SetPostResponse swaps the canned Post response.
func (m *MockTransport) SetPostResponse(body []byte, err error) {
	m.mu.Lock()
	m.PostResponse = body
	m.PostErr = err
	m.mu.Unlock()
}

// SetGetResponse swaps the canned Get response.
func (m *MockTransport) SetGetResponse(body []byte, err error) {
	m.mu.Lock()
	m.GetResponse = body
	m.GetErr = err
	m.mu.Unlock()
}

// SetUserAgent implements core.UserAgentSetter.
func (m *MockTransport) SetUserAgent(ua string) {
	m.mu.Lock()
	m.userAgent = ua
	m.mu.Unlock()
}

// UserAgent returns the last value passed to SetUserAgent.
func (m *MockTransport) UserAgent() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userAgent
}

// PostCount returns the number of Post calls so far.
func (m *MockTransport) PostCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.PostCalls)
}

// GetCount returns the number of Get calls so far.
func (m *MockTransport) GetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetCalls)
}

// LastPost returns the most recent Post call.
func (m *MockTransport) LastPost() (PostCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.PostCalls) == 0 {
		return PostCall{}, false
	}
	return m.PostCalls[len(m.PostCalls)-1], true
}

// MockSurface is a configurable fake core.Surface.
type MockSurface struct {
	mu sync.Mutex

	ProbeResult core.ProbeResult
	ProbeErr    error
	PresentErr  error

	OnProbe func(baseURL string) (core.ProbeResult, error)

	ProbeCalls int
	Presented  []core.Presentation
	Reloads    int
}

// NewMockSurface creates a MockSurface reporting a partitioned webview.
func NewMockSurface() *MockSurface {
	return &MockSurface{
		ProbeResult: core.ProbeResult{
			UserAgent:   "Mozilla/5.0 (Mock WebView)",
			ClientHints: map[string]any{"platform": "Mock"},
			Partitioned: true,
		},
	}
}

func (m *MockSurface) Probe(ctx context.Context, baseURL string) (core.ProbeResult, error) {
	m.mu.Lock()
	m.ProbeCalls++
	handler := m.OnProbe
	res, err := m.ProbeResult, m.ProbeErr
	m.mu.Unlock()

	if handler != nil {
		return handler(baseURL)
	}
	return res, err
}

func (m *MockSurface) Present(ctx context.Context, p core.Presentation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PresentErr != nil {
		return m.PresentErr
	}
	m.Presented = append(m.Presented, p)
	return nil
}

func (m *MockSurface) Reload(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reloads++
	return nil
}

// ReloadCount returns the number of Reload calls so far.
func (m *MockSurface) ReloadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Reloads
}

// LastPresented returns the most recent presentation.
func (m *MockSurface) LastPresented() (core.Presentation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Presented) == 0 {
		return core.Presentation{}, false
	}
	return m.Presented[len(m.Presented)-1], true
}

// PresentedCount returns the number of Present calls so far.
func (m *MockSurface) PresentedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Presented)
}

// StaticDevice is a core.DeviceSource returning a fixed snapshot.
type StaticDevice struct {
	Info core.DeviceSnapshot
}

func (d *StaticDevice) Snapshot(ctx context.Context) core.DeviceSnapshot {
	if d.Info == nil {
		return core.DeviceSnapshot{"make": "Mock", "model": "test"}
	}
	return d.Info
}
