package mocks

import "sync"

// AIConfigurerMock records what the settings service pushes to the dispatcher.
type AIConfigurerMock struct {
	mu          sync.Mutex
	Credential  string
	Provider    string
	ModelName   string
	MaxTokens   int
	Temperature float32
}

func (m *AIConfigurerMock) SetCredential(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Credential = key
}

func (m *AIConfigurerMock) HasCredential() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Credential != ""
}

func (m *AIConfigurerMock) SetModel(provider, model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if provider != "" {
		m.Provider = provider
	}
	if model != "" {
		m.ModelName = model
	}
}

func (m *AIConfigurerMock) Model() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Provider, m.ModelName
}

func (m *AIConfigurerMock) SetSampling(maxTokens int, temperature float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MaxTokens = maxTokens
	m.Temperature = temperature
}
