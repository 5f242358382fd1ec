package models

// LLMModel is a single selectable model in the settings panel.
type LLMModel struct {
	Key          string `json:"key"`
	DisplayName  string `json:"displayName"`
	APIName      string `json:"apiName"`
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	Recommended  bool   `json:"recommended,omitempty"`
	Premium      bool   `json:"premium,omitempty"`
}

// LLMModelGroup groups models by their provider for presentation.
type LLMModelGroup struct {
	ProviderID   string     `json:"providerId"`
	ProviderName string     `json:"providerName"`
	Models       []LLMModel `json:"models"`
}
