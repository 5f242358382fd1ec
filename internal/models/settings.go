package models

type ProfileSettings struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type PreferenceSettings struct {
	Theme         string `json:"theme"` // "light" | "dark" | "system"
	Language      string `json:"language"`
	Timezone      string `json:"timezone"`
	Notifications bool   `json:"notifications"`
	SoundEnabled  bool   `json:"soundEnabled"`
}

// AISettings never holds the API key itself; the key lives in the keyring.
type AISettings struct {
	Provider         string  `json:"provider"`
	Model            string  `json:"model"`
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"maxTokens"`
	APIKeyConfigured bool    `json:"apiKeyConfigured"`
}

type PrivacySettings struct {
	DataCollection bool `json:"dataCollection"`
	Analytics      bool `json:"analytics"`
	CrashReports   bool `json:"crashReports"`
}

type Settings struct {
	Profile     ProfileSettings    `json:"profile"`
	Preferences PreferenceSettings `json:"preferences"`
	AI          AISettings         `json:"ai"`
	Privacy     PrivacySettings    `json:"privacy"`
}

func DefaultSettings() Settings {
	return Settings{
		Profile: ProfileSettings{
			Name:  "User",
			Email: "user@example.com",
		},
		Preferences: PreferenceSettings{
			Theme:         "system",
			Language:      "en",
			Timezone:      "UTC",
			Notifications: true,
			SoundEnabled:  true,
		},
		AI: AISettings{
			Provider:    "openai",
			Model:       "gpt-3.5-turbo",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Privacy: PrivacySettings{
			CrashReports: true,
		},
	}
}
