package models

// Profile is one named credential and endpoint record.
type Profile struct {
	Alias   string `json:"alias"`
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// File represents the structure of the config file
type File struct {
	Services []Profile `json:"services"`
}

// Environment variables a profile is exported as.
const (
	EnvAuthToken = "ANTHROPIC_AUTH_TOKEN"
	EnvAPIKey    = "ANTHROPIC_API_KEY"
	EnvBaseURL   = "ANTHROPIC_BASE_URL"
)
