package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ccs/config/models"

	"github.com/tidwall/gjson"
)

// ConfigFileName is the name of the profile file inside the user's home directory.
const ConfigFileName = "claude_code_switch.json"

// Locate returns the path of the profile file: <home>/claude_code_switch.json.
func Locate() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigFileName), nil
}

// DefaultFile returns the document written by Initialize. The credentials
// are placeholders the user is expected to replace.
func DefaultFile() models.File {
	return models.File{
		Services: []models.Profile{
			{
				Alias:   "default",
				Name:    "Claude Official",
				BaseURL: "https://api.anthropic.com",
				APIKey:  "your_api_key_here",
			},
			{
				Alias:   "mirror1",
				Name:    "Claude Mirror 1",
				BaseURL: "https://api-mirror1.example.com",
				APIKey:  "your_mirror1_api_key_here",
			},
		},
	}
}

// Initialize writes the default profile document to path, creating the parent
// directory if needed. An existing file is overwritten.
func Initialize(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := encodeFile(DefaultFile())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// encodeFile renders the document with 4-space indentation and without
// escaping HTML or non-ASCII characters.
func encodeFile(file models.File) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("failed to serialize config: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads the profile file at path and returns its profiles in stored order.
//
// A missing file yields an error matching ErrConfigNotFound; malformed JSON
// yields a *ParseError. Fields that are missing from a profile decode as
// empty strings, and a document without a "services" array has no profiles.
func Load(path string) ([]models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if !gjson.ValidBytes(data) {
		var v any
		return nil, &ParseError{Path: path, Err: json.Unmarshal(data, &v)}
	}

	return decodeServices(gjson.GetBytes(data, "services")), nil
}

func decodeServices(services gjson.Result) []models.Profile {
	profiles := []models.Profile{}
	if !services.IsArray() {
		return profiles
	}

	services.ForEach(func(_, s gjson.Result) bool {
		profiles = append(profiles, models.Profile{
			Alias:   s.Get("alias").String(),
			Name:    s.Get("name").String(),
			BaseURL: s.Get("base_url").String(),
			APIKey:  s.Get("api_key").String(),
		})
		return true
	})
	return profiles
}
