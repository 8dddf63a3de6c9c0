package sync

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"ccs/config/models"
	"ccs/config/storage"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ClaudeSettingsPath returns the path of the user-level Claude Code settings file
func ClaudeSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude", "settings.json"), nil
}

// SyncClaudeSettings writes p's credentials into the "env" block of the
// settings file at path. An existing file is backed up and replaced
// atomically; a missing one is created.
func SyncClaudeSettings(path string, p models.Profile) error {
	original := ""
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		original = string(data)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	default:
		return fmt.Errorf("failed to read Claude settings: %w", err)
	}

	updated, err := UpdateEnvField(original, p)
	if err != nil {
		return err
	}

	if original == "" {
		updated = string(pretty.PrettyOptions([]byte(updated), &pretty.Options{Indent: "  ", Width: 80}))
	}

	return storage.AtomicFileUpdate(path, []byte(updated), true)
}

// UpdateEnvField sets ANTHROPIC_AUTH_TOKEN, ANTHROPIC_API_KEY and
// ANTHROPIC_BASE_URL in the env field of a Claude Code settings document.
// Every other field, including other env entries, is left untouched.
func UpdateEnvField(originalContent string, p models.Profile) (string, error) {
	if strings.TrimSpace(originalContent) == "" {
		originalContent = "{}"
	}

	if !gjson.Valid(originalContent) {
		return "", fmt.Errorf("invalid JSON content")
	}
	if !gjson.Parse(originalContent).IsObject() {
		return "", fmt.Errorf("settings must be a JSON object")
	}
	if env := gjson.Get(originalContent, "env"); env.Exists() && !env.IsObject() {
		return "", fmt.Errorf("env field is not an object")
	}

	updated := originalContent
	for _, kv := range [][2]string{
		{models.EnvAuthToken, p.APIKey},
		{models.EnvAPIKey, p.APIKey},
		{models.EnvBaseURL, p.BaseURL},
	} {
		var err error
		updated, err = sjson.Set(updated, "env."+kv[0], kv[1])
		if err != nil {
			return "", fmt.Errorf("failed to update env field: %w", err)
		}
	}

	if err := validateJSONUpdate(originalContent, updated); err != nil {
		return "", fmt.Errorf("update validation failed: %w", err)
	}

	return updated, nil
}

// validateJSONUpdate checks that only the three managed env entries differ
// between the two documents.
func validateJSONUpdate(originalContent, updatedContent string) error {
	var original, updated map[string]any
	if err := json.Unmarshal([]byte(originalContent), &original); err != nil {
		return fmt.Errorf("failed to parse original JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(updatedContent), &updated); err != nil {
		return fmt.Errorf("failed to parse updated JSON: %w", err)
	}

	originalEnv, _ := original["env"].(map[string]any)
	updatedEnv, _ := updated["env"].(map[string]any)
	delete(original, "env")
	delete(updated, "env")

	if !reflect.DeepEqual(original, updated) {
		return fmt.Errorf("unexpected changes outside the env field")
	}

	for key, originalVal := range originalEnv {
		if isManagedKey(key) {
			continue
		}
		updatedVal, exists := updatedEnv[key]
		if !exists {
			return fmt.Errorf("env field '%s' was deleted", key)
		}
		if !reflect.DeepEqual(originalVal, updatedVal) {
			return fmt.Errorf("env field '%s' was modified", key)
		}
	}
	for key := range updatedEnv {
		if _, existed := originalEnv[key]; !existed && !isManagedKey(key) {
			return fmt.Errorf("env field '%s' was added", key)
		}
	}

	return nil
}

func isManagedKey(key string) bool {
	return key == models.EnvAuthToken || key == models.EnvAPIKey || key == models.EnvBaseURL
}
