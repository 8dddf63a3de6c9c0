package shell

import (
	"strings"

	"ccs/config/models"
)

// DefaultAuthToken stands in for ANTHROPIC_AUTH_TOKEN when it is unset, so a
// profile is only highlighted then if its key is literally "default".
const DefaultAuthToken = "default"

// CurrentAuthToken returns the value of ANTHROPIC_AUTH_TOKEN as reported by
// lookup (normally os.LookupEnv), or DefaultAuthToken when it is unset.
func CurrentAuthToken(lookup func(string) (string, bool)) string {
	if v, ok := lookup(models.EnvAuthToken); ok {
		return v
	}
	return DefaultAuthToken
}

// IsActive reports whether p's key matches the current token, ignoring
// surrounding whitespace.
func IsActive(p models.Profile, token string) bool {
	return strings.TrimSpace(p.APIKey) == strings.TrimSpace(token)
}
