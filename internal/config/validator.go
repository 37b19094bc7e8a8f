package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands.
const ExpectedEnvSchemaVersion = "1.0"

// MinJWTSecretLength is the shortest JWT_SECRET accepted without a warning.
const MinJWTSecretLength = 32

// RequiredEnvVars must be non-empty for the server to start.
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
	"JWT_SECRET",
}

// placeholderChecks flag values copied unchanged from .env.example.
var placeholderChecks = []struct {
	key, example, hint string
}{
	{"DB_PASSWORD", ExampleDBPassword, "please use a secure password"},
	{"API_KEY", ExampleAPIKey, "generate a secure key with: openssl rand -hex 32"},
	{"JWT_SECRET", ExampleJWTSecret, "generate a secure secret with: openssl rand -hex 64"},
}

// ValidateEnv checks the schema version and that every required variable is
// set, reporting all missing ones at once.
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); {
	case v == "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	case v != ExpectedEnvSchemaVersion:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that
// work but should not reach production.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, c := range placeholderChecks {
		if os.Getenv(c.key) == c.example {
			warnings = append(warnings, fmt.Sprintf("%s appears to be using the example value - %s", c.key, c.hint))
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != ExampleJWTSecret && len(secret) < MinJWTSecretLength {
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is shorter than %d characters - session tokens are easier to forge", MinJWTSecretLength))
	}
	if os.Getenv("CLOUD_URL") == "" {
		warnings = append(warnings, "CLOUD_URL is not set - running in local-only mode, team features will be offline")
	}
	return warnings, nil
}
