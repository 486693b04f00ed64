package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env.example gains or renames a variable
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be non-empty in production
var RequiredEnvVars = []string{
	EnvSchemaVersion,
	EnvAPIKey,
	EnvVersion,
}

const (
	exampleAPIKey = "generate_with_openssl_rand_hex_32"
	minAPIKeyLen  = 32
)

var (
	ErrEnvSchemaMissing  = errors.New("ENV_SCHEMA_VERSION is not set")
	ErrEnvSchemaMismatch = errors.New("ENV_SCHEMA_VERSION mismatch")
	ErrMissingEnv        = errors.New("missing required environment variables")
)

// ValidateEnv checks the process environment for production readiness
func ValidateEnv() error {
	return validateEnv(os.Getenv)
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that are
// legal but unwise for production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := validateEnv(os.Getenv); err != nil {
		return nil, err
	}
	return envWarnings(os.Getenv), nil
}

func validateEnv(getenv func(string) string) error {
	switch v := getenv(EnvSchemaVersion); v {
	case "":
		return fmt.Errorf("%w (expected %s): update your .env from .env.example", ErrEnvSchemaMissing, ExpectedEnvSchemaVersion)
	case ExpectedEnvSchemaVersion:
	default:
		return fmt.Errorf("%w: expected %s, got %s: your .env file may be outdated", ErrEnvSchemaMismatch, ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, name := range RequiredEnvVars {
		if getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

func envWarnings(getenv func(string) string) []string {
	var warnings []string

	switch key := getenv(EnvAPIKey); {
	case key == exampleAPIKey:
		warnings = append(warnings, "API_KEY is the example value; generate one with: openssl rand -hex 32")
	case len(key) < minAPIKeyLen:
		warnings = append(warnings, fmt.Sprintf("API_KEY is shorter than %d characters", minAPIKeyLen))
	}

	if seed := getenv(EnvSeedNodes); seed != "" && seed != "0" {
		warnings = append(warnings, "SEED_NODES creates random demo nodes; production hosts normally place nodes themselves")
	}
	return warnings
}
