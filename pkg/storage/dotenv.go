package storage

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
)

// EnvironmentFromDotenv builds an environment of literal values from a .env file.
func EnvironmentFromDotenv(name string, r io.Reader) (Environment, error) {
	if err := ValidateName(name); err != nil {
		return Environment{}, err
	}

	vars, err := godotenv.Parse(r)
	if err != nil {
		return Environment{}, fmt.Errorf("failed to parse .env: %w", err)
	}

	env := Environment{Name: name, Values: make(map[string]EnvironmentValue, len(vars))}
	for k, v := range vars {
		env.Values[k] = Value(v)
	}
	return env, nil
}
