package configuration

import (
	"fmt"

	"github.com/joho/godotenv"
)

// GodotenvProvider reads .env-style configuration files through
// [godotenv.Read].
type GodotenvProvider struct{}

// Read wraps around [godotenv.Read].
func (*GodotenvProvider) Read(filenames ...string) (map[string]string, error) {
	data, err := godotenv.Read(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-godotenv) %w", err)
	}

	return data, nil
}
