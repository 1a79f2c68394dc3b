package kaggle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvUsername = "KAGGLE_USERNAME"
	EnvKey      = "KAGGLE_KEY"
)

// Credentials hold the API token pair issued on the Kaggle account page.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".kaggle", "kaggle.json"), nil
}

func CredentialsFromFile(path string) (Credentials, error) {
	content, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(content, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials file: %w", err)
	}

	creds.Username = strings.TrimSpace(creds.Username)
	creds.Key = strings.TrimSpace(creds.Key)
	if creds.Username == "" || creds.Key == "" {
		return Credentials{}, fmt.Errorf("credentials file %s is missing username or key", path)
	}
	return creds, nil
}

// LoadCredentials prefers the KAGGLE_USERNAME/KAGGLE_KEY environment pair and
// falls back to the default credentials file.
func LoadCredentials() (Credentials, error) {
	username := strings.TrimSpace(os.Getenv(EnvUsername))
	key := strings.TrimSpace(os.Getenv(EnvKey))
	if username != "" && key != "" {
		return Credentials{Username: username, Key: key}, nil
	}

	path, err := DefaultCredentialsPath()
	if err != nil {
		return Credentials{}, err
	}
	return CredentialsFromFile(path)
}
