// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from a directory of plain-text files.
// Each file in the directory is one secret: the filename is the key name and
// the trimmed file contents are the value.
//
// scholar-sync reads one key: scholar-api-key, the profile provider API key.
// Keeping it in .secrets/ keeps it out of the config file and shell history.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScholarAPIKey is the secret file name holding the profile provider key.
const ScholarAPIKey = "scholar-api-key"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}

	return secrets, nil
}

// Get returns the secret value for key, or fallback when fallback is
// non-empty. An explicit value (flag or config) always wins over the
// secrets directory.
func Get(secrets map[string]string, key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return secrets[key]
}
