package platform

import (
	"fmt"
	"path/filepath"
)

// validatePath ensures a path returned by a picker is usable.
// Returns the cleaned absolute path and an error if validation fails
func validatePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	cleanPath := filepath.Clean(absPath)

	// Ensure the path doesn't contain null bytes or other control characters
	for _, r := range cleanPath {
		if r < 32 || r == 127 {
			return "", fmt.Errorf("path contains invalid characters")
		}
	}

	return cleanPath, nil
}
