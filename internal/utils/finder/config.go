package finder

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSearchPaths are tried in order when the requested configuration file does not exist
var DefaultSearchPaths = []string{
	"conf/config.yaml",
	"/etc/zram_manager/config.yaml",
}

// FindConfigFile returns the absolute path of configPath, or of the first existing file in
// fallbacks. When nothing exists it returns an error if mustExist is set and "" otherwise.
func FindConfigFile(configPath string, mustExist bool, fallbacks ...string) (string, error) {
	candidates := append([]string{configPath}, fallbacks...)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		return absPath, nil
	}

	if mustExist {
		return "", fmt.Errorf("configuration file not found: %s", configPath)
	}
	return "", nil
}
