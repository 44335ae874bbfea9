package xjx

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions loads a partial configuration from a YAML preset file.
// Missing fields keep their defaults; unknown keys are ignored.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Probe the high-fidelity flag first so the file's explicit settings
	// layer over the matching preset rather than over the defaults.
	var probe struct {
		HighFidelity bool `yaml:"high_fidelity"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Options{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	opts := DefaultOptions()
	if probe.HighFidelity {
		opts = HighFidelityOptions()
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return opts, nil
}

// FindConfigFile searches for a config file in the current directory
// and its parents.
func FindConfigFile() string {
	configNames := []string{".xjx.yml", ".xjx.yaml", "xjx.yml", "xjx.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}
