/*
Copyright 2025 The Automated Release RC contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// searchPaths is tried in order when no explicit settings file is
// given; the .local variant exists so developers can override the
// checked-in file without touching it.
var searchPaths = []string{
	"settings.local.yaml",
	"settings.yaml",
	filepath.Join("config", "settings.yaml"),
}

// Load reads a settings file, expands ${VAR} and ${VAR:default}
// references against the environment and merges the result over
// DefaultSettings. An empty path selects the first existing file from
// searchPaths.
func Load(path string) (*Settings, error) {
	if path == "" {
		for _, candidate := range searchPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}

		if path == "" {
			return nil, fmt.Errorf("no settings file found, looked for %s", strings.Join(searchPaths, ", "))
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(expandEnv(data), settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return settings, nil
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// expandEnv substitutes environment references in the raw file bytes,
// before YAML decoding. A variable that is set but empty wins over the
// default, matching shell semantics.
func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		groups := envPattern.FindSubmatch(match)

		if value, ok := os.LookupEnv(string(groups[1])); ok {
			return []byte(value)
		}

		return groups[2]
	})
}
