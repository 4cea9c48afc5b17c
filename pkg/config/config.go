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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/classify"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGateway   = "gateway"
)

// Settings is the static per-installation configuration. Release
// parameters (versions, dates, people) arrive per run via flags or the
// dispatch payload and never live here.
type Settings struct {
	GitHub       GitHubSettings     `yaml:"github"`
	Organization types.Organization `yaml:"organization"`
	Categories   classify.Keywords  `yaml:"categories"`
	LLM          LLMSettings        `yaml:"llm"`
	Slack        SlackSettings      `yaml:"slack"`
	Output       OutputSettings     `yaml:"output"`
	LogLevel     string             `yaml:"log_level"`
}

type GitHubSettings struct {
	Token      string `yaml:"token,omitempty"`
	Repository string `yaml:"repo,omitempty"`

	// BaseURL points at a GitHub Enterprise API endpoint; empty means
	// github.com.
	BaseURL string `yaml:"base_url,omitempty"`
}

type LLMSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`

	// BaseURL overrides the OpenAI-compatible endpoint, GatewayURL
	// selects the enterprise gateway provider's endpoint.
	BaseURL    string `yaml:"base_url,omitempty"`
	GatewayURL string `yaml:"gateway_url,omitempty"`

	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// Timeout converts the configured seconds; zero lets the summarizer
// pick its default.
func (l LLMSettings) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

type SlackSettings struct {
	Token   string `yaml:"token,omitempty"`
	Channel string `yaml:"channel,omitempty"`

	// DryRun logs the messages instead of posting them.
	DryRun bool `yaml:"dry_run,omitempty"`
}

type OutputSettings struct {
	Directory string `yaml:"dir"`

	ReleaseNotes bool `yaml:"release_notes"`
	CRQs         bool `yaml:"crqs"`
	Summary      bool `yaml:"summary"`
}

// DefaultSettings returns the configuration an empty settings file
// resolves to. Loading merges the file over these values, so partial
// files keep the remaining defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Organization: types.Organization{
			Platform:     "Glass",
			Regions:      []string{"EUS", "SCUS", "WUS"},
			SlackChannel: "#release-rc",
		},
		Categories: classify.DefaultKeywords(),
		LLM: LLMSettings{
			Enabled:        true,
			Provider:       ProviderOpenAI,
			TimeoutSeconds: 10,
		},
		Slack: SlackSettings{
			Channel: "#releases",
		},
		Output: OutputSettings{
			Directory:    "release-output",
			ReleaseNotes: true,
			CRQs:         true,
			Summary:      true,
		},
		LogLevel: "info",
	}
}

func (s *Settings) Validate() error {
	if s.GitHub.Repository != "" {
		if parts := strings.Split(s.GitHub.Repository, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("github.repo %q is not in owner/name form", s.GitHub.Repository)
		}
	}

	switch s.LLM.Provider {
	case "", ProviderOpenAI, ProviderAnthropic, ProviderGateway:
	default:
		return fmt.Errorf("llm.provider %q must be one of %s, %s or %s", s.LLM.Provider, ProviderOpenAI, ProviderAnthropic, ProviderGateway)
	}

	if s.LLM.Enabled && s.LLM.Provider == ProviderGateway && s.LLM.GatewayURL == "" {
		return errors.New("llm.gateway_url is required for the gateway provider")
	}

	if s.LLM.TimeoutSeconds < 0 {
		return fmt.Errorf("llm.timeout_seconds must not be negative, got %d", s.LLM.TimeoutSeconds)
	}

	if s.Output.Directory == "" {
		return errors.New("output.dir cannot be empty")
	}

	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", s.LogLevel)
	}

	return nil
}

// Level returns the configured log level; Validate guarantees the
// string parses.
func (s *Settings) Level() logrus.Level {
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}
