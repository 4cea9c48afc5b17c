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

package release

import (
	"fmt"
	"os"

	"github.com/ArnoldoM23/automated-release-rc/pkg/config"
	"github.com/ArnoldoM23/automated-release-rc/pkg/summarize"

	"github.com/sirupsen/logrus"
)

// buildProvider assembles the text generation backend for a run: the
// configured provider first, the remaining backends as fallback.
// Backends without credentials are skipped; a nil result selects the
// deterministic fallback texts throughout the documents.
func buildProvider(log logrus.FieldLogger, settings config.LLMSettings) summarize.Provider {
	if !settings.Enabled {
		log.Debug("Text generation is disabled, documents use fallback texts.")
		return nil
	}

	providers := []summarize.Provider{}

	for _, name := range providerOrder(settings.Provider) {
		provider, err := newProvider(name, settings)
		if err != nil {
			log.WithField("provider", name).Debugf("Provider not usable: %v", err)
			continue
		}

		providers = append(providers, provider)
	}

	switch len(providers) {
	case 0:
		log.Warn("No usable text generation provider, documents use fallback texts.")
		return nil
	case 1:
		return providers[0]
	default:
		return summarize.NewChain(log, providers...)
	}
}

func providerOrder(primary string) []string {
	order := []string{}
	if primary != "" {
		order = append(order, primary)
	}

	for _, name := range []string{config.ProviderOpenAI, config.ProviderAnthropic, config.ProviderGateway} {
		if name != primary {
			order = append(order, name)
		}
	}

	return order
}

// newProvider builds one backend. The configured primary gets the
// settings key and model; fallback backends only use their conventional
// environment keys and default models, so an OpenAI key never leaks
// into an Anthropic request.
func newProvider(name string, settings config.LLMSettings) (summarize.Provider, error) {
	apiKey := ""
	model := ""

	if name == settings.Provider {
		apiKey = settings.APIKey
		model = settings.Model
	}

	switch name {
	case config.ProviderOpenAI:
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}

		return summarize.NewOpenAIProvider(apiKey, settings.BaseURL, model)

	case config.ProviderAnthropic:
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}

		return summarize.NewAnthropicProvider(apiKey, model)

	case config.ProviderGateway:
		return summarize.NewGatewayProvider(settings.GatewayURL, apiKey, model)

	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
