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

package summarize

import (
	"context"
	"errors"
	"net/http"
)

// GatewayProvider talks to an organization-internal LLM gateway that
// proxies chat completion requests behind an API key header.
type GatewayProvider struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGatewayProvider(url string, apiKey string, model string) (*GatewayProvider, error) {
	if url == "" {
		return nil, errors.New("gateway URL cannot be empty")
	}

	if apiKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	if model == "" {
		model = defaultOpenAIModel
	}

	return &GatewayProvider{
		url:        url,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: httpTimeout},
	}, nil
}

func (p *GatewayProvider) Name() string {
	return "gateway"
}

type gatewayRequest struct {
	Model       string        `json:"model"`
	Task        string        `json:"task"`
	ModelParams gatewayParams `json:"model-params"`
}

type gatewayParams struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

func (p *GatewayProvider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := gatewayRequest{
		Model: p.model,
		Task:  "chat/completions",
		ModelParams: gatewayParams{
			Messages: []chatMessage{
				{Role: "user", Content: prompt},
			},
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		},
	}

	header := http.Header{}
	header.Set("X-Api-Key", p.apiKey)

	var parsed openAIResponse

	err := postJSON(ctx, p.httpClient, p.url, header, payload, &parsed)
	if err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("gateway returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
