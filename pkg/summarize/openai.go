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
	"strings"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider talks to the chat completions API, either at
// api.openai.com or at a compatible endpoint given as baseURL.
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey string, baseURL string, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: httpTimeout},
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := openAIRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.apiKey)

	var parsed openAIResponse

	err := postJSON(ctx, p.httpClient, p.baseURL+"/chat/completions", header, payload, &parsed)
	if err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
