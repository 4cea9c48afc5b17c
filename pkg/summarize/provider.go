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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Provider generates free text from a prompt. Implementations talk to one
// specific backend; the summarizer does not care which.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	// defaultMaxTokens bounds the answer size for all backends.
	defaultMaxTokens = 1000

	// defaultTemperature keeps the outputs consistent between runs.
	defaultTemperature = 0.3

	httpTimeout = 30 * time.Second
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const systemPrompt = "You are a helpful assistant that generates professional technical documentation."

// Chain tries a list of providers in order and returns the first answer.
// It satisfies Provider itself, so a chain can be handed to the
// summarizer like a single backend.
type Chain struct {
	providers []Provider
	log       logrus.FieldLogger
}

func NewChain(log logrus.FieldLogger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		log:       log,
	}
}

func (c *Chain) Name() string {
	return "chain"
}

func (c *Chain) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, provider := range c.providers {
		text, err := provider.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err
		c.log.WithField("provider", provider.Name()).Warnf("Provider failed, trying next one: %v", err)
	}

	if lastErr == nil {
		lastErr = errors.New("no providers configured")
	}

	return "", lastErr
}

func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, payload interface{}, response interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("API responded with status %s", res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
