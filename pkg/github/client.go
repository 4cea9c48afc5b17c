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

package github

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v55/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	// retryAttempts bounds how often a failed API call is repeated before
	// the run aborts.
	retryAttempts = 3

	retryBaseDelay = 1 * time.Second
)

type Client struct {
	gql   *githubv4.Client
	rest  *gogithub.Client
	owner string
	name  string
	log   logrus.FieldLogger
}

// NewClient returns a client for a single repository, given in owner/name
// form. An empty baseURL targets github.com; GitHub Enterprise installs
// pass their API endpoint instead.
func NewClient(ctx context.Context, log logrus.FieldLogger, token string, repository string, baseURL string) (*Client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	owner, name, err := SplitRepository(repository)
	if err != nil {
		return nil, err
	}

	src := oauth2.StaticTokenSource(
		&oauth2.Token{
			AccessToken: token,
		},
	)
	httpClient := oauth2.NewClient(ctx, src)

	gql := githubv4.NewClient(httpClient)
	rest := gogithub.NewClient(httpClient)

	if baseURL != "" {
		gql = githubv4.NewEnterpriseClient(strings.TrimSuffix(baseURL, "/")+"/graphql", httpClient)

		rest, err = rest.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
		}
	}

	return &Client{
		gql:   gql,
		rest:  rest,
		owner: owner,
		name:  name,
		log:   log,
	}, nil
}

func SplitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository %q is not in owner/name form", repository)
	}

	return parts[0], parts[1], nil
}

func (c *Client) Repository() string {
	return fmt.Sprintf("%s/%s", c.owner, c.name)
}

func (c *Client) RepositoryURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", c.owner, c.name)
}

// query runs a GraphQL query with bounded retries. Attempts back off
// linearly (1s, 2s) so a rate-limited run recovers without stalling for
// long; the context cancels the wait.
func (c *Client) query(ctx context.Context, q interface{}, variables map[string]interface{}) error {
	var lastErr error

	for attempt := 1; attempt <= retryAttempts; attempt++ {
		lastErr = c.gql.Query(ctx, q, variables)
		if lastErr == nil {
			return nil
		}

		// NOT_FOUND style errors will not go away by retrying.
		if isResolveError(lastErr) {
			return lastErr
		}

		if attempt == retryAttempts || ctx.Err() != nil {
			break
		}

		delay := time.Duration(attempt) * retryBaseDelay
		c.log.WithField("attempt", attempt).WithField("delay", delay).Warnf("GitHub API call failed, retrying: %v", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", retryAttempts, lastErr)
}

func getNumberedQueryVariables(numbers []int, max int) map[string]interface{} {
	if len(numbers) > max {
		panic(fmt.Sprintf("List contains more (%d) than possible (%d) PR numbers.", len(numbers), max))
	}

	variables := map[string]interface{}{}

	for i := 0; i < max; i++ {
		number := 0
		has := false

		if i < len(numbers) {
			number = numbers[i]
			has = true
		}

		variables[fmt.Sprintf("number%d", i)] = githubv4.Int(number)
		variables[fmt.Sprintf("has%d", i)] = githubv4.Boolean(has)
	}

	return variables
}
