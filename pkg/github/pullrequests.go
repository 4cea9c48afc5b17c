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
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/shurcooL/githubv4"
)

type graphqlPullRequest struct {
	Number int
	Title  string
	Body   string
	Merged bool
	Author struct {
		Login string
	}
	MergedAt    githubv4.DateTime
	Permalink   string
	MergeCommit struct {
		OID string
	}

	Labels struct {
		Nodes []struct {
			Name string
		}
	} `graphql:"labels(first: 50)"`
}

// PullRequests fetches the merged pull requests among the given numbers,
// in the order the numbers were given. Numbers that do not resolve to a
// merged pull request are dropped; the caller decides whether that is
// worth a warning.
func (c *Client) PullRequests(ctx context.Context, numbers []int) ([]types.PullRequest, error) {
	byNumber := map[int]types.PullRequest{}

	remaining := numbers
	for len(remaining) > 0 {
		size := MaxPullRequestsPerQuery
		if len(remaining) < size {
			size = len(remaining)
		}

		chunk, err := c.fetchPullRequests(ctx, remaining[:size])
		if err != nil {
			return nil, err
		}

		for k, v := range chunk {
			byNumber[k] = v
		}

		remaining = remaining[size:]
	}

	result := []types.PullRequest{}
	for _, number := range numbers {
		if pr, ok := byNumber[number]; ok {
			result = append(result, pr)
		}
	}

	return result, nil
}

func (c *Client) fetchPullRequests(ctx context.Context, numbers []int) (map[int]types.PullRequest, error) {
	variables := getNumberedQueryVariables(numbers, MaxPullRequestsPerQuery)
	variables["owner"] = githubv4.String(c.owner)
	variables["name"] = githubv4.String(c.name)

	c.log.WithField("prs", len(numbers)).Debug("fetchPullRequests()")

	var q numberedPullRequestQuery

	err := c.query(ctx, &q, variables)
	if err != nil {
		// Commit messages can reference issues or pull requests in other
		// repositories; those numbers do not resolve, but the query still
		// returns data for the ones that do.
		if !isResolveError(err) {
			return nil, err
		}

		c.log.Debugf("Some referenced numbers are not pull requests: %v", err)
	}

	prs := map[int]types.PullRequest{}
	for _, pr := range q.GetAll() {
		if !pr.Merged {
			c.log.WithField("pr", pr.Number).Debug("Skipping unmerged pull request.")
			continue
		}

		prs[pr.Number] = convertPullRequest(pr)
	}

	return prs, nil
}

func convertPullRequest(api graphqlPullRequest) types.PullRequest {
	labels := []string{}
	for _, label := range api.Labels.Nodes {
		labels = append(labels, label.Name)
	}

	return types.PullRequest{
		Number:   api.Number,
		Title:    api.Title,
		Body:     api.Body,
		Author:   api.Author.Login,
		Labels:   labels,
		MergedAt: api.MergedAt.Time,
		MergeSHA: api.MergeCommit.OID,
		URL:      api.Permalink,
	}
}

func isResolveError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Could not resolve")
}
