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
	"fmt"
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"
	"github.com/ArnoldoM23/automated-release-rc/pkg/version"

	"github.com/shurcooL/githubv4"
)

// maxHistoryDepth caps the backwards walk so two unrelated references do
// not make us page through the entire history of a large repository.
const maxHistoryDepth = 5000

type commitSchema struct {
	OID           string
	Message       string
	CommittedDate githubv4.DateTime
}

type historyQuery struct {
	Repository struct {
		Object struct {
			Commit struct {
				History struct {
					Nodes    []commitSchema
					PageInfo struct {
						EndCursor   githubv4.String
						HasNextPage bool
					}
				} `graphql:"history(first: 100, after: $cursor)"`
			} `graphql:"... on Commit"`
		} `graphql:"object(expression: $head)"`
	} `graphql:"repository(name: $name, owner: $owner)"`
}

// CommitsBetween walks the history backwards from head and collects every
// commit until base is reached. The bool reports whether base is actually
// an ancestor of head; callers use it to decide whether to swap the two
// references and walk the other way.
func (c *Client) CommitsBetween(ctx context.Context, base string, head string) ([]types.Commit, bool, error) {
	commits := []types.Commit{}
	cursor := ""
	found := false

	for {
		var (
			err  error
			page []types.Commit
		)

		page, cursor, err = c.fetchHistoryPage(ctx, head, cursor)
		if err != nil {
			return nil, false, fmt.Errorf("failed to fetch commits: %w", err)
		}

		for _, commit := range page {
			if commit.SHA == base {
				found = true
				break
			}

			commits = append(commits, commit)
		}

		if found || cursor == "" {
			break
		}

		if len(commits) >= maxHistoryDepth {
			c.log.WithField("head", head).WithField("depth", maxHistoryDepth).Warn("Reached history depth cap without finding the base commit.")
			break
		}
	}

	return commits, found, nil
}

func (c *Client) fetchHistoryPage(ctx context.Context, head string, cursor string) ([]types.Commit, string, error) {
	variables := map[string]interface{}{
		"owner": githubv4.String(c.owner),
		"name":  githubv4.String(c.name),
		"head":  githubv4.String(head),
	}

	if cursor == "" {
		variables["cursor"] = (*githubv4.String)(nil)
	} else {
		variables["cursor"] = githubv4.String(cursor)
	}

	c.log.WithField("cursor", cursor).Debug("fetchHistory()")

	var q historyQuery

	err := c.query(ctx, &q, variables)
	if err != nil {
		return nil, "", err
	}

	cursor = ""
	if info := q.Repository.Object.Commit.History.PageInfo; info.HasNextPage {
		cursor = string(info.EndCursor)
	}

	commits := []types.Commit{}
	for _, node := range q.Repository.Object.Commit.History.Nodes {
		commits = append(commits, types.Commit{
			SHA:       node.OID,
			Message:   node.Message,
			Committed: node.CommittedDate.Time,
		})
	}

	return commits, cursor, nil
}

type commitLookupQuery struct {
	Repository struct {
		Object struct {
			Commit struct {
				OID string
			} `graphql:"... on Commit"`
		} `graphql:"object(expression: $expression)"`
	} `graphql:"repository(name: $name, owner: $owner)"`
}

// CommitsByPrefix resolves a commit hash prefix through the hosting API.
// The API resolves unique prefixes directly and reports collisions as an
// error, so the result never holds more than one hash.
func (c *Client) CommitsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	variables := map[string]interface{}{
		"owner":      githubv4.String(c.owner),
		"name":       githubv4.String(c.name),
		"expression": githubv4.String(prefix),
	}

	c.log.WithField("prefix", prefix).Debug("lookupCommit()")

	var q commitLookupQuery

	err := c.query(ctx, &q, variables)
	if err != nil {
		if isAmbiguousRevision(err) {
			return nil, version.ErrAmbiguousPrefix
		}

		return nil, err
	}

	if oid := q.Repository.Object.Commit.OID; oid != "" {
		return []string{oid}, nil
	}

	return nil, nil
}

func isAmbiguousRevision(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "ambiguous")
}
