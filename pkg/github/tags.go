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

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/shurcooL/githubv4"
)

type ref struct {
	Name   string
	Target struct {
		OID string

		// for annotated tags, the target (ref.target.OID) is the OID of the
		// tag object itself, not the commit that the tag points to. To get
		// the actual commit hash we need to dig one level deeper.
		Tag struct {
			Target struct {
				OID string
			}
		} `graphql:"... on Tag"`
	}
}

type tagsQuery struct {
	Repository struct {
		Refs struct {
			Nodes    []ref
			PageInfo struct {
				EndCursor   githubv4.String
				HasNextPage bool
			}
		} `graphql:"refs(first: 100, refPrefix: $prefix, after: $cursor)"`
	} `graphql:"repository(name: $name, owner: $owner)"`
}

// Tags returns all tags of the repository with their dereferenced commit
// hashes.
func (c *Client) Tags(ctx context.Context) ([]types.Ref, error) {
	tags := []types.Ref{}
	cursor := ""

	for {
		var (
			err  error
			page []types.Ref
		)

		page, cursor, err = c.fetchTagsPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tags: %w", err)
		}

		tags = append(tags, page...)

		if cursor == "" {
			break
		}
	}

	return tags, nil
}

func (c *Client) fetchTagsPage(ctx context.Context, cursor string) ([]types.Ref, string, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(c.owner),
		"name":   githubv4.String(c.name),
		"prefix": githubv4.String("refs/tags/"),
	}

	if cursor == "" {
		variables["cursor"] = (*githubv4.String)(nil)
	} else {
		variables["cursor"] = githubv4.String(cursor)
	}

	c.log.WithField("cursor", cursor).Debug("fetchTags()")

	var q tagsQuery

	err := c.query(ctx, &q, variables)
	if err != nil {
		return nil, "", err
	}

	cursor = ""
	if info := q.Repository.Refs.PageInfo; info.HasNextPage {
		cursor = string(info.EndCursor)
	}

	tags := []types.Ref{}
	for _, apiRef := range q.Repository.Refs.Nodes {
		tags = append(tags, convertRef(apiRef))
	}

	return tags, cursor, nil
}

func convertRef(api ref) types.Ref {
	hash := api.Target.Tag.Target.OID
	if hash == "" {
		hash = api.Target.OID
	}

	return types.Ref{
		Name: api.Name,
		Hash: hash,
	}
}
