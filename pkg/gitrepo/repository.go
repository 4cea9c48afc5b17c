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

package gitrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/sirupsen/logrus"
)

// maxHistoryDepth caps the backwards walk, mirroring the API-based
// source: a release range this long means the two references are
// unrelated.
const maxHistoryDepth = 5000

// Repository answers version resolution and history questions from a
// local clone, without touching the hosting API. Pull request metadata
// does not exist locally, so clone-based runs pair this with the API
// client for PR lookups.
type Repository struct {
	repo *git.Repository
	log  logrus.FieldLogger
}

func NewRepository(log logrus.FieldLogger, path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}

	return &Repository{
		repo: repo,
		log:  log,
	}, nil
}

// Tags returns all tags, annotated ones dereferenced to the commit they
// point at.
func (r *Repository) Tags(ctx context.Context) ([]types.Ref, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	refs := []types.Ref{}

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		refs = append(refs, types.Ref{
			Name: ref.Name().Short(),
			Hash: r.dereference(ref.Hash()).String(),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return refs, nil
}

// dereference follows tag objects until a non-tag target is reached;
// lightweight tags already point at the commit.
func (r *Repository) dereference(hash plumbing.Hash) plumbing.Hash {
	for {
		tag, err := r.repo.TagObject(hash)
		if err != nil {
			return hash
		}

		hash = tag.Target
	}
}

// CommitsByPrefix scans the object storage for commits matching the
// given hash prefix, returning every match so the resolver can detect
// ambiguous references.
func (r *Repository) CommitsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	iter, err := r.repo.CommitObjects()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate commits: %w", err)
	}

	matches := []string{}

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if strings.HasPrefix(commit.Hash.String(), prefix) {
			matches = append(matches, commit.Hash.String())
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate commits: %w", err)
	}

	sort.Strings(matches)

	return matches, nil
}

// CommitsBetween walks the history backwards from head and collects
// every commit until base is reached. The bool reports whether base is
// actually an ancestor of head.
func (r *Repository) CommitsBetween(ctx context.Context, base string, head string) ([]types.Commit, bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: plumbing.NewHash(head)})
	if err != nil {
		return nil, false, fmt.Errorf("failed to walk history from %s: %w", head, err)
	}

	commits := []types.Commit{}
	found := false

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if commit.Hash.String() == base {
			found = true
			return storer.ErrStop
		}

		if len(commits) >= maxHistoryDepth {
			r.log.WithField("head", head).WithField("depth", maxHistoryDepth).Warn("Reached history depth cap without finding the base commit.")
			return storer.ErrStop
		}

		commits = append(commits, types.Commit{
			SHA:       commit.Hash.String(),
			Message:   commit.Message,
			Author:    commit.Author.Name,
			Committed: commit.Committer.When,
		})

		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to walk history from %s: %w", head, err)
	}

	return commits, found, nil
}
