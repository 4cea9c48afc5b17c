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

package version

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"
)

// Repository is the slice of hosting-API surface the resolver needs. Both
// the GitHub client and a local clone implement it.
type Repository interface {
	// Tags returns all tags with their dereferenced commit hashes.
	Tags(ctx context.Context) ([]types.Ref, error)

	// CommitsByPrefix returns the full hashes of all commits matching the
	// given prefix. Implementations that cannot enumerate collisions return
	// ErrAmbiguousPrefix instead.
	CommitsByPrefix(ctx context.Context, prefix string) ([]string, error)
}

type Resolver struct {
	repo     Repository
	repoName string
	log      logrus.FieldLogger

	tags       []types.Ref
	tagsLoaded bool
}

func NewResolver(log logrus.FieldLogger, repo Repository, repoName string) *Resolver {
	return &Resolver{
		repo:     repo,
		repoName: repoName,
		log:      log,
	}
}

// Resolve turns a version reference into a full commit hash. Hex-shaped
// references are tried as commits first and fall back to an exact tag
// lookup (a tag can be named like a hash); everything else is looked up as
// a tag, accepting both "v1.2.3" and "1.2.3" for the same tag.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &InvalidReferenceError{Ref: ref, Repository: r.repoName}
	}

	if types.IsCommitRef(ref) {
		return r.resolveCommit(ctx, strings.ToLower(ref))
	}

	hash, found, err := r.lookupTag(ctx, ref, true)
	if err != nil {
		return "", err
	}

	if !found {
		return "", &InvalidReferenceError{Ref: ref, Repository: r.repoName}
	}

	return hash, nil
}

func (r *Resolver) resolveCommit(ctx context.Context, ref string) (string, error) {
	candidates, err := r.repo.CommitsByPrefix(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrAmbiguousPrefix) {
			return "", &AmbiguousReferenceError{Ref: ref, Repository: r.repoName}
		}

		return "", fmt.Errorf("failed to look up commit %q: %w", ref, err)
	}

	switch len(candidates) {
	case 1:
		r.log.WithField("ref", ref).WithField("commit", candidates[0]).Debug("Resolved as commit.")
		return candidates[0], nil

	case 0:
		// A tag can be named like a hex string; only an exact name match
		// counts, no v-prefix toggling.
		hash, found, err := r.lookupTag(ctx, ref, false)
		if err != nil {
			return "", err
		}

		if found {
			return hash, nil
		}

		return "", &InvalidReferenceError{Ref: ref, Repository: r.repoName}

	default:
		return "", &AmbiguousReferenceError{Ref: ref, Repository: r.repoName, Candidates: candidates}
	}
}

func (r *Resolver) lookupTag(ctx context.Context, name string, togglePrefix bool) (string, bool, error) {
	tags, err := r.tagList(ctx)
	if err != nil {
		return "", false, err
	}

	names := []string{name}
	if togglePrefix {
		if trimmed := strings.TrimPrefix(name, "v"); trimmed != name {
			names = append(names, trimmed)
		} else {
			names = append(names, "v"+name)
		}
	}

	for _, candidate := range names {
		for _, tag := range tags {
			if tag.Name == candidate {
				r.log.WithField("ref", name).WithField("tag", tag.Name).WithField("commit", tag.Hash).Debug("Resolved as tag.")
				return tag.Hash, true, nil
			}
		}
	}

	return "", false, nil
}

func (r *Resolver) tagList(ctx context.Context) ([]types.Ref, error) {
	if r.tagsLoaded {
		return r.tags, nil
	}

	tags, err := r.repo.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	r.tags = tags
	r.tagsLoaded = true

	return tags, nil
}

// LatestTags returns up to n semver tags, newest first. Tags that do not
// parse as semver are ignored. Used to suggest versions in the agent CLI.
func (r *Resolver) LatestTags(ctx context.Context, n int) ([]types.Ref, error) {
	tags, err := r.tagList(ctx)
	if err != nil {
		return nil, err
	}

	type versionedTag struct {
		ref     types.Ref
		version *semver.Version
	}

	parsed := []versionedTag{}
	for _, tag := range tags {
		v, err := semver.NewVersion(tag.Name)
		if err != nil {
			continue
		}

		parsed = append(parsed, versionedTag{ref: tag, version: v})
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].version.GreaterThan(parsed[j].version)
	})

	if len(parsed) > n {
		parsed = parsed[:n]
	}

	result := make([]types.Ref, 0, len(parsed))
	for _, tag := range parsed {
		result = append(result, tag.ref)
	}

	return result, nil
}
