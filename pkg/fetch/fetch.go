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

package fetch

import (
	"context"
	"fmt"
	"sort"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Source provides commit history and pull request lookups, either through
// the hosting API or from a local clone.
type Source interface {
	// CommitsBetween returns the commits reachable from head, newest
	// first, stopping before base. The bool reports whether base was
	// actually reached.
	CommitsBetween(ctx context.Context, base string, head string) ([]types.Commit, bool, error)

	// PullRequests returns the merged pull requests among the given
	// numbers, in request order. Numbers that do not resolve to a merged
	// pull request are dropped.
	PullRequests(ctx context.Context, numbers []int) ([]types.PullRequest, error)
}

// Error wraps a failure of the underlying source after its retries are
// exhausted. A run cannot continue without the pull request list.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Fetcher struct {
	source Source
	log    logrus.FieldLogger
}

func NewFetcher(log logrus.FieldLogger, source Source) *Fetcher {
	return &Fetcher{
		source: source,
		log:    log,
	}
}

// Fetch returns the pull requests merged between two commits, oldest
// merge first. The arguments can be given in either order; when the
// first one is not an ancestor of the second, the walk direction is
// swapped transparently.
func (f *Fetcher) Fetch(ctx context.Context, oldCommit string, newCommit string) ([]types.PullRequest, error) {
	commits, found, err := f.source.CommitsBetween(ctx, oldCommit, newCommit)
	if err != nil {
		return nil, &Error{Op: "commits", Err: err}
	}

	if !found {
		f.log.WithField("base", oldCommit).WithField("head", newCommit).Debug("Base is not an ancestor of head, swapping walk direction.")

		commits, found, err = f.source.CommitsBetween(ctx, newCommit, oldCommit)
		if err != nil {
			return nil, &Error{Op: "commits", Err: err}
		}

		if !found {
			return nil, &Error{Op: "commits", Err: fmt.Errorf("%s and %s do not share any history", oldCommit, newCommit)}
		}
	}

	numbers := []int{}
	seen := sets.New[int]()

	for _, commit := range commits {
		number, ok := pullRequestNumber(commit.Message)
		if !ok {
			f.log.WithField("sha", shortHash(commit.SHA)).Warn("Commit does not reference a pull request, skipping.")
			continue
		}

		if seen.Has(number) {
			continue
		}

		seen.Insert(number)
		numbers = append(numbers, number)
	}

	if len(numbers) == 0 {
		return []types.PullRequest{}, nil
	}

	prs, err := f.source.PullRequests(ctx, numbers)
	if err != nil {
		return nil, &Error{Op: "pull requests", Err: err}
	}

	if len(prs) < len(numbers) {
		returned := sets.New[int]()
		for _, pr := range prs {
			returned.Insert(pr.Number)
		}

		for _, number := range numbers {
			if !returned.Has(number) {
				f.log.WithField("pr", number).Warn("Referenced pull request does not exist or is not merged, skipping.")
			}
		}
	}

	sort.SliceStable(prs, func(i, j int) bool {
		if prs[i].MergedAt.Equal(prs[j].MergedAt) {
			return prs[i].Number < prs[j].Number
		}

		return prs[i].MergedAt.Before(prs[j].MergedAt)
	})

	return prs, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}

	return hash
}
