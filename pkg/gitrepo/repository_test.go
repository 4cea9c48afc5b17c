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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/version"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}

type testRepo struct {
	t     *testing.T
	dir   string
	repo  *git.Repository
	wt    *git.Worktree
	clock time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init repository: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	return &testRepo{
		t:     t,
		dir:   dir,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) commit(message string) string {
	r.t.Helper()

	r.clock = r.clock.Add(time.Minute)

	filename := fmt.Sprintf("file-%d.txt", r.clock.Unix())
	if err := os.WriteFile(filepath.Join(r.dir, filename), []byte(message), 0644); err != nil {
		r.t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := r.wt.Add(filename); err != nil {
		r.t.Fatalf("Failed to stage file: %v", err)
	}

	signature := &object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  r.clock,
	}

	hash, err := r.wt.Commit(message, &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		r.t.Fatalf("Failed to commit: %v", err)
	}

	return hash.String()
}

func (r *testRepo) tag(name string, hash string, annotated bool) {
	r.t.Helper()

	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{
			Message: "release " + name,
			Tagger: &object.Signature{
				Name:  "Test Author",
				Email: "test@example.com",
				When:  r.clock,
			},
		}
	}

	if _, err := r.repo.CreateTag(name, plumbing.NewHash(hash), opts); err != nil {
		r.t.Fatalf("Failed to create tag %s: %v", name, err)
	}
}

func (r *testRepo) open() *Repository {
	r.t.Helper()

	repo, err := NewRepository(testLogger(), r.dir)
	if err != nil {
		r.t.Fatalf("Failed to open repository: %v", err)
	}

	return repo
}

func TestTagsDereferenceAnnotated(t *testing.T) {
	repo := newTestRepo(t)
	c1 := repo.commit("Initial commit")
	c2 := repo.commit("Add feature (#1)")
	repo.tag("v1.0.0", c1, false)
	repo.tag("v2.0.0", c2, true)

	tags, err := repo.open().Tags(context.Background())
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}

	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d.", len(tags))
	}

	byName := map[string]string{}
	for _, tag := range tags {
		byName[tag.Name] = tag.Hash
	}

	if byName["v1.0.0"] != c1 {
		t.Errorf("Expected v1.0.0 to point at %s, got %s.", c1, byName["v1.0.0"])
	}

	if byName["v2.0.0"] != c2 {
		t.Errorf("Expected annotated v2.0.0 to dereference to %s, got %s.", c2, byName["v2.0.0"])
	}
}

func TestCommitsByPrefix(t *testing.T) {
	repo := newTestRepo(t)
	c1 := repo.commit("Initial commit")
	c2 := repo.commit("Add feature (#1)")

	local := repo.open()

	matches, err := local.CommitsByPrefix(context.Background(), c1[:10])
	if err != nil {
		t.Fatalf("Failed to look up prefix: %v", err)
	}

	if len(matches) != 1 || matches[0] != c1 {
		t.Fatalf("Expected [%s], got %v.", c1, matches)
	}

	// Pick a first character neither hash starts with.
	missing := ""
	for _, candidate := range []string{"0", "1", "2"} {
		if !strings.HasPrefix(c1, candidate) && !strings.HasPrefix(c2, candidate) {
			missing = candidate
			break
		}
	}

	matches, err = local.CommitsByPrefix(context.Background(), missing)
	if err != nil {
		t.Fatalf("Failed to look up prefix: %v", err)
	}

	if len(matches) != 0 {
		t.Fatalf("Expected no matches for %q, got %v.", missing, matches)
	}
}

func TestCommitsBetween(t *testing.T) {
	repo := newTestRepo(t)
	c1 := repo.commit("Initial commit")
	c2 := repo.commit("Add feature (#1)")
	c3 := repo.commit("Fix crash (#2)")

	local := repo.open()

	commits, found, err := local.CommitsBetween(context.Background(), c1, c3)
	if err != nil {
		t.Fatalf("Failed to walk history: %v", err)
	}

	if !found {
		t.Fatal("Expected the base commit to be found.")
	}

	if len(commits) != 2 {
		t.Fatalf("Expected 2 commits, got %d.", len(commits))
	}

	if commits[0].SHA != c3 || commits[1].SHA != c2 {
		t.Errorf("Expected newest-first order [%s %s], got [%s %s].", c3, c2, commits[0].SHA, commits[1].SHA)
	}

	if !strings.Contains(commits[1].Message, "(#1)") {
		t.Errorf("Expected the commit message to be preserved, got %q.", commits[1].Message)
	}

	if commits[0].Committed.IsZero() {
		t.Error("Expected commit timestamps to be set.")
	}
}

func TestCommitsBetweenWrongDirection(t *testing.T) {
	repo := newTestRepo(t)
	c1 := repo.commit("Initial commit")
	repo.commit("Add feature (#1)")
	c3 := repo.commit("Fix crash (#2)")

	_, found, err := repo.open().CommitsBetween(context.Background(), c3, c1)
	if err != nil {
		t.Fatalf("Failed to walk history: %v", err)
	}

	if found {
		t.Fatal("Expected the newer commit to not be an ancestor of the older one.")
	}
}

func TestResolverOnLocalClone(t *testing.T) {
	repo := newTestRepo(t)
	c1 := repo.commit("Initial commit")
	c2 := repo.commit("Add feature (#1)")
	repo.tag("v1.0.0", c1, false)
	repo.tag("v1.1.0", c2, true)

	resolver := version.NewResolver(testLogger(), repo.open(), "local clone")

	testcases := []struct {
		ref      string
		expected string
	}{
		{"v1.0.0", c1},
		{"1.1.0", c2},
		{c2[:8], c2},
		{c1, c1},
	}

	for _, testcase := range testcases {
		resolved, err := resolver.Resolve(context.Background(), testcase.ref)
		if err != nil {
			t.Errorf("Expected %q to resolve, got error: %v", testcase.ref, err)
			continue
		}

		if resolved != testcase.expected {
			t.Errorf("Expected %q to resolve to %s, got %s.", testcase.ref, testcase.expected, resolved)
		}
	}

	_, err := resolver.Resolve(context.Background(), "v9.9.9")

	invalidErr := &version.InvalidReferenceError{}
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Expected an InvalidReferenceError for an unknown tag, got %v.", err)
	}
}

func TestNewRepositoryWithoutClone(t *testing.T) {
	if _, err := NewRepository(testLogger(), t.TempDir()); err == nil {
		t.Fatal("Expected opening a plain directory to fail.")
	}
}
