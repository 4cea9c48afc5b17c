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
	"errors"
	"testing"
	"time"

	"github.com/shurcooL/githubv4"
)

func TestSplitRepository(t *testing.T) {
	testcases := []struct {
		repository string
		owner      string
		name       string
		valid      bool
	}{
		{repository: "myorg/myservice", owner: "myorg", name: "myservice", valid: true},
		{repository: "myservice", valid: false},
		{repository: "myorg/", valid: false},
		{repository: "/myservice", valid: false},
		{repository: "a/b/c", valid: false},
		{repository: "", valid: false},
	}

	for _, testcase := range testcases {
		t.Run(testcase.repository, func(t *testing.T) {
			owner, name, err := SplitRepository(testcase.repository)

			if !testcase.valid {
				if err == nil {
					t.Fatalf("Expected %q to be rejected, but got %q and %q.", testcase.repository, owner, name)
				}

				return
			}

			if err != nil {
				t.Fatalf("Expected %q to be valid, but got: %v", testcase.repository, err)
			}

			if owner != testcase.owner || name != testcase.name {
				t.Fatalf("Expected (%q, %q), got (%q, %q).", testcase.owner, testcase.name, owner, name)
			}
		})
	}
}

func TestGetNumberedQueryVariables(t *testing.T) {
	variables := getNumberedQueryVariables([]int{12, 34}, 4)

	expected := map[string]interface{}{
		"number0": githubv4.Int(12),
		"has0":    githubv4.Boolean(true),
		"number1": githubv4.Int(34),
		"has1":    githubv4.Boolean(true),
		"number2": githubv4.Int(0),
		"has2":    githubv4.Boolean(false),
		"number3": githubv4.Int(0),
		"has3":    githubv4.Boolean(false),
	}

	if len(variables) != len(expected) {
		t.Fatalf("Expected %d variables, got %d.", len(expected), len(variables))
	}

	for key, value := range expected {
		if variables[key] != value {
			t.Errorf("Expected %s to be %v, got %v.", key, value, variables[key])
		}
	}
}

func TestConvertPullRequestKeepsLabelOrder(t *testing.T) {
	api := graphqlPullRequest{
		Number: 42,
		Title:  "Add wishlist endpoint",
		Merged: true,
	}
	api.Author.Login = "alice"
	api.MergedAt = githubv4.DateTime{Time: time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC)}
	api.MergeCommit.OID = "cafe1234cafe1234cafe1234cafe1234cafe1234"
	api.Labels.Nodes = []struct{ Name string }{
		{Name: "feature"},
		{Name: "backend"},
		{Name: "api"},
	}

	pr := convertPullRequest(api)

	if pr.Author != "alice" {
		t.Errorf("Expected author %q, got %q.", "alice", pr.Author)
	}

	expected := []string{"feature", "backend", "api"}
	if len(pr.Labels) != len(expected) {
		t.Fatalf("Expected %d labels, got %d.", len(expected), len(pr.Labels))
	}

	for i, label := range expected {
		if pr.Labels[i] != label {
			t.Errorf("Expected label %d to be %q, got %q.", i, label, pr.Labels[i])
		}
	}
}

func TestErrorClassification(t *testing.T) {
	if !isResolveError(errors.New("Could not resolve to a PullRequest with the number of 999.")) {
		t.Error("Expected a NOT_FOUND message to count as resolve error.")
	}

	if isResolveError(errors.New("API rate limit exceeded")) {
		t.Error("Expected a rate limit message to not count as resolve error.")
	}

	if !isAmbiguousRevision(errors.New("short SHA is ambiguous")) {
		t.Error("Expected an ambiguity message to be detected.")
	}

	if isAmbiguousRevision(nil) {
		t.Error("Expected nil to not be ambiguous.")
	}
}
