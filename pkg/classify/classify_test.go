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

package classify

import (
	"io"
	"reflect"
	"testing"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}

func numbers(prs []types.PullRequest) []int {
	result := []int{}
	for _, pr := range prs {
		result = append(result, pr.Number)
	}

	return result
}

func TestClassifyMixedSignals(t *testing.T) {
	prs := []types.PullRequest{
		{Number: 10, Title: "Add audit table", Labels: []string{"schema change"}},
		{Number: 11, Title: "Roll out international pricing", Labels: []string{"feature"}},
		{Number: 12, Title: "fix crash"},
	}

	classifier := NewClassifier(testLogger(), DefaultKeywords())
	buckets, overlay := classifier.Classify(prs)

	expected := map[Category][]int{
		CategorySchema:         {10},
		CategoryFeature:        {11},
		CategoryBugfix:         {12},
		CategoryInfrastructure: {},
		CategoryOther:          {},
	}

	for category, want := range expected {
		if got := numbers(buckets[category]); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %s bucket %v, got %v.", category, want, got)
		}
	}

	if got := numbers(overlay); !reflect.DeepEqual(got, []int{11}) {
		t.Errorf("Expected overlay [11], got %v.", got)
	}
}

func TestClassifyAssignsEachPullRequestOnce(t *testing.T) {
	prs := []types.PullRequest{
		{Number: 1, Title: "Add schema migration", Labels: []string{"schema", "feature"}},
		{Number: 2, Title: "New checkout flow", Labels: []string{"feature", "bug"}},
		{Number: 3, Title: "Bump CI runners", Labels: []string{"ci"}},
		{Number: 4, Title: "fix flaky locale formatting", Labels: []string{"i18n"}},
		{Number: 5},
		{Number: 6, Title: "Rework docs layout"},
	}

	classifier := NewClassifier(testLogger(), DefaultKeywords())
	buckets, _ := classifier.Classify(prs)

	seen := map[int]int{}
	for _, bucket := range buckets {
		for _, pr := range bucket {
			seen[pr.Number]++
		}
	}

	if len(seen) != len(prs) {
		t.Fatalf("Expected %d distinct PRs across buckets, got %d.", len(prs), len(seen))
	}

	for _, pr := range prs {
		if seen[pr.Number] != 1 {
			t.Errorf("Expected PR #%d to appear exactly once, got %d times.", pr.Number, seen[pr.Number])
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	testcases := []struct {
		name     string
		pr       types.PullRequest
		expected Category
	}{
		{
			name:     "schema beats feature",
			pr:       types.PullRequest{Number: 1, Labels: []string{"feature", "schema"}},
			expected: CategorySchema,
		},
		{
			name:     "feature beats bugfix",
			pr:       types.PullRequest{Number: 2, Labels: []string{"bug", "feature"}},
			expected: CategoryFeature,
		},
		{
			name:     "bugfix beats infrastructure",
			pr:       types.PullRequest{Number: 3, Labels: []string{"ci", "hotfix"}},
			expected: CategoryBugfix,
		},
		{
			name:     "label substring matches",
			pr:       types.PullRequest{Number: 4, Labels: []string{"schema-update"}},
			expected: CategorySchema,
		},
		{
			name:     "title substring matches",
			pr:       types.PullRequest{Number: 5, Title: "Patch the session store"},
			expected: CategoryBugfix,
		},
		{
			name:     "branch convention title",
			pr:       types.PullRequest{Number: 6, Title: "Feature/add-wishlist-v2"},
			expected: CategoryFeature,
		},
		{
			name:     "schema keyword needs word boundary in title",
			pr:       types.PullRequest{Number: 7, Title: "update graphqlschema internals"},
			expected: CategoryOther,
		},
		{
			name:     "schema keyword matches whole word in title",
			pr:       types.PullRequest{Number: 8, Title: "update graphql resolvers"},
			expected: CategorySchema,
		},
		{
			name:     "nothing matches",
			pr:       types.PullRequest{Number: 9, Title: "Rework onboarding copy"},
			expected: CategoryOther,
		},
	}

	classifier := NewClassifier(testLogger(), DefaultKeywords())

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			buckets, _ := classifier.Classify([]types.PullRequest{testcase.pr})

			if got := numbers(buckets[testcase.expected]); len(got) != 1 {
				t.Fatalf("Expected PR #%d in %s bucket, buckets were %v.", testcase.pr.Number, testcase.expected, buckets)
			}
		})
	}
}

func TestClassifyOverlayIndependence(t *testing.T) {
	prs := []types.PullRequest{
		{Number: 1, Title: "Add locale-aware checkout", Labels: []string{"feature"}},
		{Number: 2, Title: "Support multi-tenant headers", Labels: []string{"i18n"}},
		{Number: 3, Title: "fix login redirect"},
	}

	classifier := NewClassifier(testLogger(), DefaultKeywords())
	buckets, overlay := classifier.Classify(prs)

	// overlay membership never moves a PR out of its primary bucket
	if got := numbers(buckets[CategoryFeature]); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Expected feature bucket [1], got %v.", got)
	}

	if got := numbers(buckets[CategoryOther]); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Expected other bucket [2], got %v.", got)
	}

	if got := numbers(overlay); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Expected overlay [1 2], got %v.", got)
	}
}

func TestClassifyEmptyPullRequest(t *testing.T) {
	classifier := NewClassifier(testLogger(), DefaultKeywords())
	buckets, overlay := classifier.Classify([]types.PullRequest{{Number: 7}})

	if got := numbers(buckets[CategoryOther]); !reflect.DeepEqual(got, []int{7}) {
		t.Fatalf("Expected empty PR in other bucket, buckets were %v.", buckets)
	}

	if len(overlay) != 0 {
		t.Fatalf("Expected empty PR to stay out of the overlay, got %v.", numbers(overlay))
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	prs := []types.PullRequest{
		{Number: 1, Title: "Add schema migration", Labels: []string{"schema"}},
		{Number: 2, Title: "New search facets", Labels: []string{"feature"}},
		{Number: 3, Title: "fix locale fallback", Labels: []string{"bug", "i18n"}},
		{Number: 4, Title: "Tune deploy pipeline", Labels: []string{"ci"}},
	}

	classifier := NewClassifier(testLogger(), DefaultKeywords())

	firstBuckets, firstOverlay := classifier.Classify(prs)
	secondBuckets, secondOverlay := classifier.Classify(prs)

	if !reflect.DeepEqual(firstBuckets, secondBuckets) {
		t.Errorf("Expected identical buckets on repeated classification.")
	}

	if !reflect.DeepEqual(firstOverlay, secondOverlay) {
		t.Errorf("Expected identical overlay on repeated classification.")
	}
}

func TestClassifyPreservesFetchOrder(t *testing.T) {
	prs := []types.PullRequest{
		{Number: 30, Title: "fix checkout rounding"},
		{Number: 10, Title: "fix cart badge"},
		{Number: 20, Title: "fix session expiry"},
	}

	classifier := NewClassifier(testLogger(), DefaultKeywords())
	buckets, _ := classifier.Classify(prs)

	if got := numbers(buckets[CategoryBugfix]); !reflect.DeepEqual(got, []int{30, 10, 20}) {
		t.Fatalf("Expected fetch order [30 10 20] to be preserved, got %v.", got)
	}
}

func TestClassifyIgnoresEmptyKeywords(t *testing.T) {
	keywords := DefaultKeywords()
	keywords.International = []string{"", "  "}

	classifier := NewClassifier(testLogger(), keywords)
	_, overlay := classifier.Classify([]types.PullRequest{{Number: 1, Title: "fix crash"}})

	if len(overlay) != 0 {
		t.Fatalf("Expected blank keywords to match nothing, overlay was %v.", numbers(overlay))
	}
}
