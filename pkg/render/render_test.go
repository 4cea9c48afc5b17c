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

package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/classify"
	"github.com/ArnoldoM23/automated-release-rc/pkg/summarize"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"
)

func testContext() *Context {
	feature := types.PullRequest{
		Number:      101,
		Title:       "Add bulk upload",
		Author:      "alice",
		DisplayName: "Alice Cooper (@alice)",
		Labels:      []string{"feature"},
		URL:         "https://github.com/myorg/perfect-seller/pull/101",
	}
	bugfix := types.PullRequest{
		Number: 102,
		Title:  "fix crash on empty cart",
		Author: "bob",
		URL:    "https://github.com/myorg/perfect-seller/pull/102",
	}
	schema := types.PullRequest{
		Number: 103,
		Title:  "Add audit table",
		Author: "carol",
		Labels: []string{"schema"},
		URL:    "https://github.com/myorg/perfect-seller/pull/103",
	}
	locale := types.PullRequest{
		Number: 104,
		Title:  "Roll out locale pricing",
		Author: "alice",
		Labels: []string{"feature", "i18n"},
		URL:    "https://github.com/myorg/perfect-seller/pull/104",
	}

	return &Context{
		Release: types.Release{
			Service:     "perfect-seller",
			ProdVersion: "v2.0.0",
			NewVersion:  "v2.1.0",
			ReleaseType: "standard",
			RCName:      "Dana",
			RCManager:   "Sam",
			Day1Date:    "2025-03-13",
			Day2Date:    "2025-03-14",
		},
		Organization: types.Organization{
			Platform:     "Glass",
			Regions:      []string{"EUS", "SCUS", "WUS"},
			SlackChannel: "#release-rc",
		},
		Repository:   "myorg/perfect-seller",
		PullRequests: []types.PullRequest{schema, feature, locale, bugfix},
		Buckets: classify.Buckets{
			classify.CategorySchema:  {schema},
			classify.CategoryFeature: {feature, locale},
			classify.CategoryBugfix:  {bugfix},
		},
		Overlay:    []types.PullRequest{locale},
		Highlights: "This release includes 2 new features, 1 bug fix and 1 schema change to improve system functionality and user experience.",
		Summaries: map[classify.Category]string{
			classify.CategoryFeature:       "Bulk workflows got a lot faster.",
			classify.CategoryInternational: "Locale pricing reaches three new markets.",
		},
		Analysis: map[string]string{
			summarize.KeyRiskAssessment:    "Low risk, only the cart service is touched.",
			summarize.KeyTechnicalSummary:  "Deployment of perfect-seller v2.1.0 including 4 pull requests.",
			summarize.KeyValidationSteps:   "Verify checkout and locale pricing after deployment.",
			summarize.KeyRollbackScenarios: "Rollback if checkout error rates exceed 5%.",
			summarize.KeyBusinessImpact:    "Faster bulk uploads for enterprise sellers.",
		},
		GeneratedAt: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func render(t *testing.T, kind Kind, ctx *Context) string {
	t.Helper()

	renderer, err := New(kind)
	if err != nil {
		t.Fatalf("Failed to create %s renderer: %v", kind, err)
	}

	output, err := renderer.Render(ctx)
	if err != nil {
		t.Fatalf("Failed to render %s document: %v", kind, err)
	}

	return output
}

func assertContainsAll(t *testing.T, output string, snippets []string) {
	t.Helper()

	for _, snippet := range snippets {
		if !strings.Contains(output, snippet) {
			t.Errorf("Expected output to contain %q.", snippet)
		}
	}
}

func TestRenderConfluence(t *testing.T) {
	output := render(t, KindConfluence, testContext())

	assertContainsAll(t, output, []string{
		"h1. Release Notes - perfect-seller v2.1.0",
		"*Release Type:* Standard",
		"This release includes 4 pull request(s)",
		"* ✨ **2 New Features**",
		"h2. 🔗 Schema Changes",
		"h2. 🌍 International Changes",
		"Locale pricing reaches three new markets.",
		"* *PR #101:* Add bulk upload",
		"Author: Alice Cooper (@alice)",
		"Labels: None",
		"[View PR|https://github.com/myorg/perfect-seller/pull/103]",
		"rollback to v2.0.0",
		"Contact the release team in #release-rc",
		"*Generated automatically by RC Release Automation on 2025-03-14 09:26:53 UTC*",
	})
}

func TestRenderConfluenceSectionOrder(t *testing.T) {
	output := render(t, KindConfluence, testContext())

	headings := []string{
		"h2. 🔗 Schema Changes",
		"h2. ✨ New Features",
		"h2. 🐛 Bug Fixes",
		"h2. 🌍 International Changes",
	}

	last := -1
	for _, heading := range headings {
		pos := strings.Index(output, heading)
		if pos == -1 {
			t.Fatalf("Expected output to contain %q.", heading)
		}

		if pos < last {
			t.Errorf("Expected %q to appear after the previous section, got position %d.", heading, pos)
		}

		last = pos
	}
}

func TestRenderMarkdown(t *testing.T) {
	output := render(t, KindMarkdown, testContext())

	assertContainsAll(t, output, []string{
		"# Release Notes - perfect-seller v2.1.0",
		"**Release Type:** Standard",
		"* **1 🐛 Bug Fixes**",
		"## ✨ New Features",
		"Bulk workflows got a lot faster.",
		"* **PR #102:** fix crash on empty cart",
		"  * Author: @bob",
		"  * Labels: feature, i18n",
		"[View PR](https://github.com/myorg/perfect-seller/pull/102)",
	})
}

func TestRenderCRQDay1(t *testing.T) {
	output := render(t, KindCRQDay1, testContext())

	assertContainsAll(t, output, []string{
		"**CHANGE REQUEST - DAY 1 (Preparation & Setup)**",
		"Glass (EUS, SCUS, WUS) - Day 1 Preparation",
		"**Version:** v2.0.0 → v2.1.0",
		"**Date:** 2025-03-13",
		"Faster bulk uploads for enterprise sellers.",
		"Low risk, only the cart service is touched.",
		"Verify checkout and locale pricing after deployment.",
		"Rollback if checkout error rates exceed 5%.",
		"**Decision Authority:** Sam",
		"**Total PRs:** 4",
	})

	if strings.Contains(output, "PULL REQUESTS INCLUDED") {
		t.Error("Expected the day 1 document to not list individual pull requests.")
	}
}

func TestRenderCRQDay2(t *testing.T) {
	output := render(t, KindCRQDay2, testContext())

	assertContainsAll(t, output, []string{
		"**CHANGE REQUEST - DAY 2 (Production Deployment)**",
		"Glass (EUS, SCUS, WUS) - Day 2 Production Release",
		"**Date:** 2025-03-14",
		"Deploy perfect-seller version v2.1.0",
		"Deploy previous version v2.0.0",
		"**PULL REQUESTS INCLUDED:**",
		"- PR #101: Add bulk upload (Alice Cooper (@alice))",
		"- PR #102: fix crash on empty cart (@bob)",
		"**Generated:** 2025-03-14 09:26:53 UTC",
	})
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, kind := range []Kind{KindConfluence, KindMarkdown, KindCRQDay1, KindCRQDay2} {
		first := render(t, kind, testContext())
		second := render(t, kind, testContext())

		if first != second {
			t.Errorf("Expected two %s renders of the same context to be identical.", kind)
		}
	}
}

func TestRenderCRQRequiresAnalysis(t *testing.T) {
	ctx := testContext()
	delete(ctx.Analysis, summarize.KeyBusinessImpact)

	renderer, err := New(KindCRQDay1)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	_, err = renderer.Render(ctx)
	if err == nil {
		t.Fatal("Expected rendering without a complete analysis to fail.")
	}

	renderErr := &Error{}
	if !errors.As(err, &renderErr) {
		t.Fatalf("Expected a *render.Error, got %T.", err)
	}

	if renderErr.Kind != KindCRQDay1 {
		t.Errorf("Expected error kind %q, got %q.", KindCRQDay1, renderErr.Kind)
	}

	if !strings.Contains(err.Error(), summarize.KeyBusinessImpact) {
		t.Errorf("Expected error to name the missing key, got %q.", err.Error())
	}
}

func TestRenderSkipsEmptySections(t *testing.T) {
	ctx := testContext()
	ctx.Buckets = classify.Buckets{
		classify.CategoryBugfix: ctx.Buckets[classify.CategoryBugfix],
	}
	ctx.Overlay = nil

	sections := ctx.Sections()
	if len(sections) != 1 {
		t.Fatalf("Expected 1 section, got %d.", len(sections))
	}

	if sections[0].Name != "Bug Fixes" {
		t.Errorf("Expected the remaining section to be Bug Fixes, got %q.", sections[0].Name)
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New(Kind("pdf")); err == nil {
		t.Fatal("Expected an error for an unknown document kind.")
	}
}
