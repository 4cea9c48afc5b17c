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

package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/classify"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/go-openapi/inflect"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single text generation call. A slow backend
// degrades the output to the deterministic fallback, it never stalls
// the release run.
const DefaultTimeout = 10 * time.Second

// Summarizer enriches release documents with generated prose. It never
// fails: when no provider is configured, the provider errors out or the
// timeout fires, a deterministic fallback text is substituted.
type Summarizer struct {
	provider Provider
	timeout  time.Duration
	log      logrus.FieldLogger

	// cache avoids repeated calls for unchanged buckets within a run,
	// keyed by a content hash of the bucket's PR numbers.
	cache map[string]string
}

// NewSummarizer wraps the given provider. A nil provider is allowed and
// means every summary uses the fallback path. A non-positive timeout
// selects DefaultTimeout.
func NewSummarizer(log logrus.FieldLogger, provider Provider, timeout time.Duration) *Summarizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Summarizer{
		provider: provider,
		timeout:  timeout,
		log:      log,
		cache:    map[string]string{},
	}
}

// Section returns a short prose summary for one category bucket. Empty
// buckets produce an empty string.
func (s *Summarizer) Section(ctx context.Context, category classify.Category, prs []types.PullRequest) string {
	if len(prs) == 0 {
		return ""
	}

	return s.generate(ctx, bucketHash(string(category), prs), sectionPrompt(category, prs), func() string {
		return fallbackSection(category, prs)
	})
}

// Highlights returns the overall summary paragraph for the whole release.
func (s *Summarizer) Highlights(ctx context.Context, release types.Release, buckets classify.Buckets) string {
	prs := flatten(buckets)

	return s.generate(ctx, bucketHash("highlights", prs), highlightsPrompt(release, prs), func() string {
		return fallbackHighlights(buckets)
	})
}

func (s *Summarizer) generate(ctx context.Context, cacheKey string, prompt string, fallback func() string) string {
	if text, ok := s.cache[cacheKey]; ok {
		return text
	}

	if s.provider == nil {
		return fallback()
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.Generate(genCtx, prompt)
	if err != nil {
		s.log.WithField("provider", s.provider.Name()).Warnf("Text generation failed, using fallback text: %v", err)
		return fallback()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallback()
	}

	s.cache[cacheKey] = text

	return text
}

func bucketHash(kind string, prs []types.PullRequest) string {
	h := sha256.New()
	fmt.Fprint(h, kind)

	for _, pr := range prs {
		fmt.Fprintf(h, "\x00%d", pr.Number)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func flatten(buckets classify.Buckets) []types.PullRequest {
	prs := []types.PullRequest{}
	for _, category := range classify.PrimaryCategories {
		prs = append(prs, buckets[category]...)
	}

	return prs
}

// maxPromptPRs limits how many pull requests are spelled out in a
// prompt, to stay well below token limits.
const maxPromptPRs = 10

func formatPullRequests(prs []types.PullRequest) string {
	if len(prs) == 0 {
		return "No pull requests found in this release."
	}

	lines := []string{}
	for i, pr := range prs {
		if i == maxPromptPRs {
			lines = append(lines, fmt.Sprintf("... and %d more pull requests", len(prs)-maxPromptPRs))
			break
		}

		labels := "None"
		if len(pr.Labels) > 0 {
			labels = strings.Join(pr.Labels, ", ")
		}

		lines = append(lines, fmt.Sprintf("- PR #%d: %s (Author: %s, Labels: %s)", pr.Number, pr.Title, pr.AuthorDisplay(), labels))
	}

	return strings.Join(lines, "\n")
}

func sectionPrompt(category classify.Category, prs []types.PullRequest) string {
	return fmt.Sprintf(`Summarize the following %s changes for release notes.

Changes in this section:
%s

Please provide a concise, professional summary (1-2 sentences) highlighting the most important changes. Do not enumerate every pull request.

Summary:`, category, formatPullRequests(prs))
}

func highlightsPrompt(release types.Release, prs []types.PullRequest) string {
	return fmt.Sprintf(`Create a professional release summary for the following software deployment:

Service: %s
Version: %s → %s
Release Type: %s

Changes in this release:
%s

Please provide a concise, professional summary (3-4 sentences) highlighting:
- Key features and improvements
- Bug fixes (if any)
- Overall impact and benefits

Summary:`, release.Service, release.ProdVersion, release.NewVersion, release.ReleaseType, formatPullRequests(prs))
}

// maxFallbackTitles limits how many PR titles the fallback section text
// spells out.
const maxFallbackTitles = 3

func sectionNoun(category classify.Category) string {
	switch category {
	case classify.CategorySchema:
		return "schema change"
	case classify.CategoryFeature:
		return "new feature"
	case classify.CategoryBugfix:
		return "bug fix"
	case classify.CategoryInfrastructure:
		return "infrastructure change"
	case classify.CategoryInternational:
		return "international change"
	default:
		return "change"
	}
}

func countNoun(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}

	return fmt.Sprintf("%d %s", count, inflect.Pluralize(noun))
}

func fallbackSection(category classify.Category, prs []types.PullRequest) string {
	text := fmt.Sprintf("This section covers %s", countNoun(len(prs), sectionNoun(category)))

	titles := []string{}
	for i, pr := range prs {
		if i == maxFallbackTitles {
			break
		}

		titles = append(titles, pr.Title)
	}

	if len(titles) > 0 {
		text += ": " + strings.Join(titles, "; ")
	}

	if len(prs) > maxFallbackTitles {
		text += fmt.Sprintf("; and %d more", len(prs)-maxFallbackTitles)
	}

	return text + "."
}

func fallbackHighlights(buckets classify.Buckets) string {
	parts := []string{}

	for _, part := range []struct {
		category classify.Category
		noun     string
	}{
		{classify.CategoryFeature, "new feature"},
		{classify.CategoryBugfix, "bug fix"},
		{classify.CategorySchema, "schema change"},
	} {
		if count := len(buckets[part.category]); count > 0 {
			parts = append(parts, countNoun(count, part.noun))
		}
	}

	if len(parts) == 0 {
		return fmt.Sprintf("This release includes %s to improve system functionality.", countNoun(buckets.Total(), "change"))
	}

	text := "This release includes "
	if len(parts) > 1 {
		text += strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	} else {
		text += parts[0]
	}

	return text + " to improve system functionality and user experience."
}
