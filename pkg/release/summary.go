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

package release

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/classify"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"
)

// SummaryFilename is the machine-readable run record written next to the
// rendered documents. The notify command reads it back to know who still
// has to sign off.
const SummaryFilename = "pr_summary.json"

// Summary records the outcome of a run in a form other tooling can
// consume without re-fetching anything.
type Summary struct {
	types.Release

	// PullRequests lists every pull request in the release, in the
	// order they were merged.
	PullRequests []SummaryPullRequest `json:"prs"`

	// TotalPRs duplicates len(PullRequests) for consumers that only
	// want the headline number.
	TotalPRs int `json:"total_prs"`

	// Counts holds the per-category totals, omitting empty categories.
	Counts map[classify.Category]int `json:"counts,omitempty"`

	// Authors lists each contributor once, first merge first.
	Authors []string `json:"authors,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// SummaryPullRequest is the trimmed-down pull request record carried in
// the summary file.
type SummaryPullRequest struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Labels []string `json:"labels,omitempty"`
	URL    string   `json:"url"`
}

func (p *pipeline) writeSummary(release types.Release, prs []types.PullRequest, result *Result, generatedAt time.Time) (string, error) {
	summary := Summary{
		Release:     release,
		TotalPRs:    len(prs),
		Counts:      result.Counts,
		Authors:     result.Authors,
		GeneratedAt: generatedAt,
	}

	for _, pr := range prs {
		summary.PullRequests = append(summary.PullRequests, SummaryPullRequest{
			Number: pr.Number,
			Title:  pr.Title,
			Author: pr.Author,
			Labels: pr.Labels,
			URL:    pr.URL,
		})
	}

	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}

	return p.writeFile(SummaryFilename, append(encoded, '\n'))
}

// LoadSummary reads a summary file written by a previous run.
func LoadSummary(path string) (*Summary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}

	summary := &Summary{}
	if err := json.Unmarshal(content, summary); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return summary, nil
}
