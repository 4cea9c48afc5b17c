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
	"fmt"
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"
)

// The change request documents are stitched together from five keyed
// paragraphs. The key names double as the response format the provider
// is asked to follow.
const (
	KeyRiskAssessment    = "RISK_ASSESSMENT"
	KeyTechnicalSummary  = "TECHNICAL_SUMMARY"
	KeyValidationSteps   = "VALIDATION_STEPS"
	KeyRollbackScenarios = "ROLLBACK_SCENARIOS"
	KeyBusinessImpact    = "BUSINESS_IMPACT"
)

var analysisKeys = []string{
	KeyRiskAssessment,
	KeyTechnicalSummary,
	KeyValidationSteps,
	KeyRollbackScenarios,
	KeyBusinessImpact,
}

// Analysis returns the five keyed paragraphs for the change request
// documents. Keys missing from the provider's answer are filled with
// deterministic fallback text, so the result always contains all five.
func (s *Summarizer) Analysis(ctx context.Context, release types.Release, prs []types.PullRequest) map[string]string {
	fallback := fallbackAnalysis(release, len(prs))

	response := s.generate(ctx, bucketHash("analysis", prs), analysisPrompt(release, prs), func() string {
		return ""
	})
	if response == "" {
		return fallback
	}

	analysis := parseAnalysis(response)
	for _, key := range analysisKeys {
		if analysis[key] == "" {
			analysis[key] = fallback[key]
		}
	}

	return analysis
}

// parseAnalysis splits a keyed response of the form "KEY: text" into a
// map. Text may continue on following lines until the next key starts;
// lines before the first key are ignored.
func parseAnalysis(response string) map[string]string {
	analysis := map[string]string{}

	current := ""
	content := []string{}

	flush := func() {
		if current != "" {
			analysis[current] = strings.TrimSpace(strings.Join(content, "\n"))
		}
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		key := ""
		for _, candidate := range analysisKeys {
			if strings.HasPrefix(line, candidate+":") {
				key = candidate
				break
			}
		}

		switch {
		case key != "":
			flush()
			current = key
			content = []string{strings.TrimSpace(strings.TrimPrefix(line, key+":"))}
		case current != "" && line != "":
			content = append(content, line)
		}
	}

	flush()

	return analysis
}

func fallbackAnalysis(release types.Release, total int) map[string]string {
	return map[string]string{
		KeyRiskAssessment:    "Medium risk - Standard release with multiple code changes. Requires careful validation.",
		KeyTechnicalSummary:  fmt.Sprintf("Deployment of %s %s including %d pull requests with various improvements and fixes.", release.Service, release.NewVersion, total),
		KeyValidationSteps:   "Verify application startup, check key functionality, monitor logs and metrics for 30 minutes post-deployment.",
		KeyRollbackScenarios: "Rollback if: application fails to start, critical functionality broken, error rates >5%, or performance degradation >20%.",
		KeyBusinessImpact:    "Improved functionality and bug fixes for end users. Enhanced system reliability and performance.",
	}
}

func analysisPrompt(release types.Release, prs []types.PullRequest) string {
	return fmt.Sprintf(`You are a technical release manager creating a Change Request (CRQ) for a production deployment.

SERVICE: %s
VERSION: %s → %s
RELEASE TYPE: %s

PULL REQUESTS INCLUDED:
%s

Please analyze these changes and provide the following:

1. RISK_ASSESSMENT: What are the potential risks of this deployment? Consider code changes, dependencies, and impact.

2. TECHNICAL_SUMMARY: Summarize the technical changes in 2-3 sentences for stakeholders.

3. VALIDATION_STEPS: What specific validation steps should be performed to ensure the deployment is successful?

4. ROLLBACK_SCENARIOS: Under what circumstances should we rollback? What are the specific triggers?

5. BUSINESS_IMPACT: What is the business impact of these changes? Any user-facing improvements or fixes?

Format your response as:
RISK_ASSESSMENT: [your analysis]
TECHNICAL_SUMMARY: [your summary]
VALIDATION_STEPS: [your steps]
ROLLBACK_SCENARIOS: [your scenarios]
BUSINESS_IMPACT: [your impact analysis]`, release.Service, release.ProdVersion, release.NewVersion, release.ReleaseType, formatPullRequests(prs))
}
