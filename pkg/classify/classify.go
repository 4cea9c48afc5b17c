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
	"regexp"
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

// signals are the precomputed, lowercased matching inputs for one PR.
// Missing titles, bodies or labels simply become empty values, so malformed
// records classify as "other" instead of failing the run.
type signals struct {
	labels   []string
	labelSet sets.Set[string]
	title    string
	body     string
}

func newSignals(pr types.PullRequest) signals {
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, strings.ToLower(label))
	}

	return signals{
		labels:   labels,
		labelSet: sets.New[string](labels...),
		title:    strings.ToLower(pr.Title),
		body:     strings.ToLower(pr.Body),
	}
}

type predicate func(s signals) bool

type rule struct {
	category Category
	matches  predicate
}

type Classifier struct {
	rules         []rule
	international predicate
	log           logrus.FieldLogger
}

func NewClassifier(log logrus.FieldLogger, keywords Keywords) *Classifier {
	return &Classifier{
		rules: []rule{
			{CategorySchema, keywordPredicate(keywords.Schema, true)},
			{CategoryFeature, keywordPredicate(keywords.Feature, false)},
			{CategoryBugfix, keywordPredicate(keywords.Bugfix, false)},
			{CategoryInfrastructure, keywordPredicate(keywords.Infrastructure, false)},
		},
		international: keywordPredicate(keywords.International, false),
		log:           log,
	}
}

// keywordPredicate matches a PR against one keyword list: exact label
// match, then label substring, then title/body. Schema keywords use word
// boundaries in title/body so that e.g. "graphql" does not fire inside
// longer words; other categories use plain substrings.
func keywordPredicate(keywords []string, wholeWords bool) predicate {
	lowered := []string{}
	patterns := []*regexp.Regexp{}

	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}

		lowered = append(lowered, keyword)

		if wholeWords {
			patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(keyword)+`\b`))
		}
	}

	return func(s signals) bool {
		for i, keyword := range lowered {
			if s.labelSet.Has(keyword) {
				return true
			}

			for _, label := range s.labels {
				if strings.Contains(label, keyword) {
					return true
				}
			}

			if wholeWords {
				if patterns[i].MatchString(s.title) || patterns[i].MatchString(s.body) {
					return true
				}
			} else if strings.Contains(s.title, keyword) || strings.Contains(s.body, keyword) {
				return true
			}
		}

		return false
	}
}

// Classify partitions the PRs into exclusive primary buckets (first
// matching rule wins, fallback "other") and independently computes the
// international overlay. Fetch order is preserved in every bucket and in
// the overlay; the input slice is never reordered.
func (c *Classifier) Classify(prs []types.PullRequest) (Buckets, []types.PullRequest) {
	buckets := Buckets{}
	for _, category := range PrimaryCategories {
		buckets[category] = []types.PullRequest{}
	}

	overlay := []types.PullRequest{}

	for _, pr := range prs {
		s := newSignals(pr)

		category := CategoryOther
		for _, rule := range c.rules {
			if rule.matches(s) {
				category = rule.category
				break
			}
		}

		buckets[category] = append(buckets[category], pr)
		c.log.WithField("pr", pr.Number).WithField("category", category).Debug("Classified pull request.")

		if c.international(s) {
			overlay = append(overlay, pr)
			c.log.WithField("pr", pr.Number).Debug("Pull request added to international overlay.")
		}
	}

	return buckets, overlay
}
