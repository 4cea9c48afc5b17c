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
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/go-openapi/inflect"
)

type Category string

const (
	CategorySchema         Category = "schema"
	CategoryFeature        Category = "feature"
	CategoryBugfix         Category = "bugfix"
	CategoryInfrastructure Category = "infrastructure"
	CategoryInternational  Category = "international"
	CategoryOther          Category = "other"
)

// PrimaryCategories is the fixed precedence order for primary bucket
// assignment. Reordering it changes classification output and is a breaking
// change to the contract. CategoryInternational is intentionally absent: it
// is produced only by the overlay.
var PrimaryCategories = []Category{
	CategorySchema,
	CategoryFeature,
	CategoryBugfix,
	CategoryInfrastructure,
	CategoryOther,
}

func (c Category) Title() string {
	title := strings.ReplaceAll(string(c), "-", " ")

	return inflect.Titleize(title)
}

// Buckets is the exclusive primary partition of a PR list.
type Buckets map[Category][]types.PullRequest

func (b Buckets) Total() int {
	total := 0
	for _, prs := range b {
		total += len(prs)
	}

	return total
}

// Keywords are the category-indicator lists consumed by the classifier.
// All matching is case-insensitive.
type Keywords struct {
	Schema         []string `yaml:"schema,omitempty"`
	Feature        []string `yaml:"feature,omitempty"`
	Bugfix         []string `yaml:"bugfix,omitempty"`
	Infrastructure []string `yaml:"infrastructure,omitempty"`
	International  []string `yaml:"international,omitempty"`
}

func DefaultKeywords() Keywords {
	return Keywords{
		Schema:         []string{"schema", "graphql", "graphql schema", "schema change"},
		Feature:        []string{"feature", "enhancement", "new feature", "feat"},
		Bugfix:         []string{"bug", "fix", "bugfix", "hotfix", "patch"},
		Infrastructure: []string{"infrastructure", "ci", "cd", "deploy", "devops", "infra"},
		International:  []string{"international", "i18n", "localization", "locale", "tenant", "multi-tenant", "internationalization"},
	}
}
