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

package types

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

type Commit struct {
	SHA       string    `yaml:"sha"`
	Message   string    `yaml:"message"`
	Author    string    `yaml:"author,omitempty"`
	Committed time.Time `yaml:"committed,omitempty"`
}

type PullRequest struct {
	Number      int       `yaml:"number"`
	Title       string    `yaml:"title"`
	Body        string    `yaml:"body,omitempty"`
	Author      string    `yaml:"author,omitempty"`
	DisplayName string    `yaml:"displayName,omitempty"`
	Labels      []string  `yaml:"labels,omitempty"`
	MergedAt    time.Time `yaml:"mergedAt,omitempty"`
	MergeSHA    string    `yaml:"mergeCommit,omitempty"`
	URL         string    `yaml:"url,omitempty"`
}

// AuthorDisplay returns the name shown in rendered documents, preferring
// the profile name ("Jane Doe (@jdoe)") over the bare handle.
func (pr PullRequest) AuthorDisplay() string {
	if pr.DisplayName != "" {
		return pr.DisplayName
	}

	return fmt.Sprintf("@%s", pr.Author)
}

// LabelSet returns the labels as a set; display code keeps using the
// ordered Labels slice.
func (pr PullRequest) LabelSet() sets.Set[string] {
	return sets.New[string](pr.Labels...)
}

type Ref struct {
	Name string
	Hash string
}
