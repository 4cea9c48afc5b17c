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
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/classify"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/go-openapi/inflect"
)

// Kind selects one of the document flavors a release run produces.
type Kind string

const (
	KindConfluence Kind = "confluence"
	KindMarkdown   Kind = "markdown"
	KindCRQDay1    Kind = "crq-day1"
	KindCRQDay2    Kind = "crq-day2"
)

// Context is the complete data bundle a renderer consumes. It is built
// once per run and not mutated afterwards; rendering the same Context
// twice produces byte-identical output.
type Context struct {
	Release      types.Release
	Organization types.Organization
	Repository   string

	// PullRequests holds all fetched pull requests in merge order;
	// Buckets and Overlay partition and annotate the same list.
	PullRequests []types.PullRequest
	Buckets      classify.Buckets
	Overlay      []types.PullRequest

	// Optional enrichment. Missing summaries degrade the documents,
	// missing analysis fails the change request renderers.
	Highlights string
	Summaries  map[classify.Category]string
	Analysis   map[string]string

	GeneratedAt time.Time
}

func (c *Context) TotalPRs() int {
	return len(c.PullRequests)
}

func (c *Context) Timestamp() string {
	return c.GeneratedAt.UTC().Format("2006-01-02 15:04:05") + " UTC"
}

type section struct {
	Emoji   string
	Name    string
	Summary string
	PRs     []types.PullRequest
}

var sectionHeads = []struct {
	category classify.Category
	emoji    string
	name     string
}{
	{classify.CategorySchema, "🔗", "Schema Changes"},
	{classify.CategoryFeature, "✨", "New Features"},
	{classify.CategoryBugfix, "🐛", "Bug Fixes"},
	{classify.CategoryInfrastructure, "🔧", "Infrastructure Changes"},
	{classify.CategoryOther, "🔹", "Other Changes"},
}

// Sections returns the non-empty document sections in their fixed
// order, with the international overlay as the final section.
func (c *Context) Sections() []section {
	sections := []section{}

	for _, head := range sectionHeads {
		prs := c.Buckets[head.category]
		if len(prs) == 0 {
			continue
		}

		sections = append(sections, section{
			Emoji:   head.emoji,
			Name:    head.name,
			Summary: c.Summaries[head.category],
			PRs:     prs,
		})
	}

	if len(c.Overlay) > 0 {
		sections = append(sections, section{
			Emoji:   "🌍",
			Name:    "International Changes",
			Summary: c.Summaries[classify.CategoryInternational],
			PRs:     c.Overlay,
		})
	}

	return sections
}

// Renderer turns a Context into one document. Implementations are pure:
// no IO, no clock access, deterministic output.
type Renderer interface {
	Render(ctx *Context) (string, error)
}

func New(kind Kind) (Renderer, error) {
	switch kind {
	case KindConfluence:
		return &confluence{}, nil
	case KindMarkdown:
		return &markdown{}, nil
	case KindCRQDay1:
		return &crq{kind: kind}, nil
	case KindCRQDay2:
		return &crq{kind: kind}, nil
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
}

// Error indicates a template/context mismatch. It points at a bug in
// the calling code, never at user input.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to render %s document: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func execute(kind Kind, text string, data interface{}) (string, error) {
	t, err := template.New(string(kind)).Funcs(funcMap()).Parse(strings.TrimSpace(text))
	if err != nil {
		return "", &Error{Kind: kind, Err: err}
	}

	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", &Error{Kind: kind, Err: err}
	}

	return b.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"join":       strings.Join,
		"capitalize": inflect.Capitalize,
	}
}
