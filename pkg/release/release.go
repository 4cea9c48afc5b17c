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

// Package release wires the resolver, fetcher, classifier, summarizer and
// renderers into one run that turns a pair of version references into the
// documents a release coordinator hands around.
package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/classify"
	"github.com/ArnoldoM23/automated-release-rc/pkg/config"
	"github.com/ArnoldoM23/automated-release-rc/pkg/fetch"
	"github.com/ArnoldoM23/automated-release-rc/pkg/github"
	"github.com/ArnoldoM23/automated-release-rc/pkg/gitrepo"
	"github.com/ArnoldoM23/automated-release-rc/pkg/render"
	"github.com/ArnoldoM23/automated-release-rc/pkg/summarize"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"
	"github.com/ArnoldoM23/automated-release-rc/pkg/version"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Options selects what a single run works on, beyond what the settings
// file already provides.
type Options struct {
	// Release carries the coordinator-supplied parameters.
	Release types.Release

	// Repository overrides the configured "owner/name" slug.
	Repository string

	// LocalRepo points at a checked-out clone. When set, commit history
	// is walked locally instead of through the hosting API.
	LocalRepo string

	// OutputDir overrides the configured artifact directory.
	OutputDir string
}

// Result reports what a run produced.
type Result struct {
	// Files lists the written artifacts in generation order.
	Files []string

	// Total is the number of pull requests in the release.
	Total int

	// Counts holds the per-category pull request counts, omitting empty
	// categories.
	Counts map[classify.Category]int

	// Authors lists each contributing author once, in the order their
	// first pull request appears.
	Authors []string
}

// displayNamer resolves login handles to profile names.
type displayNamer interface {
	DisplayNames(ctx context.Context, logins []string) map[string]string
}

// localSource walks commit history in a local clone but still asks the
// hosting API for pull request metadata, which a clone does not carry.
type localSource struct {
	*gitrepo.Repository
	api *github.Client
}

func (s *localSource) PullRequests(ctx context.Context, numbers []int) ([]types.PullRequest, error) {
	return s.api.PullRequests(ctx, numbers)
}

type pipeline struct {
	resolver     *version.Resolver
	fetcher      *fetch.Fetcher
	classifier   *classify.Classifier
	summarizer   *summarize.Summarizer
	namer        displayNamer
	organization types.Organization
	repoURL      string
	output       config.OutputSettings
	outputDir    string
	log          logrus.FieldLogger
}

// Run performs one full release run: resolve both version references,
// fetch and classify the pull requests between them, summarize, render
// and write every enabled artifact.
func Run(ctx context.Context, log logrus.FieldLogger, settings *config.Settings, opts Options) (*Result, error) {
	repository := opts.Repository
	if repository == "" {
		repository = settings.GitHub.Repository
	}
	if repository == "" {
		return nil, fmt.Errorf("no repository configured, set github.repo or use --repo")
	}

	token := settings.GitHub.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("no GitHub token configured, set github.token or $GITHUB_TOKEN")
	}

	client, err := github.NewClient(ctx, log, token, repository, settings.GitHub.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	var (
		repo   version.Repository = client
		source fetch.Source       = client
	)

	if opts.LocalRepo != "" {
		clone, err := gitrepo.NewRepository(log, opts.LocalRepo)
		if err != nil {
			return nil, fmt.Errorf("failed to open local repository: %w", err)
		}

		repo = clone
		source = &localSource{Repository: clone, api: client}
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = settings.Output.Directory
	}

	provider := buildProvider(log, settings.LLM)

	pipe := &pipeline{
		resolver:     version.NewResolver(log, repo, repository),
		fetcher:      fetch.NewFetcher(log, source),
		classifier:   classify.NewClassifier(log, settings.Categories),
		summarizer:   summarize.NewSummarizer(log, provider, settings.LLM.Timeout()),
		namer:        client,
		organization: settings.Organization,
		repoURL:      client.RepositoryURL(),
		output:       settings.Output,
		outputDir:    outputDir,
		log:          log,
	}

	return pipe.run(ctx, opts.Release)
}

func (p *pipeline) run(ctx context.Context, release types.Release) (*Result, error) {
	prodCommit, err := p.resolver.Resolve(ctx, release.ProdVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve production version: %w", err)
	}

	newCommit, err := p.resolver.Resolve(ctx, release.NewVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve new version: %w", err)
	}

	prs, err := p.fetcher.Fetch(ctx, prodCommit, newCommit)
	if err != nil {
		return nil, err
	}

	if len(prs) == 0 {
		p.log.Warn("No pull requests found between the two versions, generating an empty release.")
	}

	p.resolveDisplayNames(ctx, prs)

	buckets, overlay := p.classifier.Classify(prs)

	summaries := map[classify.Category]string{}
	for _, category := range classify.PrimaryCategories {
		if len(buckets[category]) == 0 {
			continue
		}

		summaries[category] = p.summarizer.Section(ctx, category, buckets[category])
	}
	if len(overlay) > 0 {
		summaries[classify.CategoryInternational] = p.summarizer.Section(ctx, classify.CategoryInternational, overlay)
	}

	docContext := &render.Context{
		Release:      release,
		Organization: p.organization,
		Repository:   p.repoURL,
		PullRequests: prs,
		Buckets:      buckets,
		Overlay:      overlay,
		Highlights:   p.summarizer.Highlights(ctx, release, buckets),
		Summaries:    summaries,
		Analysis:     p.summarizer.Analysis(ctx, release, prs),
		GeneratedAt:  time.Now().UTC(),
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{
		Total:   len(prs),
		Counts:  countByCategory(buckets, overlay),
		Authors: uniqueAuthors(prs),
	}

	artifacts := []struct {
		filename string
		kind     render.Kind
		enabled  bool
	}{
		{"release_notes.txt", render.KindConfluence, p.output.ReleaseNotes},
		{"release_notes.md", render.KindMarkdown, p.output.ReleaseNotes},
		{"crq_day1.txt", render.KindCRQDay1, p.output.CRQs},
		{"crq_day2.txt", render.KindCRQDay2, p.output.CRQs},
	}

	for _, artifact := range artifacts {
		if !artifact.enabled {
			continue
		}

		renderer, err := render.New(artifact.kind)
		if err != nil {
			return nil, err
		}

		document, err := renderer.Render(docContext)
		if err != nil {
			return nil, err
		}

		path, err := p.writeFile(artifact.filename, []byte(document))
		if err != nil {
			return nil, err
		}

		result.Files = append(result.Files, path)
	}

	if p.output.Summary {
		path, err := p.writeSummary(release, prs, result, docContext.GeneratedAt)
		if err != nil {
			return nil, err
		}

		result.Files = append(result.Files, path)
	}

	p.log.WithField("directory", p.outputDir).Infof("Generated %d artifacts for %d pull requests.", len(result.Files), result.Total)

	return result, nil
}

// resolveDisplayNames asks the hosting API for profile names and fills
// them in on every pull request whose author has one.
func (p *pipeline) resolveDisplayNames(ctx context.Context, prs []types.PullRequest) {
	logins := sets.New[string]()
	for _, pr := range prs {
		if pr.Author != "" {
			logins.Insert(pr.Author)
		}
	}

	if logins.Len() == 0 {
		return
	}

	names := p.namer.DisplayNames(ctx, sets.List(logins))

	for i := range prs {
		prs[i].DisplayName = names[prs[i].Author]
	}
}

func (p *pipeline) writeFile(filename string, content []byte) (string, error) {
	path := filepath.Join(p.outputDir, filename)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}

	p.log.WithField("file", path).Info("Wrote artifact.")

	return path, nil
}

func countByCategory(buckets classify.Buckets, overlay []types.PullRequest) map[classify.Category]int {
	counts := map[classify.Category]int{}
	for _, category := range classify.PrimaryCategories {
		if len(buckets[category]) > 0 {
			counts[category] = len(buckets[category])
		}
	}

	if len(overlay) > 0 {
		counts[classify.CategoryInternational] = len(overlay)
	}

	return counts
}

func uniqueAuthors(prs []types.PullRequest) []string {
	seen := sets.New[string]()
	authors := []string{}

	for _, pr := range prs {
		if pr.Author == "" || seen.Has(pr.Author) {
			continue
		}

		seen.Insert(pr.Author)
		authors = append(authors, pr.AuthorDisplay())
	}

	return authors
}
