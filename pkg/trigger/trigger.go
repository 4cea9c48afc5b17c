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

// Package trigger implements the agent CLI flow: collect the parameters
// of a release, record them to rc_config.json and start the hosted
// release workflow via a repository_dispatch event.
package trigger

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/config"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/sirupsen/logrus"
)

// ConfigFilename is the parameter record written into the output
// directory, mainly so a coordinator can re-run or audit a release.
const ConfigFilename = "rc_config.json"

// tagSuggestions caps how many recent tags are offered during the
// version prompts.
const tagSuggestions = 5

// Dispatcher starts the hosted release workflow.
type Dispatcher interface {
	DispatchRelease(ctx context.Context, release types.Release, slackChannel string, slackUser string) error
}

// TagSuggester lists recent tags, newest first, to help the coordinator
// answer the version prompts.
type TagSuggester interface {
	LatestTags(ctx context.Context, n int) ([]types.Ref, error)
}

// NameResolver turns login handles into display names.
type NameResolver interface {
	DisplayNames(ctx context.Context, logins []string) map[string]string
}

// Agent drives one trigger run. Tags, Names and Dispatcher are optional;
// without a Dispatcher the run must be started with --skip-dispatch.
// In and Out default to the process streams.
type Agent struct {
	Options  types.AgentOptions
	Settings *config.Settings

	Tags       TagSuggester
	Names      NameResolver
	Dispatcher Dispatcher

	In  io.Reader
	Out io.Writer

	Log logrus.FieldLogger

	reader *bufio.Reader
}

// Run collects the release parameters, writes rc_config.json and fires
// the dispatch event unless it is skipped.
func (a *Agent) Run(ctx context.Context) error {
	if a.In == nil {
		a.In = os.Stdin
	}
	if a.Out == nil {
		a.Out = os.Stdout
	}
	a.reader = bufio.NewReader(a.In)

	release := a.Options.Release

	if !a.Options.NonInteractive {
		collected, err := a.collect(ctx, release)
		if err != nil {
			return err
		}

		release = collected
	}

	if err := release.Validate(); err != nil {
		return err
	}

	path, err := a.writeConfig(release)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Saved release parameters to %s.\n", path)

	if a.Options.SkipDispatch {
		a.Log.Info("Dispatch is skipped, the release workflow will not run.")
		return nil
	}

	if a.Dispatcher == nil {
		return errors.New("no repository to dispatch to, use --repo or --skip-dispatch")
	}

	if err := a.Dispatcher.DispatchRelease(ctx, release, a.slackChannel(), release.RCManager); err != nil {
		return err
	}

	fmt.Fprintln(a.Out, "Triggered the release workflow.")

	return nil
}

// collect walks the coordinator through the same questions the original
// runbook asks, pre-filling whatever already arrived via flags.
func (a *Agent) collect(ctx context.Context, defaults types.Release) (types.Release, error) {
	fmt.Fprintln(a.Out, "Welcome to the RC Release Agent, let's gather the details for this release.")
	fmt.Fprintln(a.Out)

	release := types.Release{}

	var err error

	if release.RCName, err = a.prompt("Who is the RC?", a.defaultRCName(ctx, defaults.RCName), required("RC name")); err != nil {
		return release, err
	}

	if release.RCManager, err = a.prompt("Who is the RC manager?", defaults.RCManager, nil); err != nil {
		return release, err
	}

	a.suggestTags(ctx)

	if release.ProdVersion, err = a.prompt("Production version (e.g. v2.3.1 or a commit hash)", defaults.ProdVersion, versionRef); err != nil {
		return release, err
	}

	if release.NewVersion, err = a.prompt("New version (e.g. v2.4.0 or a commit hash)", defaults.NewVersion, versionRef); err != nil {
		return release, err
	}

	if release.Service, err = a.prompt("Service name (e.g. ce-cart)", a.defaultService(defaults.Service), required("service name")); err != nil {
		return release, err
	}

	if release.ReleaseType, err = a.prompt("Release type (standard, hotfix, ebf)", defaults.ReleaseType, releaseType); err != nil {
		return release, err
	}

	if release.Day1Date, err = a.prompt("Day 1 date (YYYY-MM-DD)", defaults.Day1Date, date); err != nil {
		return release, err
	}

	if release.Day2Date, err = a.prompt("Day 2 date (YYYY-MM-DD)", defaults.Day2Date, date); err != nil {
		return release, err
	}

	if release.CutoffTime, err = a.prompt("Sign-off cutoff time (UTC ISO format, e.g. 2025-05-29T23:00:00Z)", defaults.CutoffTime, cutoff); err != nil {
		return release, err
	}

	outputDir, err := a.prompt("Output folder", a.Options.OutputDir, required("output folder"))
	if err != nil {
		return release, err
	}
	a.Options.OutputDir = outputDir

	return release, nil
}

// defaultRCName suggests the local user, upgraded to their profile name
// when the hosting API knows it.
func (a *Agent) defaultRCName(ctx context.Context, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	login := os.Getenv("USER")
	if login == "" {
		return ""
	}

	if a.Names != nil {
		if name := a.Names.DisplayNames(ctx, []string{login})[login]; name != "" {
			return name
		}
	}

	return login
}

// defaultService derives a suggestion from the repository name, the way
// service repositories are usually named after their service.
func (a *Agent) defaultService(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	repository := a.Options.Repository
	if repository == "" && a.Settings != nil {
		repository = a.Settings.GitHub.Repository
	}

	if _, name, found := strings.Cut(repository, "/"); found {
		return name
	}

	return ""
}

func (a *Agent) suggestTags(ctx context.Context) {
	if a.Tags == nil {
		return
	}

	tags, err := a.Tags.LatestTags(ctx, tagSuggestions)
	if err != nil {
		a.Log.Warnf("Could not list recent tags: %v", err)
		return
	}

	if len(tags) == 0 {
		return
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	fmt.Fprintf(a.Out, "Recent tags: %s\n", strings.Join(names, ", "))
}

// prompt asks one question, offering the default in brackets, and
// repeats it until the answer validates.
func (a *Agent) prompt(question string, defaultValue string, validate func(string) error) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(a.Out, "%s [%s]: ", question, defaultValue)
		} else {
			fmt.Fprintf(a.Out, "%s: ", question)
		}

		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", fmt.Errorf("input ended before %q was answered", question)
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = defaultValue
		}

		if validate != nil {
			if err := validate(answer); err != nil {
				fmt.Fprintf(a.Out, "  %v\n", err)
				continue
			}
		}

		return answer, nil
	}
}

func required(what string) func(string) error {
	return func(answer string) error {
		if answer == "" {
			return fmt.Errorf("a %s is required", what)
		}

		return nil
	}
}

func versionRef(answer string) error {
	if !types.IsVersionRef(answer) {
		return fmt.Errorf("%q is neither a semver tag nor a commit hash", answer)
	}

	return nil
}

func releaseType(answer string) error {
	switch answer {
	case "standard", "hotfix", "ebf":
		return nil
	}

	return fmt.Errorf("%q is not one of standard, hotfix, ebf", answer)
}

func date(answer string) error {
	if _, err := time.Parse("2006-01-02", answer); err != nil {
		return fmt.Errorf("%q is not a valid YYYY-MM-DD date", answer)
	}

	return nil
}

func cutoff(answer string) error {
	if _, err := time.Parse(time.RFC3339, answer); err != nil {
		return fmt.Errorf("%q is not a UTC ISO timestamp like 2025-05-29T23:00:00Z", answer)
	}

	return nil
}

// configFile is rc_config.json: the release parameters plus where the
// artifacts of this release are collected.
type configFile struct {
	types.Release

	OutputFolder string `json:"output_folder"`
}

func (a *Agent) writeConfig(release types.Release) (string, error) {
	if err := os.MkdirAll(a.Options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	encoded, err := json.MarshalIndent(configFile{
		Release:      release,
		OutputFolder: a.Options.OutputDir,
	}, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode release parameters: %w", err)
	}

	path := filepath.Join(a.Options.OutputDir, ConfigFilename)
	if err := os.WriteFile(path, append(encoded, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

func (a *Agent) slackChannel() string {
	if a.Settings == nil {
		return ""
	}

	return a.Settings.Slack.Channel
}
