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

package action

import (
	"context"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/config"
	"github.com/ArnoldoM23/automated-release-rc/pkg/release"
	"github.com/ArnoldoM23/automated-release-rc/pkg/slack"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/urfave/cli"
)

// defaultCutoffWindow is used when no explicit sign-off deadline is
// given: authors get one day from generation.
const defaultCutoffWindow = 24 * time.Hour

// GenerateRelease runs the full pipeline for one release and writes the
// documents into the output directory. When Slack is configured, the
// initial sign-off request goes out afterwards; a failure there is
// logged but does not fail the run, the notify command can retry it.
func (a *Action) GenerateRelease(c *cli.Context) error {
	settings, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return err
	}

	a.configureLogger(settings, c.GlobalBool("verbose"))

	opts := release.Options{
		Release: types.Release{
			Service:     c.String("service"),
			ProdVersion: c.String("prod-version"),
			NewVersion:  c.String("new-version"),
			ReleaseType: c.String("release-type"),
			RCName:      c.String("rc-name"),
			RCManager:   c.String("rc-manager"),
			Day1Date:    c.String("day1-date"),
			Day2Date:    c.String("day2-date"),
			CutoffTime:  c.String("cutoff-time"),
		},
		Repository: c.String("repo"),
		LocalRepo:  c.String("local-repo"),
		OutputDir:  c.String("output"),
	}

	if err := opts.Release.Validate(); err != nil {
		return err
	}

	if opts.Release.CutoffTime == "" {
		opts.Release.CutoffTime = time.Now().UTC().Add(defaultCutoffWindow).Format(time.RFC3339)
	}

	if c.Bool("dry-run-slack") {
		settings.Slack.DryRun = true
	}

	ctx := context.Background()

	result, err := release.Run(ctx, a.log, settings, opts)
	if err != nil {
		return err
	}

	a.sendSignoffRequest(ctx, settings, opts.Release, result.Authors)

	return nil
}

func (a *Action) sendSignoffRequest(ctx context.Context, settings *config.Settings, release types.Release, authors []string) {
	if settings.Slack.Channel == "" || (settings.Slack.Token == "" && !settings.Slack.DryRun) {
		a.log.Debug("Slack is not configured, skipping the sign-off request.")
		return
	}

	notifier, err := slack.NewNotifier(a.log, settings.Slack.Token, settings.Slack.Channel, settings.Slack.DryRun)
	if err != nil {
		a.log.Warnf("Cannot send the sign-off request: %v", err)
		return
	}

	if err := notifier.PostSignoffRequest(ctx, release, authors); err != nil {
		a.log.Warnf("Failed to send the sign-off request: %v", err)
	}
}
