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
	"errors"
	"path/filepath"

	"github.com/ArnoldoM23/automated-release-rc/pkg/config"
	"github.com/ArnoldoM23/automated-release-rc/pkg/release"
	"github.com/ArnoldoM23/automated-release-rc/pkg/slack"

	"github.com/urfave/cli"
)

// NotifySignoff posts a sign-off message for an already generated
// release, read back from the summary file in the output directory.
// Without a mode flag it sends the initial request; --reminder and
// --final send the follow-ups, addressed at everyone in the release
// since sign-off state is not tracked here.
func (a *Action) NotifySignoff(c *cli.Context) error {
	settings, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return err
	}

	a.configureLogger(settings, c.GlobalBool("verbose"))

	outputDir := c.String("output")
	if outputDir == "" {
		outputDir = settings.Output.Directory
	}

	summary, err := release.LoadSummary(filepath.Join(outputDir, release.SummaryFilename))
	if err != nil {
		return err
	}

	channel := settings.Slack.Channel
	if override := c.String("channel"); override != "" {
		channel = override
	}

	notifier, err := slack.NewNotifier(a.log, settings.Slack.Token, channel, settings.Slack.DryRun || c.Bool("dry-run"))
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch {
	case c.Bool("final") && c.IsSet("reminder"):
		return errors.New("--reminder and --final are mutually exclusive")
	case c.Bool("final"):
		return notifier.PostFinal(ctx, summary.Release, summary.Authors)
	case c.IsSet("reminder"):
		return notifier.PostReminder(ctx, summary.Release, summary.Authors, c.Int("reminder"))
	default:
		return notifier.PostSignoffRequest(ctx, summary.Release, summary.Authors)
	}
}
