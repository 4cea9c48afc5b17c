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

package main

import (
	"github.com/ArnoldoM23/automated-release-rc/pkg/action"

	"github.com/urfave/cli"
)

func getCommands(action *action.Action) []cli.Command {
	return []cli.Command{
		{
			Name:        "generate",
			Usage:       "Generate release notes and CRQ documents for a release.",
			Description: "Resolve the two version references, collect the pull requests merged between them and write the release documents into the output directory.",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "repo, r",
					Usage: "GitHub repository as owner/name, overrides the configured one",
				},
				cli.StringFlag{
					Name:  "service, s",
					Usage: "Name of the service being released",
				},
				cli.StringFlag{
					Name:  "prod-version",
					Usage: "Version currently in production, a semver tag or commit hash",
				},
				cli.StringFlag{
					Name:  "new-version",
					Usage: "Version being released, a semver tag or commit hash",
				},
				cli.StringFlag{
					Name:  "release-type",
					Usage: "Type of release (standard, hotfix, ebf)",
					Value: "standard",
				},
				cli.StringFlag{
					Name:  "rc-name",
					Usage: "Name of the release coordinator",
				},
				cli.StringFlag{
					Name:  "rc-manager",
					Usage: "Name of the release coordinator's manager",
				},
				cli.StringFlag{
					Name:  "day1-date",
					Usage: "Day 1 deployment date as YYYY-MM-DD",
				},
				cli.StringFlag{
					Name:  "day2-date",
					Usage: "Day 2 deployment date as YYYY-MM-DD",
				},
				cli.StringFlag{
					Name:  "cutoff-time",
					Usage: "Sign-off deadline as a UTC ISO timestamp, defaults to 24 hours from now",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "Directory for the generated documents, overrides the configured one",
				},
				cli.StringFlag{
					Name:  "local-repo",
					Usage: "Path to a local clone, commit history is then walked locally instead of through the API",
				},
				cli.BoolFlag{
					Name:  "dry-run-slack",
					Usage: "Log the sign-off request instead of posting it",
				},
			},
			Action: func(c *cli.Context) error {
				return action.GenerateRelease(c)
			},
		},
		{
			Name:        "notify",
			Usage:       "Send a sign-off message for a generated release.",
			Description: "Read the summary of a previous generate run and post the sign-off request, a reminder or the final cutoff message to Slack.",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output, o",
					Usage: "Directory containing the summary of a previous generate run",
				},
				cli.StringFlag{
					Name:  "channel",
					Usage: "Slack channel, overrides the configured one",
				},
				cli.IntFlag{
					Name:  "reminder",
					Usage: "Send a reminder instead, with the given number of hours remaining",
				},
				cli.BoolFlag{
					Name:  "final",
					Usage: "Send the cutoff message instead",
				},
				cli.BoolFlag{
					Name:  "dry-run",
					Usage: "Log the message instead of posting it",
				},
			},
			Action: func(c *cli.Context) error {
				return action.NotifySignoff(c)
			},
		},
	}
}

func getGlobalFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "Path to the settings file, defaults to settings.local.yaml or settings.yaml",
			EnvVar: "RC_SETTINGS_FILE",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}
