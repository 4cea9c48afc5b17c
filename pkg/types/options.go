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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// AgentOptions configures the rc-agent trigger CLI. The release parameters
// are normally collected interactively; in non-interactive mode they must
// all be given as flags.
type AgentOptions struct {
	ConfigFile     string
	OutputDir      string
	Repository     string
	GithubToken    string
	NonInteractive bool
	SkipDispatch   bool
	Verbose        bool

	Release Release
}

func (o *AgentOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigFile, "config", "c", "", "Path to the settings file (default: settings.local.yaml, settings.yaml)")
	fs.StringVarP(&o.OutputDir, "output", "o", "release-output", "Directory for rc_config.json and generated artifacts")
	fs.StringVarP(&o.Repository, "repo", "r", "", "GitHub repository in owner/name form")
	fs.BoolVarP(&o.NonInteractive, "non-interactive", "n", false, "Read all release parameters from flags instead of prompting")
	fs.BoolVar(&o.SkipDispatch, "skip-dispatch", false, "Write rc_config.json but do not trigger the GitHub workflow")
	fs.BoolVarP(&o.Verbose, "verbose", "V", false, "Enable more verbose logging")

	fs.StringVar(&o.Release.Service, "service", "", "Name of the service being released")
	fs.StringVar(&o.Release.ProdVersion, "prod-version", "", "Version currently in production (tag or commit)")
	fs.StringVar(&o.Release.NewVersion, "new-version", "", "Version being released (tag or commit)")
	fs.StringVar(&o.Release.ReleaseType, "release-type", "standard", "Release type (standard, hotfix, ebf)")
	fs.StringVar(&o.Release.RCName, "rc-name", "", "Release coordinator name")
	fs.StringVar(&o.Release.RCManager, "rc-manager", "", "Release manager name")
	fs.StringVar(&o.Release.Day1Date, "day1-date", "", "Day 1 (preparation) date, YYYY-MM-DD")
	fs.StringVar(&o.Release.Day2Date, "day2-date", "", "Day 2 (deployment) date, YYYY-MM-DD")
	fs.StringVar(&o.Release.CutoffTime, "cutoff-time", "", "Sign-off deadline, UTC ISO timestamp like 2025-05-29T23:00:00Z")
}

func (o *AgentOptions) Parse() error {
	o.GithubToken = os.Getenv("GITHUB_TOKEN")
	if o.GithubToken == "" && !o.SkipDispatch {
		return errors.New("no $GITHUB_TOKEN defined")
	}

	if o.Repository != "" {
		if parts := strings.Split(o.Repository, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("--repo %q is not in owner/name form", o.Repository)
		}
	}

	if o.NonInteractive {
		if err := o.Release.Validate(); err != nil {
			return err
		}
	}

	return nil
}
