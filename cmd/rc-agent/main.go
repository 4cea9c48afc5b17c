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

// rc-agent is the coordinator-facing trigger: it asks for the release
// parameters, records them and starts the hosted release workflow.
package main

import (
	"context"

	"github.com/ArnoldoM23/automated-release-rc/pkg/config"
	"github.com/ArnoldoM23/automated-release-rc/pkg/github"
	"github.com/ArnoldoM23/automated-release-rc/pkg/trigger"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"
	"github.com/ArnoldoM23/automated-release-rc/pkg/version"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	opts := types.AgentOptions{}
	opts.AddFlags(pflag.CommandLine)
	pflag.Parse()

	log := logrus.New()
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := opts.Parse(); err != nil {
		log.Fatalf("Invalid command line: %v", err)
	}

	// The agent works without a settings file, it then just cannot
	// offer repository-derived defaults.
	settings, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Warnf("Proceeding with default settings: %v", err)
		settings = config.DefaultSettings()
	}

	agent := &trigger.Agent{
		Options:  opts,
		Settings: settings,
		Log:      log,
	}

	ctx := context.Background()

	repository := opts.Repository
	if repository == "" {
		repository = settings.GitHub.Repository
	}

	token := opts.GithubToken
	if token == "" {
		token = settings.GitHub.Token
	}

	if repository != "" && token != "" {
		client, err := github.NewClient(ctx, log, token, repository, settings.GitHub.BaseURL)
		if err != nil {
			log.Fatalf("Failed to set up the GitHub client: %v", err)
		}

		agent.Tags = version.NewResolver(log, client, repository)
		agent.Names = client
		agent.Dispatcher = client
	}

	if err := agent.Run(ctx); err != nil {
		log.Fatalf("Failed to trigger the release: %v", err)
	}
}
