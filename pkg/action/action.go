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

// Package action backs the CLI commands of the primary binary.
package action

import (
	"os"
	"path/filepath"

	"github.com/ArnoldoM23/automated-release-rc/pkg/config"

	"github.com/sirupsen/logrus"
)

// Action knows everything to run the release CLI actions.
type Action struct {
	Name string

	log *logrus.Logger
}

// New returns a new Action wrapper.
func New() *Action {
	name := "rc-release"
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}

	return &Action{
		Name: name,
		log:  logrus.New(),
	}
}

// configureLogger applies the configured level; --verbose wins so a
// coordinator can debug a run without editing the settings file.
func (a *Action) configureLogger(settings *config.Settings, verbose bool) {
	a.log.SetLevel(settings.Level())

	if verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
}
