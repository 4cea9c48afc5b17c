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
	"log"
	"os"

	"github.com/ArnoldoM23/automated-release-rc/pkg/action"

	"github.com/urfave/cli"
)

// version is stamped via -ldflags at build time.
var (
	version = "dev"
)

func main() {
	action := action.New()

	app := cli.NewApp()
	app.Name = action.Name
	app.Usage = "Generate release notes, CRQ documents and sign-off messages from merged pull requests"
	app.Version = version
	app.Commands = getCommands(action)
	app.Flags = getGlobalFlags()

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
