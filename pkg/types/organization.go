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

// Organization carries deployment metadata that shapes the generated
// documents but does not change between releases.
type Organization struct {
	Name         string   `yaml:"name,omitempty" json:"name,omitempty"`
	Platform     string   `yaml:"platform" json:"platform"`
	Regions      []string `yaml:"regions" json:"regions"`
	SlackChannel string   `yaml:"slack_channel" json:"slack_channel"`
}
