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
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Release carries the coordinator-supplied parameters for one release run.
// The JSON tags match the repository_dispatch client payload and the
// rc_config.json file written by the agent CLI.
type Release struct {
	Service     string `json:"service_name"`
	ProdVersion string `json:"prod_version"`
	NewVersion  string `json:"new_version"`
	ReleaseType string `json:"release_type"`
	RCName      string `json:"rc_name"`
	RCManager   string `json:"rc_manager"`
	Day1Date    string `json:"day1_date"`
	Day2Date    string `json:"day2_date"`
	CutoffTime  string `json:"cutoff_time,omitempty"`
}

// A version reference is either tag-like (semver, optionally prefixed with
// "v") or commit-like (7 to 40 hex digits). The distinction is structural,
// never declared by the user.
var commitRefPattern = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)

func IsCommitRef(ref string) bool {
	return commitRefPattern.MatchString(ref)
}

func IsTagRef(ref string) bool {
	_, err := semver.StrictNewVersion(strings.TrimPrefix(ref, "v"))
	return err == nil
}

func IsVersionRef(ref string) bool {
	return IsCommitRef(ref) || IsTagRef(ref)
}

const dateLayout = "2006-01-02"

func (r *Release) Validate() error {
	if r.Service == "" {
		return errors.New("no service name given")
	}

	for _, ref := range []struct {
		name  string
		value string
	}{
		{"prod-version", r.ProdVersion},
		{"new-version", r.NewVersion},
	} {
		if ref.value == "" {
			return fmt.Errorf("no --%s given", ref.name)
		}

		if !IsVersionRef(ref.value) {
			return fmt.Errorf("--%s %q is neither a semver tag nor a commit hash", ref.name, ref.value)
		}
	}

	switch r.ReleaseType {
	case "standard", "hotfix", "ebf":
	default:
		return fmt.Errorf("--release-type %q must be one of standard, hotfix or ebf", r.ReleaseType)
	}

	if r.RCName == "" {
		return errors.New("no release coordinator given")
	}

	for _, date := range []struct {
		name  string
		value string
	}{
		{"day1-date", r.Day1Date},
		{"day2-date", r.Day2Date},
	} {
		if date.value == "" {
			continue
		}

		if _, err := time.Parse(dateLayout, date.value); err != nil {
			return fmt.Errorf("--%s %q is not a valid YYYY-MM-DD date: %w", date.name, date.value, err)
		}
	}

	if r.CutoffTime != "" {
		if _, err := time.Parse(time.RFC3339, r.CutoffTime); err != nil {
			return fmt.Errorf("--cutoff-time %q is not a valid UTC ISO timestamp like 2025-05-29T23:00:00Z: %w", r.CutoffTime, err)
		}
	}

	return nil
}
