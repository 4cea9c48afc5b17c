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

package fetch

import (
	"regexp"
	"strconv"
)

// Merge commits and squash commits carry the pull request number in
// different shapes, depending on how the repository merges. The patterns
// are tried in order, most specific first, and the first hit wins.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Merge pull request #(\d+)`),
	regexp.MustCompile(`\(#(\d+)\)`),
	regexp.MustCompile(`Merge #(\d+)`),
	regexp.MustCompile(`PR #(\d+)`),
	regexp.MustCompile(`#(\d+)`),
}

// pullRequestNumber extracts the pull request number from a commit
// message. The bool reports whether the message references one at all.
func pullRequestNumber(message string) (int, bool) {
	for _, pattern := range numberPatterns {
		match := pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}

		number, err := strconv.Atoi(match[1])
		if err != nil || number <= 0 {
			continue
		}

		return number, true
	}

	return 0, false
}
