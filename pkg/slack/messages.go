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

package slack

import (
	"fmt"
	"strings"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"
)

// BuildSignoffMessage is the initial sign-off request posted once the
// release content is locked. Authors are display strings, one bullet
// each, in fetch order.
func BuildSignoffMessage(release types.Release, authors []string) string {
	return fmt.Sprintf(`🚀 **Release Sign-off Required**

Hi team! We've locked the release for:
• **Day 1**: %s
• **Day 2**: %s

**Service**: %s (%s → %s)

📋 **Please sign off on your PRs by**: `+"`%s`"+`

**PR Authors requiring sign-off**:
%s

Thank you for your prompt response!
**RC**: %s`,
		release.Day1Date,
		release.Day2Date,
		release.Service,
		release.ProdVersion,
		release.NewVersion,
		release.CutoffTime,
		bulletList(authors),
		release.RCName)
}

// BuildReminderMessage escalates its tone as the cutoff comes closer.
func BuildReminderMessage(release types.Release, pending []string, hoursRemaining int) string {
	urgency := "🔔 **Gentle Reminder**"
	timeLeft := fmt.Sprintf("%d hours", hoursRemaining)

	switch {
	case hoursRemaining <= 1:
		urgency = "🚨 **FINAL REMINDER**"
		timeLeft = "less than 1 hour"
	case hoursRemaining <= 4:
		urgency = "⏰ **Reminder**"
	}

	return fmt.Sprintf(`%s

Release sign-off deadline in **%s**: `+"`%s`"+`

If you don't sign off by the deadline, your changes may need to be removed from this release.

**Pending sign-offs**:
%s

**RC**: %s`,
		urgency,
		timeLeft,
		release.CutoffTime,
		bulletList(pending),
		release.RCName)
}

// BuildFinalMessage is posted at cutoff time: a success note when
// nobody is pending, an escalation to the RC and their manager
// otherwise.
func BuildFinalMessage(release types.Release, pending []string) string {
	if len(pending) == 0 {
		return fmt.Sprintf(`✅ **All Sign-offs Complete!**

Great job team! All PR authors have signed off on their changes.

%s, you may proceed with the CRQ review and release process.

**Release Schedule**:
• **Day 1**: %s
• **Day 2**: %s`,
			release.RCName,
			release.Day1Date,
			release.Day2Date)
	}

	return fmt.Sprintf(`⚠️ **Sign-off Deadline Reached - Escalation Required**

The following PR authors have NOT signed off by the deadline `+"`%s`"+`:

%s

%s %s, please follow up immediately or consider removing these changes before CRQ submission.

**Next Steps**:
1. Contact authors directly for immediate sign-off
2. OR remove unsigned changes from release
3. Proceed with CRQ once resolved`,
		release.CutoffTime,
		bulletList(pending),
		release.RCName,
		release.RCManager)
}

func bulletList(entries []string) string {
	bullets := make([]string, 0, len(entries))
	for _, entry := range entries {
		bullets = append(bullets, "• "+entry)
	}

	return strings.Join(bullets, "\n")
}
