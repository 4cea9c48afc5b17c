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

package render

type confluence struct{}

var confluenceTemplate = `
h1. Release Notes - {{ .Release.Service }} {{ .Release.NewVersion }}

*Release Date:* {{ .Release.Day2Date }}
*Release Coordinator:* {{ .Release.RCName }}
*Release Manager:* {{ .Release.RCManager }}
*Release Type:* {{ capitalize .Release.ReleaseType }}

---

h2. 📋 Summary

{{ with .Highlights }}{{ . }}

{{ end }}This release includes {{ .TotalPRs }} pull request(s) with the following changes:
{{ range .Sections }}
* {{ .Emoji }} **{{ len .PRs }} {{ .Name }}**
{{- end }}

---
{{ range .Sections }}
h2. {{ .Emoji }} {{ .Name }}
{{ with .Summary }}
{{ . }}
{{ end }}
{{- range .PRs }}
* *PR #{{ .Number }}:* {{ .Title }}
  * Author: {{ .AuthorDisplay }}
  * Labels: {{ if .Labels }}{{ join .Labels ", " }}{{ else }}None{{ end }}
  * [View PR|{{ .URL }}]
{{ end }}
---
{{ end }}
h2. 🚀 Deployment Information

*Deployment Schedule:*
* *Day 1 ({{ .Release.Day1Date }}):* Pre-deployment setup and validation
* *Day 2 ({{ .Release.Day2Date }}):* Production deployment

*Rollback Plan:*
If issues are encountered, we can rollback to {{ .Release.ProdVersion }} using our standard rollback procedures.

*Validation:*
* All automated tests passing
* Manual QA validation completed
* Performance benchmarks verified
* Security scans completed

---

h2. 📞 Contact Information

*Release Coordinator:* {{ .Release.RCName }}
*Release Manager:* {{ .Release.RCManager }}
*For issues or questions:* Contact the release team in {{ .Organization.SlackChannel }}

---

*Generated automatically by RC Release Automation on {{ .Timestamp }}*
`

func (r *confluence) Render(ctx *Context) (string, error) {
	return execute(KindConfluence, confluenceTemplate, ctx)
}
