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

type markdown struct{}

var markdownTemplate = `
# Release Notes - {{ .Release.Service }} {{ .Release.NewVersion }}

**Release Date:** {{ .Release.Day2Date }}
**Release Coordinator:** {{ .Release.RCName }}
**Release Manager:** {{ .Release.RCManager }}
**Release Type:** {{ capitalize .Release.ReleaseType }}

---

## 📋 Summary

{{ with .Highlights }}{{ . }}

{{ end }}This release includes {{ .TotalPRs }} pull request(s) with the following changes:
{{ range .Sections }}
* **{{ len .PRs }} {{ .Emoji }} {{ .Name }}**
{{- end }}
{{ range .Sections }}
## {{ .Emoji }} {{ .Name }}
{{ with .Summary }}
{{ . }}
{{ end }}
{{- range .PRs }}
* **PR #{{ .Number }}:** {{ .Title }}
  * Author: {{ .AuthorDisplay }}
{{- if .Labels }}
  * Labels: {{ join .Labels ", " }}
{{- end }}
  * [View PR]({{ .URL }})
{{ end }}
{{- end }}
`

func (m *markdown) Render(ctx *Context) (string, error) {
	return execute(KindMarkdown, markdownTemplate, ctx)
}
