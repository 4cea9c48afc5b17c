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

import (
	"fmt"

	"github.com/ArnoldoM23/automated-release-rc/pkg/summarize"
)

type crq struct {
	kind Kind
}

// The change request renderers require the full analysis; a missing key
// means the context was built without the summarizer and is a bug in
// the caller.
var requiredAnalysisKeys = []string{
	summarize.KeyRiskAssessment,
	summarize.KeyTechnicalSummary,
	summarize.KeyValidationSteps,
	summarize.KeyRollbackScenarios,
	summarize.KeyBusinessImpact,
}

func (r *crq) Render(ctx *Context) (string, error) {
	for _, key := range requiredAnalysisKeys {
		if ctx.Analysis[key] == "" {
			return "", &Error{Kind: r.kind, Err: fmt.Errorf("context is missing the %s analysis", key)}
		}
	}

	text := crqDay1Template
	if r.kind == KindCRQDay2 {
		text = crqDay2Template
	}

	return execute(r.kind, text, ctx)
}

var crqDay1Template = `
**CHANGE REQUEST - DAY 1 (Preparation & Setup)**

**Summary:** {{ .Release.Service }} Application Code deployment for {{ .Organization.Platform }} ({{ join .Organization.Regions ", " }}) - Day 1 Preparation

**Change Request Details:**

**Service:** {{ .Release.Service }}
**Version:** {{ .Release.ProdVersion }} → {{ .Release.NewVersion }}
**Release Type:** {{ capitalize .Release.ReleaseType }}
**Date:** {{ .Release.Day1Date }}
**Time:** Pre-deployment preparation
**Duration:** 2-4 hours
**Release Coordinator:** {{ .Release.RCName }}
**Release Manager:** {{ .Release.RCManager }}

---

**DESCRIPTION**

**1. What is the business reason for this change?**
{{ index .Analysis "BUSINESS_IMPACT" }}

**2. What is the technical summary of this change?**
{{ index .Analysis "TECHNICAL_SUMMARY" }}

**3. What testing has been performed?**
- All automated test suites passing
- Integration tests completed successfully
- Performance testing completed
- Security scans completed
- Code review and approval processes completed

**4. What is the risk assessment for this change?**
{{ index .Analysis "RISK_ASSESSMENT" }}

**5. What is the impact if this change fails?**
Service downtime limited to rollback duration (~15-30 minutes). Established monitoring and rollback procedures minimize impact.

**6. What are the dependencies for this change?**
- Infrastructure team coordination
- Database migration compatibility (if applicable)
- External service compatibility verified
- Monitoring systems operational

**7. Who are the stakeholders and how will they be notified?**
- Engineering teams via Slack {{ .Organization.SlackChannel }}
- Operations team via standard deployment notifications
- Business stakeholders via release communications

---

**IMPLEMENTATION PLAN - DAY 1**

**Pre-Deployment Tasks:**
1. **Environment Preparation (09:00-10:00)**
   - Verify staging environment matches production
   - Confirm all dependencies are ready
   - Validate monitoring systems operational

2. **Artifact Preparation (10:00-11:00)**
   - Build and validate deployment artifacts
   - Run final automated test suite
   - Package deployment with version {{ .Release.NewVersion }}

3. **Infrastructure Validation (11:00-12:00)**
   - Verify target environment capacity
   - Confirm database migration readiness (if applicable)
   - Test rollback procedures in staging

4. **Team Coordination (12:00-13:00)**
   - Final deployment readiness review
   - Confirm Day 2 deployment team availability
   - Validate communication channels

**Success Criteria Day 1:**
- All deployment artifacts validated
- Infrastructure readiness confirmed
- Team coordination completed
- Go/No-go decision made for Day 2

---

**VALIDATION PLAN - DAY 1**

{{ index .Analysis "VALIDATION_STEPS" }}

**Validation Steps:**
1. Deployment artifact integrity checks
2. Staging environment smoke tests
3. Rollback procedure verification
4. Monitoring dashboard validation
5. Team communication test

---

**BACKOUT PLAN - DAY 1**

**Criteria for Stopping Day 1 Activities:**
{{ index .Analysis "ROLLBACK_SCENARIOS" }}

**Backout Steps:**
1. Halt deployment preparation
2. Notify stakeholders via {{ .Organization.SlackChannel }}
3. Schedule post-mortem if needed
4. Reschedule deployment window

**Decision Authority:** {{ .Release.RCManager }}
**Communication:** Release team lead

---

**Generated:** {{ .Timestamp }}
**Total PRs:** {{ .TotalPRs }}
**Automation:** RC Release Automation System
`

var crqDay2Template = `
**CHANGE REQUEST - DAY 2 (Production Deployment)**

**Summary:** {{ .Release.Service }} Application Code deployment for {{ .Organization.Platform }} ({{ join .Organization.Regions ", " }}) - Day 2 Production Release

**Change Request Details:**

**Service:** {{ .Release.Service }}
**Version:** {{ .Release.ProdVersion }} → {{ .Release.NewVersion }}
**Release Type:** {{ capitalize .Release.ReleaseType }}
**Date:** {{ .Release.Day2Date }}
**Time:** Production deployment window
**Duration:** 1-2 hours + 1 hour monitoring
**Release Coordinator:** {{ .Release.RCName }}
**Release Manager:** {{ .Release.RCManager }}

---

**DESCRIPTION**

**1. What is the business reason for this change?**
{{ index .Analysis "BUSINESS_IMPACT" }}

**2. What is the technical summary of this change?**
{{ index .Analysis "TECHNICAL_SUMMARY" }}

**3. What testing has been performed?**
- Day 1 preparation completed successfully
- All validation criteria met
- Deployment artifacts verified
- Rollback procedures tested

**4. What is the risk assessment for this change?**
{{ index .Analysis "RISK_ASSESSMENT" }}

**5. What is the impact if this change fails?**
Temporary service disruption during rollback (15-30 minutes). Monitoring alerts will trigger immediate response. Business operations continue with previous version.

**6. What are the dependencies for this change?**
- Day 1 preparation completed successfully
- Deployment team available and coordinated
- Monitoring systems operational
- Communication channels active

**7. Who are the stakeholders and how will they be notified?**
- Real-time updates in {{ .Organization.SlackChannel }} Slack channel
- Deployment status via monitoring dashboards
- Immediate notification of any issues
- Post-deployment summary to stakeholders

---

**IMPLEMENTATION PLAN - DAY 2**

**Production Deployment Tasks:**
1. **Pre-Deployment Checks (09:00-09:30)**
   - Verify Day 1 preparation completion
   - Confirm team readiness
   - Final go/no-go decision

2. **Production Deployment (09:30-10:30)**
   - Deploy {{ .Release.Service }} version {{ .Release.NewVersion }}
   - Execute database migrations (if applicable)
   - Update configuration as needed
   - Verify service startup

3. **Post-Deployment Validation (10:30-11:30)**
   - Smoke test critical functionality
   - Monitor error rates and performance
   - Validate user-facing features
   - Confirm metrics within expected ranges

4. **Monitoring & Stabilization (11:30-12:30)**
   - Extended monitoring period
   - Performance validation
   - User feedback monitoring
   - Final deployment confirmation

**Success Criteria Day 2:**
- Service successfully deployed and running
- All validation tests passing
- Performance metrics within acceptable ranges
- No critical errors detected

---

**VALIDATION PLAN - DAY 2**

{{ index .Analysis "VALIDATION_STEPS" }}

**Post-Deployment Validation:**
1. **Immediate Checks (0-15 minutes)**
   - Application startup successful
   - Health check endpoints responding
   - Database connectivity confirmed
   - Load balancer routing properly

2. **Functional Validation (15-45 minutes)**
   - Key user workflows tested
   - API endpoints responding correctly
   - Integration points functioning
   - Authentication/authorization working

3. **Performance Monitoring (45-90 minutes)**
   - Response times within SLA
   - Error rates < 1%
   - Resource utilization normal
   - Database performance stable

---

**BACKOUT PLAN - DAY 2**

**Criteria for Rollback:**
{{ index .Analysis "ROLLBACK_SCENARIOS" }}

**Rollback Triggers:**
- Application startup failure
- Critical functionality unavailable
- Error rate exceeds 5%
- Performance degradation >50%
- P1/P0 incident triggered

**Rollback Steps:**
1. **Immediate Response (0-5 minutes)**
   - Stop new deployments
   - Notify via {{ .Organization.SlackChannel }}
   - Begin rollback procedure

2. **Rollback Execution (5-20 minutes)**
   - Deploy previous version {{ .Release.ProdVersion }}
   - Restore database to pre-deployment state (if needed)
   - Verify rollback success
   - Update load balancer routing

3. **Post-Rollback (20-30 minutes)**
   - Confirm service stability
   - Notify stakeholders
   - Begin incident post-mortem
   - Document rollback reason

**Decision Authority:** {{ .Release.RCManager }}
**Escalation:** Available 24/7 during deployment window

---

**PULL REQUESTS INCLUDED:**
{{ range .PullRequests }}
- PR #{{ .Number }}: {{ .Title }} ({{ .AuthorDisplay }})
{{- end }}

**Generated:** {{ .Timestamp }}
**Total PRs:** {{ .TotalPRs }}
**Automation:** RC Release Automation System
`
