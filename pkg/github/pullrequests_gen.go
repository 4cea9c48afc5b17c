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

// This file has been generated using hack/generate-client.go, DO NOT EDIT.

package github

// MaxPullRequestsPerQuery is the maximum number of pull requests a single
// numbered query fetches at once.
const MaxPullRequestsPerQuery = 20

type numberedPullRequestQuery struct {
	Repository struct {
		PR0  graphqlPullRequest `graphql:"pr0: pullRequest(number: $number0) @include(if: $has0)"`
		PR1  graphqlPullRequest `graphql:"pr1: pullRequest(number: $number1) @include(if: $has1)"`
		PR2  graphqlPullRequest `graphql:"pr2: pullRequest(number: $number2) @include(if: $has2)"`
		PR3  graphqlPullRequest `graphql:"pr3: pullRequest(number: $number3) @include(if: $has3)"`
		PR4  graphqlPullRequest `graphql:"pr4: pullRequest(number: $number4) @include(if: $has4)"`
		PR5  graphqlPullRequest `graphql:"pr5: pullRequest(number: $number5) @include(if: $has5)"`
		PR6  graphqlPullRequest `graphql:"pr6: pullRequest(number: $number6) @include(if: $has6)"`
		PR7  graphqlPullRequest `graphql:"pr7: pullRequest(number: $number7) @include(if: $has7)"`
		PR8  graphqlPullRequest `graphql:"pr8: pullRequest(number: $number8) @include(if: $has8)"`
		PR9  graphqlPullRequest `graphql:"pr9: pullRequest(number: $number9) @include(if: $has9)"`
		PR10 graphqlPullRequest `graphql:"pr10: pullRequest(number: $number10) @include(if: $has10)"`
		PR11 graphqlPullRequest `graphql:"pr11: pullRequest(number: $number11) @include(if: $has11)"`
		PR12 graphqlPullRequest `graphql:"pr12: pullRequest(number: $number12) @include(if: $has12)"`
		PR13 graphqlPullRequest `graphql:"pr13: pullRequest(number: $number13) @include(if: $has13)"`
		PR14 graphqlPullRequest `graphql:"pr14: pullRequest(number: $number14) @include(if: $has14)"`
		PR15 graphqlPullRequest `graphql:"pr15: pullRequest(number: $number15) @include(if: $has15)"`
		PR16 graphqlPullRequest `graphql:"pr16: pullRequest(number: $number16) @include(if: $has16)"`
		PR17 graphqlPullRequest `graphql:"pr17: pullRequest(number: $number17) @include(if: $has17)"`
		PR18 graphqlPullRequest `graphql:"pr18: pullRequest(number: $number18) @include(if: $has18)"`
		PR19 graphqlPullRequest `graphql:"pr19: pullRequest(number: $number19) @include(if: $has19)"`
	} `graphql:"repository(name: $name, owner: $owner)"`
}

func (q *numberedPullRequestQuery) GetAll() []graphqlPullRequest {
	prs := []graphqlPullRequest{}

	if q.Repository.PR0.Number != 0 {
		prs = append(prs, q.Repository.PR0)
	}
	if q.Repository.PR1.Number != 0 {
		prs = append(prs, q.Repository.PR1)
	}
	if q.Repository.PR2.Number != 0 {
		prs = append(prs, q.Repository.PR2)
	}
	if q.Repository.PR3.Number != 0 {
		prs = append(prs, q.Repository.PR3)
	}
	if q.Repository.PR4.Number != 0 {
		prs = append(prs, q.Repository.PR4)
	}
	if q.Repository.PR5.Number != 0 {
		prs = append(prs, q.Repository.PR5)
	}
	if q.Repository.PR6.Number != 0 {
		prs = append(prs, q.Repository.PR6)
	}
	if q.Repository.PR7.Number != 0 {
		prs = append(prs, q.Repository.PR7)
	}
	if q.Repository.PR8.Number != 0 {
		prs = append(prs, q.Repository.PR8)
	}
	if q.Repository.PR9.Number != 0 {
		prs = append(prs, q.Repository.PR9)
	}
	if q.Repository.PR10.Number != 0 {
		prs = append(prs, q.Repository.PR10)
	}
	if q.Repository.PR11.Number != 0 {
		prs = append(prs, q.Repository.PR11)
	}
	if q.Repository.PR12.Number != 0 {
		prs = append(prs, q.Repository.PR12)
	}
	if q.Repository.PR13.Number != 0 {
		prs = append(prs, q.Repository.PR13)
	}
	if q.Repository.PR14.Number != 0 {
		prs = append(prs, q.Repository.PR14)
	}
	if q.Repository.PR15.Number != 0 {
		prs = append(prs, q.Repository.PR15)
	}
	if q.Repository.PR16.Number != 0 {
		prs = append(prs, q.Repository.PR16)
	}
	if q.Repository.PR17.Number != 0 {
		prs = append(prs, q.Repository.PR17)
	}
	if q.Repository.PR18.Number != 0 {
		prs = append(prs, q.Repository.PR18)
	}
	if q.Repository.PR19.Number != 0 {
		prs = append(prs, q.Repository.PR19)
	}

	return prs
}
