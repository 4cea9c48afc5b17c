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

package summarize_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/classify"
	"github.com/ArnoldoM23/automated-release-rc/pkg/summarize"
	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}

type fakeProvider struct {
	text  string
	err   error
	delay time.Duration
	calls int
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) Generate(ctx context.Context, _ string) (string, error) {
	p.calls++

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.delay):
		}
	}

	if p.err != nil {
		return "", p.err
	}

	return p.text, nil
}

func featurePRs(count int) []types.PullRequest {
	prs := make([]types.PullRequest, count)
	for i := range prs {
		prs[i] = types.PullRequest{
			Number: 100 + i,
			Title:  fmt.Sprintf("Add feature %d", i+1),
			Author: "alice",
			Labels: []string{"feature"},
		}
	}

	return prs
}

func TestSectionTimeoutFallsBack(t *testing.T) {
	provider := &fakeProvider{text: "never delivered", delay: 500 * time.Millisecond}
	summarizer := summarize.NewSummarizer(testLogger(), provider, 10*time.Millisecond)

	text := summarizer.Section(context.Background(), classify.CategoryFeature, featurePRs(5))

	assert.Contains(t, text, "5", "fallback must mention the bucket size")
	assert.Contains(t, text, "new features")
	assert.Equal(t, 1, provider.calls)
}

func TestSectionUsesProviderText(t *testing.T) {
	provider := &fakeProvider{text: "  Adds wishlist support and hardens checkout.  \n"}
	summarizer := summarize.NewSummarizer(testLogger(), provider, 0)

	text := summarizer.Section(context.Background(), classify.CategoryFeature, featurePRs(2))

	assert.Equal(t, "Adds wishlist support and hardens checkout.", text)
}

func TestSectionCachesByBucket(t *testing.T) {
	provider := &fakeProvider{text: "Generated summary."}
	summarizer := summarize.NewSummarizer(testLogger(), provider, 0)

	first := summarizer.Section(context.Background(), classify.CategoryFeature, featurePRs(3))
	second := summarizer.Section(context.Background(), classify.CategoryFeature, featurePRs(3))

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls, "identical buckets must hit the cache")

	summarizer.Section(context.Background(), classify.CategoryFeature, featurePRs(4))
	assert.Equal(t, 2, provider.calls, "a different bucket must miss the cache")
}

func TestSectionEmptyBucket(t *testing.T) {
	provider := &fakeProvider{text: "should not be called"}
	summarizer := summarize.NewSummarizer(testLogger(), provider, 0)

	text := summarizer.Section(context.Background(), classify.CategoryBugfix, nil)

	assert.Empty(t, text)
	assert.Zero(t, provider.calls)
}

func TestSectionWithoutProvider(t *testing.T) {
	summarizer := summarize.NewSummarizer(testLogger(), nil, 0)

	prs := []types.PullRequest{
		{Number: 1, Title: "Fix crash on empty cart"},
		{Number: 2, Title: "Fix session refresh race"},
	}

	text := summarizer.Section(context.Background(), classify.CategoryBugfix, prs)

	assert.Contains(t, text, "2 bug fixes")
	assert.Contains(t, text, "Fix crash on empty cart")
	assert.Contains(t, text, "Fix session refresh race")
}

func TestSectionFallbackTruncatesTitles(t *testing.T) {
	summarizer := summarize.NewSummarizer(testLogger(), nil, 0)

	text := summarizer.Section(context.Background(), classify.CategoryFeature, featurePRs(6))

	assert.Contains(t, text, "6 new features")
	assert.Contains(t, text, "and 3 more")
	assert.NotContains(t, text, "Add feature 4")
}

func TestHighlightsFallbackCounts(t *testing.T) {
	summarizer := summarize.NewSummarizer(testLogger(), nil, 0)

	buckets := classify.Buckets{
		classify.CategoryFeature: featurePRs(2),
		classify.CategoryBugfix: {
			{Number: 10, Title: "Fix crash"},
		},
	}

	text := summarizer.Highlights(context.Background(), types.Release{}, buckets)

	assert.Equal(t, "This release includes 2 new features and 1 bug fix to improve system functionality and user experience.", text)
}

func TestHighlightsFallbackGeneric(t *testing.T) {
	summarizer := summarize.NewSummarizer(testLogger(), nil, 0)

	buckets := classify.Buckets{
		classify.CategoryInfrastructure: {
			{Number: 20, Title: "Bump base image"},
			{Number: 21, Title: "Rotate deploy keys"},
			{Number: 22, Title: "Tune liveness probes"},
		},
	}

	text := summarizer.Highlights(context.Background(), types.Release{}, buckets)

	assert.Equal(t, "This release includes 3 changes to improve system functionality.", text)
}

func TestChainTriesNextProvider(t *testing.T) {
	broken := &fakeProvider{err: errors.New("boom")}
	working := &fakeProvider{text: "from the second provider"}

	chain := summarize.NewChain(testLogger(), broken, working)

	text, err := chain.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "from the second provider", text)
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, working.calls)
}

func TestChainAllProvidersFail(t *testing.T) {
	chain := summarize.NewChain(testLogger(), &fakeProvider{err: errors.New("boom")})

	_, err := chain.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}
