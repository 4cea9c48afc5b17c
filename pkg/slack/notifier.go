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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	"github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
)

const (
	finalRetryAttempts = 3
	finalRetryDelay    = 30 * time.Second
)

// Notifier posts sign-off coordination messages to a single channel.
// In dry-run mode the messages go to the log instead, so the flow can
// be exercised without a workspace token.
type Notifier struct {
	client  *slackapi.Client
	channel string
	dryRun  bool
	log     logrus.FieldLogger
}

func NewNotifier(log logrus.FieldLogger, token string, channel string, dryRun bool) (*Notifier, error) {
	if channel == "" {
		return nil, errors.New("channel cannot be empty")
	}

	notifier := &Notifier{
		channel: channel,
		dryRun:  dryRun,
		log:     log,
	}

	if !dryRun {
		if token == "" {
			return nil, errors.New("bot token cannot be empty")
		}

		notifier.client = slackapi.New(token)
	}

	return notifier, nil
}

func (n *Notifier) PostSignoffRequest(ctx context.Context, release types.Release, authors []string) error {
	return n.post(ctx, BuildSignoffMessage(release, authors))
}

func (n *Notifier) PostReminder(ctx context.Context, release types.Release, pending []string, hoursRemaining int) error {
	return n.post(ctx, BuildReminderMessage(release, pending, hoursRemaining))
}

// PostFinal sends the cutoff-time message. It is the one message that
// must not silently go missing, so failed attempts are repeated.
func (n *Notifier) PostFinal(ctx context.Context, release types.Release, pending []string) error {
	text := BuildFinalMessage(release, pending)

	var lastErr error
	for attempt := 1; attempt <= finalRetryAttempts; attempt++ {
		if lastErr = n.post(ctx, text); lastErr == nil {
			return nil
		}

		n.log.Warnf("Failed to send final sign-off message (attempt %d/%d): %v", attempt, finalRetryAttempts, lastErr)

		if attempt < finalRetryAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(finalRetryDelay):
			}
		}
	}

	return lastErr
}

func (n *Notifier) post(ctx context.Context, text string) error {
	if n.dryRun {
		n.log.WithField("channel", n.channel).Infof("Dry run, would post:\n%s", text)
		return nil
	}

	if _, _, err := n.client.PostMessageContext(ctx, n.channel, slackapi.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to post to %s: %w", n.channel, err)
	}

	n.log.WithField("channel", n.channel).Info("Posted sign-off message.")

	return nil
}
