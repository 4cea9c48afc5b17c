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

package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ArnoldoM23/automated-release-rc/pkg/types"

	gogithub "github.com/google/go-github/v55/github"
)

// DispatchEventType is the repository_dispatch event the hosted release
// workflow listens for.
const DispatchEventType = "run-release"

type dispatchPayload struct {
	types.Release

	SlackChannel string `json:"slack_channel,omitempty"`
	SlackUser    string `json:"slack_user,omitempty"`
}

// DispatchRelease triggers the hosted release workflow, handing it the
// release parameters as client payload.
func (c *Client) DispatchRelease(ctx context.Context, release types.Release, slackChannel string, slackUser string) error {
	raw, err := json.Marshal(dispatchPayload{
		Release:      release,
		SlackChannel: slackChannel,
		SlackUser:    slackUser,
	})
	if err != nil {
		return fmt.Errorf("failed to encode client payload: %w", err)
	}

	payload := json.RawMessage(raw)

	_, _, err = c.rest.Repositories.Dispatch(ctx, c.owner, c.name, gogithub.DispatchRequestOptions{
		EventType:     DispatchEventType,
		ClientPayload: &payload,
	})
	if err != nil {
		return fmt.Errorf("failed to send %q dispatch: %w", DispatchEventType, err)
	}

	c.log.WithField("event", DispatchEventType).WithField("repository", c.Repository()).Info("Triggered release workflow.")

	return nil
}
