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
	"fmt"
)

// DisplayNames resolves the full names behind the given logins, as
// "Full Name (@login)". The lookup is best effort: logins that cannot be
// resolved (deleted accounts, bots) are simply absent from the result.
func (c *Client) DisplayNames(ctx context.Context, logins []string) map[string]string {
	names := map[string]string{}

	for _, login := range logins {
		user, _, err := c.rest.Users.Get(ctx, login)
		if err != nil {
			c.log.WithField("login", login).Debugf("Failed to fetch user profile: %v", err)
			continue
		}

		if name := user.GetName(); name != "" {
			names[login] = fmt.Sprintf("%s (@%s)", name, login)
		}
	}

	return names
}
