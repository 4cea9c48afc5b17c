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

package version

import (
	"errors"
	"fmt"
)

// ErrAmbiguousPrefix is returned by Repository implementations that detect
// a prefix collision without being able to enumerate the candidates.
var ErrAmbiguousPrefix = errors.New("commit prefix matches more than one commit")

// InvalidReferenceError ends the run: the reference is neither a resolvable
// tag nor a resolvable commit.
type InvalidReferenceError struct {
	Ref        string
	Repository string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("could not resolve version %q in %s: no matching tag or commit", e.Ref, e.Repository)
}

// AmbiguousReferenceError ends the run: a short commit prefix matched
// multiple commits and picking one silently would document the wrong
// release.
type AmbiguousReferenceError struct {
	Ref        string
	Repository string
	Candidates []string
}

func (e *AmbiguousReferenceError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("version %q in %s is ambiguous: %d commits share this prefix", e.Ref, e.Repository, len(e.Candidates))
	}

	return fmt.Sprintf("version %q in %s is ambiguous: multiple commits share this prefix", e.Ref, e.Repository)
}
