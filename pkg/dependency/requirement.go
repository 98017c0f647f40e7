// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dependency

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/version"
)

// Status tells whether a requirement can be fetched from the registry.
type Status string

const (
	// StatusResolved marks a requirement with a managed package.
	StatusResolved Status = "resolved"
	// StatusUnresolvable marks a known gap: the dependency is needed but has
	// no managed package and must be provisioned manually.
	StatusUnresolvable Status = "unresolvable"
)

// Source tells where a requirement came from.
type Source string

// Source constants.
const (
	SourceBaseline  Source = "baseline"
	SourceComponent Source = "component"
	SourceTool      Source = "tool"
	SourceUser      Source = "user"
)

// Requirement is one entry of the ordered requirement list handed to the
// fetch collaborator.
type Requirement struct {
	Name       string             `json:"name" yaml:"name"`
	Constraint version.Constraint `json:"version,omitempty" yaml:"version,omitempty"`
	Status     Status             `json:"status" yaml:"status"`
	Source     Source             `json:"source" yaml:"source"`

	// Option is the component option that added the requirement.
	Option string `json:"option,omitempty" yaml:"option,omitempty"`

	// Reason explains an unresolvable requirement.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Ref renders the requirement in registry form, e.g. "openssl/1.1.1w".
// A requirement without a constraint renders as its bare name.
func (r Requirement) Ref() string {
	if r.Constraint.IsZero() {
		return r.Name
	}
	return r.Name + "/" + r.Constraint.String()
}

// String implements fmt.Stringer.
func (r Requirement) String() string {
	if r.IsGap() {
		return r.Ref() + " (unresolvable)"
	}
	return r.Ref()
}

// IsGap reports whether the requirement is an unresolvable marker.
func (r Requirement) IsGap() bool {
	return r.Status == StatusUnresolvable
}

// Gaps returns the unresolvable markers of reqs, in order.
func Gaps(reqs []Requirement) []Requirement {
	var gaps []Requirement
	for _, r := range reqs {
		if r.IsGap() {
			gaps = append(gaps, r)
		}
	}
	return gaps
}

// Resolved returns the fetchable requirements of reqs, in order.
func Resolved(reqs []Requirement) []Requirement {
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		if !r.IsGap() {
			out = append(out, r)
		}
	}
	return out
}

// Refs renders every requirement in registry form.
func Refs(reqs []Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Ref()
	}
	return out
}

// GapError returns an UNRESOLVABLE_DEPENDENCY error naming every gap in
// reqs, or nil when there is none.
func GapError(reqs []Requirement) error {
	gaps := Gaps(reqs)
	if len(gaps) == 0 {
		return nil
	}
	names := make([]string, len(gaps))
	details := make([]map[string]string, len(gaps))
	for i, g := range gaps {
		names[i] = g.Name
		details[i] = map[string]string{
			"name":   g.Name,
			"option": g.Option,
			"reason": g.Reason,
		}
	}
	return errors.NewWithContext(errors.ErrCodeUnresolvableDependency,
		fmt.Sprintf("dependencies must be provisioned manually: %s", strings.Join(names, ", ")),
		map[string]any{"gaps": details})
}
