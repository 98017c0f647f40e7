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
	"log/slog"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

// Resolve returns the ordered requirement list of a normalized option set:
// the recipe baseline, then the requirement of every component whose option
// is true, then extra caller requirements ("name/version").
//
// Unresolvable component requirements are emitted as markers with
// StatusUnresolvable. A name required twice with the same constraint is
// kept once; with different constraints Resolve fails with
// DUPLICATE_REQUIREMENT.
func Resolve(rec *recipe.Recipe, opts *options.Set, extra ...string) ([]Requirement, error) {
	if rec == nil || opts == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "recipe and options are required")
	}

	l := newList()
	for _, ref := range rec.Requirements.Baseline {
		if err := l.add(ref, Requirement{Source: SourceBaseline}, false); err != nil {
			return nil, err
		}
	}

	for _, c := range rec.Requirements.Components {
		if !opts.Bool(c.Option) {
			continue
		}
		req := Requirement{Source: SourceComponent, Option: c.Option}
		if c.Unresolvable {
			req.Status = StatusUnresolvable
			req.Reason = c.Reason
		}
		if err := l.add(c.Requires, req, c.Unresolvable); err != nil {
			return nil, err
		}
	}

	for _, ref := range extra {
		if err := l.add(ref, Requirement{Source: SourceUser}, false); err != nil {
			return nil, err
		}
	}

	slog.Debug("requirements resolved",
		"recipe", rec.Ref(),
		"count", len(l.reqs),
		"gaps", len(Gaps(l.reqs)))

	return l.reqs, nil
}

// ResolveTools returns the build-time tool requirements for plat, in recipe
// order. Tool conditions only look at the platform.
func ResolveTools(rec *recipe.Recipe, plat platform.Descriptor) ([]Requirement, error) {
	if rec == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "recipe is required")
	}

	l := newList()
	for _, tool := range rec.Requirements.Tools {
		if !tool.When.Matches(plat.OS(), nil) {
			continue
		}
		if err := l.add(tool.Requires, Requirement{Source: SourceTool}, false); err != nil {
			return nil, err
		}
	}
	return l.reqs, nil
}

// list accumulates requirements in order, rejecting conflicting duplicates.
type list struct {
	reqs  []Requirement
	index map[string]int
}

func newList() *list {
	return &list{index: make(map[string]int)}
}

func (l *list) add(ref string, req Requirement, allowBare bool) error {
	parsed, err := recipe.ParseReference(ref, allowBare)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid requirement %q", ref), err)
	}
	req.Name = parsed.Name
	req.Constraint = parsed.Constraint
	if req.Status == "" {
		req.Status = StatusResolved
	}

	if i, ok := l.index[req.Name]; ok {
		prev := l.reqs[i]
		if prev.Constraint.Equal(req.Constraint) {
			return nil
		}
		return errors.NewWithContext(errors.ErrCodeDuplicateRequirement,
			fmt.Sprintf("%s required as both %s and %s", req.Name, prev.Ref(), req.Ref()),
			map[string]any{
				"name":     req.Name,
				"first":    prev.Ref(),
				"second":   req.Ref(),
				"source":   string(req.Source),
				"original": string(prev.Source),
			})
	}
	l.index[req.Name] = len(l.reqs)
	l.reqs = append(l.reqs, req)
	return nil
}
