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

package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/lifecycle"
	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
	"github.com/NVIDIA/native-recipe/pkg/serializer"
	"github.com/NVIDIA/native-recipe/pkg/server"
)

// settingParams are the query parameters read as platform settings.
var settingParams = []string{
	platform.SettingOS,
	platform.SettingArch,
	platform.SettingCompiler,
	platform.SettingCompilerVersion,
	platform.SettingCompilerCppstd,
	platform.SettingBuildType,
}

// Handler serves configuration requests with a dry-run lifecycle driver.
type Handler struct {
	driver  *lifecycle.Driver
	timeout time.Duration
}

// NewHandler returns a handler planning with driver.
func NewHandler(driver *lifecycle.Driver) *Handler {
	return &Handler{
		driver:  driver,
		timeout: defaults.ConfigureBuildTimeout,
	}
}

// HandleConfigure plans a configuration. GET reads settings from query
// parameters ("os", "compiler", "compiler.version", ...), options from
// repeated "option=name=value" parameters and extra requirements from
// repeated "require" parameters. POST reads a profile document in JSON or
// YAML.
//
// Example:
//
//	GET /v1/configure?os=Linux&compiler=clang&compiler.version=14&compiler.cppstd=17&option=shared=True
func (h *Handler) HandleConfigure(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		profile *lifecycle.Profile
		err     error
	)
	switch r.Method {
	case http.MethodGet:
		profile, err = profileFromQuery(r)
	case http.MethodPost:
		defer func() { _ = r.Body.Close() }()
		profile, err = profileFromBody(r.Body, r.Header.Get("Content-Type"))
	default:
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET", "POST"},
			})
		return
	}
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid configuration request", nil)
		return
	}

	in, err := inputFromProfile(profile)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid configuration request", nil)
		return
	}

	cfg, err := h.driver.Plan(ctx, in)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to configure package", nil)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, cfg)
}

// HandleRecipe returns the embedded recipe named by the "name" query
// parameter, or the default recipe.
func (h *Handler) HandleRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	rec, err := embeddedRecipe(r.URL.Query().Get("name"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to load recipe", nil)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(defaults.RecipeCacheTTL.Seconds())))
	serializer.RespondJSON(w, http.StatusOK, rec)
}

func profileFromQuery(r *http.Request) (*lifecycle.Profile, error) {
	q := r.URL.Query()

	p := &lifecycle.Profile{
		Recipe:   q.Get("recipe"),
		Settings: make(map[string]string),
		Requires: q["require"],
	}
	for _, key := range settingParams {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			p.Settings[key] = v
		}
	}

	opts, err := options.Parse(q["option"], "")
	if err != nil {
		return nil, err
	}
	p.Options = opts

	if s := q.Get("strict"); s != "" {
		strict, parseErr := strconv.ParseBool(s)
		if parseErr != nil {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid strict value %q", s), map[string]any{"strict": s})
		}
		p.Strict = strict
	}
	return p, nil
}

func profileFromBody(body io.Reader, contentType string) (*lifecycle.Profile, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "request body is empty")
	}

	format := serializer.FormatJSON
	if strings.Contains(contentType, "yaml") {
		format = serializer.FormatYAML
	}

	p, err := serializer.FromBytes[lifecycle.Profile](format, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode configuration profile", err)
	}
	return p, nil
}

// inputFromProfile builds a lifecycle input, accepting embedded recipes
// only: the service never reads recipe files or URLs named by a client.
func inputFromProfile(p *lifecycle.Profile) (lifecycle.Input, error) {
	rec, err := embeddedRecipe(p.Recipe)
	if err != nil {
		return lifecycle.Input{}, err
	}
	plat, err := platform.FromSettings(p.Settings)
	if err != nil {
		return lifecycle.Input{}, err
	}

	slog.Debug("configure request",
		"recipe", rec.Ref(),
		"platform", plat.String(),
		"options", len(p.Options),
		"requires", len(p.Requires))

	return lifecycle.Input{
		Recipe:   rec,
		Platform: plat,
		Options:  p.Options,
		Requires: p.Requires,
		Strict:   p.Strict,
	}, nil
}

func embeddedRecipe(name string) (*recipe.Recipe, error) {
	if name == "" {
		return recipe.Default()
	}
	if !slices.Contains(recipe.List(), name) {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("no embedded recipe for package %q", name),
			map[string]any{"package": name, "available": recipe.List()})
	}
	return recipe.Get(name)
}
