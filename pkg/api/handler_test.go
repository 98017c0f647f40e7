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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/lifecycle"
	"github.com/NVIDIA/native-recipe/pkg/server"
)

type configurationDoc struct {
	Kind         string            `json:"kind"`
	ID           string            `json:"id"`
	Recipe       string            `json:"recipe"`
	Platform     map[string]string `json:"platform"`
	Options      map[string]any    `json:"options"`
	Requirements []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"requirements"`
	Gaps []struct {
		Name string `json:"name"`
	} `json:"gaps"`
	Variables map[string]any `json:"variables"`
}

func newHandler() *Handler {
	return NewHandler(lifecycle.New(lifecycle.WithVersion("test")))
}

func doRequest(t *testing.T, hf http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	hf(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

const linuxClang = "os=Linux&compiler=clang&compiler.version=14&compiler.cppstd=17"

func TestHandleConfigureGet(t *testing.T) {
	h := newHandler()

	w := doRequest(t, h.HandleConfigure, httptest.NewRequest(http.MethodGet, "/v1/configure?"+linuxClang, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var doc configurationDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Configuration", doc.Kind)
	assert.Equal(t, "openmp-server/1.4.0", doc.Recipe)
	assert.Equal(t, "Linux", doc.Platform["os"])
	assert.NotEmpty(t, doc.ID)

	require.NotEmpty(t, doc.Requirements)
	assert.Equal(t, "nlohmann_json", doc.Requirements[0].Name)
	require.Len(t, doc.Gaps, 1)
	assert.Equal(t, "libelfin", doc.Gaps[0].Name)
	assert.Equal(t, true, doc.Variables["BUILD_SERVER"])
}

func TestHandleConfigureGetOptions(t *testing.T) {
	h := newHandler()

	url := "/v1/configure?" + linuxClang + "&option=shared=True&option=build_abi_check_tool=False&require=zlib/1.3.1"
	w := doRequest(t, h.HandleConfigure, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var doc configurationDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, true, doc.Options["shared"])
	assert.NotContains(t, doc.Options, "fPIC")
	assert.Empty(t, doc.Gaps)

	last := doc.Requirements[len(doc.Requirements)-1]
	assert.Equal(t, "zlib", last.Name)
}

func TestHandleConfigureIsIdempotent(t *testing.T) {
	h := newHandler()

	var ids []string
	for range 2 {
		w := doRequest(t, h.HandleConfigure, httptest.NewRequest(http.MethodGet, "/v1/configure?"+linuxClang, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var doc configurationDoc
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		ids = append(ids, doc.ID)
	}
	assert.Equal(t, ids[0], ids[1])
}

func TestHandleConfigureRuleFailures(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  errors.ErrorCode
	}{
		{"old clang", "os=Linux&compiler=clang&compiler.version=8&compiler.cppstd=17", errors.ErrCodeCompilerTooOld},
		{"low standard", "os=Linux&compiler=clang&compiler.version=14&compiler.cppstd=14", errors.ErrCodeStandardTooLow},
		{"gcc not allowed", "os=Linux&compiler=gcc&compiler.version=11&compiler.cppstd=17", errors.ErrCodeUnsupportedCompiler},
		{"strict gaps", linuxClang + "&strict=true", errors.ErrCodeUnresolvableDependency},
	}

	h := newHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h.HandleConfigure, httptest.NewRequest(http.MethodGet, "/v1/configure?"+tt.query, nil))
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			resp := decodeErr(t, w)
			assert.Equal(t, string(tt.code), resp.Code)
			assert.False(t, resp.Retryable)
		})
	}
}

func TestHandleConfigureBadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"bad os", "/v1/configure?os=Plan9", http.StatusBadRequest},
		{"bad option syntax", "/v1/configure?" + linuxClang + "&option=shared", http.StatusBadRequest},
		{"unknown option", "/v1/configure?" + linuxClang + "&option=nope=True", http.StatusBadRequest},
		{"bad strict", "/v1/configure?" + linuxClang + "&strict=maybe", http.StatusBadRequest},
		{"unknown recipe", "/v1/configure?recipe=missing&" + linuxClang, http.StatusNotFound},
		{"recipe path rejected", "/v1/configure?recipe=/etc/recipe.yaml&" + linuxClang, http.StatusNotFound},
	}

	h := newHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h.HandleConfigure, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestHandleConfigurePost(t *testing.T) {
	h := newHandler()

	t.Run("json", func(t *testing.T) {
		body := `{"settings":{"os":"Windows","compiler":"clang-cl","compiler.version":"16","compiler.cppstd":"17"},"options":{"shared":"True"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/configure", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := doRequest(t, h.HandleConfigure, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var doc configurationDoc
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "Windows", doc.Platform["os"])
		assert.NotContains(t, doc.Options, "fPIC")
		assert.Equal(t, "10.0", doc.Variables["CMAKE_SYSTEM_VERSION"])
	})

	t.Run("yaml", func(t *testing.T) {
		body := "settings:\n  os: Macos\n  compiler: apple-clang\n  compiler.version: \"15\"\n  compiler.cppstd: \"20\"\n"
		req := httptest.NewRequest(http.MethodPost, "/v1/configure", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/yaml")

		w := doRequest(t, h.HandleConfigure, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		w := doRequest(t, h.HandleConfigure, httptest.NewRequest(http.MethodPost, "/v1/configure", strings.NewReader("")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/configure", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(t, h.HandleConfigure, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleConfigureMethodNotAllowed(t *testing.T) {
	w := doRequest(t, newHandler().HandleConfigure, httptest.NewRequest(http.MethodDelete, "/v1/configure", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Allow"))
}

func TestHandleRecipe(t *testing.T) {
	h := newHandler()

	w := doRequest(t, h.HandleRecipe, httptest.NewRequest(http.MethodGet, "/v1/recipe", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "PackageRecipe", doc["kind"])

	w = doRequest(t, h.HandleRecipe, httptest.NewRequest(http.MethodGet, "/v1/recipe?name=missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, h.HandleRecipe, httptest.NewRequest(http.MethodPost, "/v1/recipe", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutes(t *testing.T) {
	routes := Routes(newHandler())
	assert.Contains(t, routes, "/v1/configure")
	assert.Contains(t, routes, "/v1/recipe")

	w := doRequest(t, routes["/v1/configure"], httptest.NewRequest(http.MethodGet, "/v1/configure?"+linuxClang, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var doc configurationDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Configuration", doc.Kind)
}
