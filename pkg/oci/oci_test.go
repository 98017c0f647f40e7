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

package oci

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	oras "oras.land/oras-go/v2"
	ocilayout "oras.land/oras-go/v2/content/oci"

	"github.com/NVIDIA/native-recipe/pkg/errors"
)

func TestParseOutputTarget(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOCI    bool
		registry   string
		repository string
		tag        string
		wantErr    bool
	}{
		{name: "local path", input: "./bundle"},
		{name: "absolute path", input: "/tmp/out"},
		{name: "with tag", input: "oci://ghcr.io/nvidia/openmp-server:1.4.0", wantOCI: true, registry: "ghcr.io", repository: "nvidia/openmp-server", tag: "1.4.0"},
		{name: "without tag", input: "oci://ghcr.io/nvidia/openmp-server", wantOCI: true, registry: "ghcr.io", repository: "nvidia/openmp-server"},
		{name: "localhost port", input: "oci://localhost:5000/test/bundle:dev", wantOCI: true, registry: "localhost:5000", repository: "test/bundle", tag: "dev"},
		{name: "uppercase", input: "oci://ghcr.io/NVIDIA/Bundle:v1", wantErr: true},
		{name: "digest", input: "oci://ghcr.io/nvidia/bundle@sha256:" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseOutputTarget(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOCI, ref.IsOCI)
			if !tt.wantOCI {
				assert.Equal(t, tt.input, ref.LocalPath)
				assert.Equal(t, tt.input, ref.String())
				assert.Empty(t, ref.ImageReference())
				return
			}
			assert.Equal(t, tt.registry, ref.Registry)
			assert.Equal(t, tt.repository, ref.Repository)
			assert.Equal(t, tt.tag, ref.Tag)
		})
	}
}

func TestReferenceFormatting(t *testing.T) {
	ref, err := ParseOutputTarget("oci://ghcr.io/nvidia/openmp-server")
	require.NoError(t, err)
	assert.Equal(t, "oci://ghcr.io/nvidia/openmp-server", ref.String())

	tagged := ref.WithTag("v1.0.0")
	assert.Equal(t, "ghcr.io/nvidia/openmp-server:v1.0.0", tagged.ImageReference())
	assert.Equal(t, "oci://ghcr.io/nvidia/openmp-server:v1.0.0", tagged.String())
	assert.Empty(t, ref.Tag, "WithTag must not modify the receiver")

	local := &Reference{LocalPath: "out"}
	assert.Same(t, local, local.WithTag("x"))
}

func TestValidateRegistryReference(t *testing.T) {
	tests := []struct {
		registry   string
		repository string
		wantErr    bool
	}{
		{"ghcr.io", "nvidia/openmp-server", false},
		{"localhost:5000", "test/repo", false},
		{"https://ghcr.io", "nvidia/openmp-server", false},
		{"registry.example.com:5000", "org/team/project", false},
		{"invalid registry", "test/repo", true},
		{"ghcr.io", "NVIDIA/Bundle", true},
		{"ghcr.io", "test/repo@latest", true},
	}
	for _, tt := range tests {
		t.Run(tt.registry+"/"+tt.repository, func(t *testing.T) {
			err := ValidateRegistryReference(tt.registry, tt.repository)
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}

func TestStripProtocol(t *testing.T) {
	assert.Equal(t, "ghcr.io", stripProtocol("https://ghcr.io"))
	assert.Equal(t, "localhost:5000", stripProtocol("http://localhost:5000"))
	assert.Equal(t, "ghcr.io", stripProtocol("ghcr.io"))
}

func TestPackageValidation(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		ref  *Reference
		want string
	}{
		{"nil reference", nil, "OCI reference is required"},
		{"local reference", &Reference{LocalPath: "x"}, "OCI reference is required"},
		{"missing registry", &Reference{IsOCI: true, Repository: "a/b", Tag: "v1"}, "registry is required for OCI packaging"},
		{"missing repository", &Reference{IsOCI: true, Registry: "ghcr.io", Tag: "v1"}, "repository is required for OCI packaging"},
		{"missing tag", &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "a/b"}, "tag is required for OCI packaging"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Package(ctx, PackageOptions{SourceDir: ".", OutputDir: t.TempDir(), Reference: tt.ref})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func writeBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.yaml"), []byte("requires:\n  - openssl/1.1.1w\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conan_toolchain.cmake"), []byte("set(BUILD_SERVER ON CACHE BOOL \"\" FORCE)\n"), 0o644))
	return dir
}

func TestPackageCreatesLayout(t *testing.T) {
	ctx := context.Background()
	ref := &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "nvidia/openmp-server", Tag: "1.4.0"}

	result, err := Package(ctx, PackageOptions{
		SourceDir:             writeBundle(t),
		OutputDir:             t.TempDir(),
		Reference:             ref,
		Annotations:           map[string]string{ociv1.AnnotationTitle: "openmp-server/1.4.0"},
		ReproducibleTimestamp: "2025-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Digest)
	assert.Equal(t, "ghcr.io/nvidia/openmp-server:1.4.0", result.Reference)
	assert.FileExists(t, filepath.Join(result.StorePath, "oci-layout"))
	assert.FileExists(t, filepath.Join(result.StorePath, "index.json"))

	layout, err := ocilayout.New(result.StorePath)
	require.NoError(t, err)
	desc, err := layout.Resolve(ctx, "1.4.0")
	require.NoError(t, err)
	assert.Equal(t, result.Digest, desc.Digest.String())

	_, data, err := oras.FetchBytes(ctx, layout, "1.4.0", oras.DefaultFetchBytesOptions)
	require.NoError(t, err)
	var manifest ociv1.Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, ArtifactType, manifest.ArtifactType)
	require.Len(t, manifest.Layers, 1)
	assert.Equal(t, ociv1.MediaTypeImageLayerGzip, manifest.Layers[0].MediaType)
	assert.Equal(t, "openmp-server/1.4.0", manifest.Annotations[ociv1.AnnotationTitle])
	assert.Equal(t, "2025-01-01T00:00:00Z", manifest.Annotations[ociv1.AnnotationCreated])
}

func TestPackageIsReproducible(t *testing.T) {
	ctx := context.Background()
	src := writeBundle(t)
	ref := &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "nvidia/openmp-server", Tag: "1.4.0"}
	opts := PackageOptions{SourceDir: src, Reference: ref, ReproducibleTimestamp: "2025-01-01T00:00:00Z"}

	opts.OutputDir = t.TempDir()
	first, err := Package(ctx, opts)
	require.NoError(t, err)

	opts.OutputDir = t.TempDir()
	second, err := Package(ctx, opts)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)
}

func TestPushFromStoreRequiresTag(t *testing.T) {
	_, err := PushFromStore(context.Background(), t.TempDir(), PushOptions{
		Reference: &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "a/b"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}
