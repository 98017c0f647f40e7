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
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	ocilayout "oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/errors"
)

// ArtifactType is the artifact type of configuration bundles.
const ArtifactType = "application/vnd.nvidia.nrc.bundle.v1"

// LayoutDirName is the directory, under PackageOptions.OutputDir, that
// receives the OCI image layout.
const LayoutDirName = "oci-layout"

// PackageOptions configures local packaging of a bundle directory.
type PackageOptions struct {
	// SourceDir is the bundle directory.
	SourceDir string
	// OutputDir receives the OCI image layout.
	OutputDir string
	// Reference names the artifact; Tag is required.
	Reference *Reference
	// Annotations are added to the manifest.
	Annotations map[string]string
	// ReproducibleTimestamp, when set, is used as the created annotation.
	ReproducibleTimestamp string
}

// PackageResult describes a locally packaged artifact.
type PackageResult struct {
	Digest    string
	Reference string
	StorePath string
}

// PushOptions configures the copy of a packaged artifact to a registry.
type PushOptions struct {
	Reference *Reference
	// PlainHTTP uses HTTP instead of HTTPS.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult describes a pushed artifact.
type PushResult struct {
	Digest    string
	Reference string
}

func requireTagged(ref *Reference) error {
	switch {
	case ref == nil || !ref.IsOCI:
		return errors.New(errors.ErrCodeInvalidRequest, "OCI reference is required")
	case ref.Registry == "":
		return errors.New(errors.ErrCodeInvalidRequest, "registry is required for OCI packaging")
	case ref.Repository == "":
		return errors.New(errors.ErrCodeInvalidRequest, "repository is required for OCI packaging")
	case ref.Tag == "":
		return errors.New(errors.ErrCodeInvalidRequest, "tag is required for OCI packaging")
	}
	return nil
}

// Package packs SourceDir as a single reproducible tar layer into an OCI
// image layout under OutputDir, tagged with the reference tag.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	if err := requireTagged(opts.Reference); err != nil {
		return nil, err
	}
	if err := ValidateRegistryReference(opts.Reference.Registry, opts.Reference.Repository); err != nil {
		return nil, err
	}

	absSource, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	storePath, err := filepath.Abs(filepath.Join(opts.OutputDir, LayoutDirName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if mkErr := os.MkdirAll(storePath, 0o755); mkErr != nil {
		return nil, fmt.Errorf("failed to create layout directory: %w", mkErr)
	}

	fs, err := file.New(absSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layer, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absSource)
	if err != nil {
		return nil, fmt.Errorf("failed to add bundle to store: %w", err)
	}

	annotations := make(map[string]string, len(opts.Annotations)+1)
	for k, v := range opts.Annotations {
		annotations[k] = v
	}
	if opts.ReproducibleTimestamp != "" {
		annotations[ociv1.AnnotationCreated] = opts.ReproducibleTimestamp
	}

	manifest, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: annotations,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}
	tag := opts.Reference.Tag
	if err := fs.Tag(ctx, manifest, tag); err != nil {
		return nil, fmt.Errorf("failed to tag manifest: %w", err)
	}

	layout, err := ocilayout.New(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCI layout: %w", err)
	}
	desc, err := oras.Copy(ctx, fs, tag, layout, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to copy artifact into layout: %w", err)
	}

	slog.Debug("bundle packaged",
		"reference", opts.Reference.ImageReference(),
		"digest", desc.Digest.String(),
		"store_path", storePath)

	return &PackageResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.ImageReference(),
		StorePath: storePath,
	}, nil
}

// PushFromStore copies the tagged artifact of an OCI layout to the
// registry named by opts.Reference.
func PushFromStore(ctx context.Context, storePath string, opts PushOptions) (*PushResult, error) {
	if err := requireTagged(opts.Reference); err != nil {
		return nil, err
	}
	ref := opts.Reference
	registry := stripProtocol(ref.Registry)

	layout, err := ocilayout.New(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open OCI layout: %w", err)
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", registry, ref.Repository))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = newAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, layout, ref.Tag, repo, ref.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to push artifact to registry: %w", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: fmt.Sprintf("%s/%s:%s", registry, ref.Repository, ref.Tag),
	}, nil
}

// PushConfig configures PackageAndPush.
type PushConfig struct {
	SourceDir   string
	OutputDir   string
	Reference   *Reference
	Version     string
	Title       string
	PlainHTTP   bool
	InsecureTLS bool
}

// PackageAndPush packages a bundle directory and pushes it, bounded by
// defaults.OCIPushTimeout.
func PackageAndPush(ctx context.Context, cfg PushConfig) (*PushResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	pkg, err := Package(ctx, PackageOptions{
		SourceDir: cfg.SourceDir,
		OutputDir: cfg.OutputDir,
		Reference: cfg.Reference,
		Annotations: map[string]string{
			ociv1.AnnotationVersion: cfg.Version,
			ociv1.AnnotationTitle:   cfg.Title,
			ociv1.AnnotationVendor:  "NVIDIA",
			ociv1.AnnotationSource:  "https://github.com/NVIDIA/native-recipe",
		},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to package OCI artifact", err)
	}

	slog.Info("pushing bundle", "reference", pkg.Reference, "digest", pkg.Digest)
	res, err := PushFromStore(ctx, pkg.StorePath, PushOptions{
		Reference:   cfg.Reference,
		PlainHTTP:   cfg.PlainHTTP,
		InsecureTLS: cfg.InsecureTLS,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to push OCI artifact", err)
	}
	slog.Info("bundle pushed", "reference", res.Reference, "digest", res.Digest)
	return res, nil
}

// newAuthClient returns a registry client using Docker credential helpers.
func newAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{} //nolint:gosec
		}
		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
