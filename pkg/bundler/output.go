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

package bundler

import (
	"fmt"
	"time"
)

// Output summarizes a finalized bundle.
type Output struct {
	// OutputDir is the directory the bundle was written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Files are the bundle files relative to OutputDir, checksums last.
	Files []string `json:"files" yaml:"files"`

	// TotalSize is the total size in bytes of the generated files,
	// excluding checksums.txt.
	TotalSize int64 `json:"total_size_bytes" yaml:"total_size_bytes"`

	// TotalFiles is the count of generated files.
	TotalFiles int `json:"total_files" yaml:"total_files"`

	// TotalDuration is the time from bundler creation to finalization.
	TotalDuration time.Duration `json:"total_duration" yaml:"total_duration"`

	// Reference is set when the bundle was pushed to a registry.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`

	// Digest is the manifest digest of a pushed bundle.
	Digest string `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Summary returns a human-readable summary of the bundle.
func (o *Output) Summary() string {
	s := fmt.Sprintf("Generated %d files (%s) in %v at %s.",
		o.TotalFiles,
		formatBytes(o.TotalSize),
		o.TotalDuration.Round(time.Millisecond),
		o.OutputDir,
	)
	if o.Reference != "" {
		s += fmt.Sprintf(" Pushed to %s@%s.", o.Reference, o.Digest)
	}
	return s
}

// formatBytes formats bytes into human-readable format.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
