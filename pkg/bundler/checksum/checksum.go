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

package checksum

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ChecksumFileName is the standard name for checksum files.
const ChecksumFileName = "checksums.txt"

// GenerateChecksums writes checksums.txt into bundleDir with one SHA-256
// line per file, sorted by path relative to bundleDir, in the format
// understood by "sha256sum -c".
func GenerateChecksums(ctx context.Context, bundleDir string, files []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	lines := make([]string, 0, len(files))
	for _, file := range files {
		sum, err := fileSum(file)
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(bundleDir, file)
		if err != nil {
			relPath = file
		}
		lines = append(lines, fmt.Sprintf("%s  %s", sum, filepath.ToSlash(relPath)))
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i][66:] < lines[j][66:]
	})

	checksumPath := GetChecksumFilePath(bundleDir)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(checksumPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}

	slog.Debug("checksums generated",
		"file_count", len(lines),
		"path", checksumPath,
	)
	return nil
}

// VerifyChecksums checks every entry of bundleDir's checksums.txt against
// the file on disk and returns the first mismatch.
func VerifyChecksums(ctx context.Context, bundleDir string) error {
	data, err := os.ReadFile(GetChecksumFilePath(bundleDir))
	if err != nil {
		return fmt.Errorf("failed to read checksums: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		want, rel, ok := strings.Cut(line, "  ")
		if !ok || len(want) != sha256.Size*2 {
			return fmt.Errorf("invalid checksum line %d: %q", lineNo, line)
		}
		got, err := fileSum(filepath.Join(bundleDir, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("checksum mismatch for %s", rel)
		}
	}
	return scanner.Err()
}

// GetChecksumFilePath returns the full path to the checksums.txt file
// in the given bundle directory.
func GetChecksumFilePath(bundleDir string) string {
	return filepath.Join(bundleDir, ChecksumFileName)
}

func fileSum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s for checksum: %w", path, err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
