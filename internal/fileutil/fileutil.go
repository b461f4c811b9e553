// Package fileutil provides file and path helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrEmptyPath              = errors.New("path cannot be empty")
)

// tempPrefix names temp files so stray ones are recognizable.
const tempPrefix = "scribe-"

// WriteFile creates or truncates path and writes data to it. The file
// is always closed; a close failure is joined with any write failure.
// A partially written file is left in place on error.
func WriteFile(path string, data []byte) (err error) {
	if path == "" {
		return ErrEmptyPath
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) // #nosec G302 G304 -- output is a user document
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("closing %s: %w", path, cerr))
		}
	}()

	if _, werr := f.Write(data); werr != nil {
		return fmt.Errorf("writing %s: %w", path, werr)
	}
	return nil
}

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", tempPrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, writeErr := tmpFile.WriteString(content)
	closeErr := tmpFile.Close()
	if err := multierr.Combine(writeErr, closeErr); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather
// than a bare name, i.e. it contains a path separator.
//
// Examples:
//   - "scribe" -> false (name)
//   - "./scribe.yaml" -> true
//   - "C:\cfg\scribe.yaml" -> true
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
