// Package fileutils provides the file operations shared by the loader, the
// exporters and the chart sinks.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/budget-report/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory and its parents if needed.
func EnsureDirectoryExists(dirPath string) error {
	if dirPath == "" || DirectoryExists(dirPath) {
		return nil
	}
	if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// CreateFile creates or truncates a report file, creating parent
// directories first.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, models.PermissionReportFile) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// WriteFile writes data to a report file, creating parent directories first.
func WriteFile(filePath string, data []byte) error {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ArtifactPath joins an output directory and a file name; an empty directory
// means the current one.
func ArtifactPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
