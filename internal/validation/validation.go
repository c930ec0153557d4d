// Package validation checks user supplied paths and options before any work
// starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-report/internal/parsererror"
)

// OutputFormats lists the accepted report formats.
var OutputFormats = []string{"text", "json", "yaml", "yml"}

// IsValidOutputPath checks that path can be used as an output file. It must
// be set, must not be an existing directory and must differ from every
// reserved path, such as the input statement or another output.
func IsValidOutputPath(path string, reserved ...string) error {
	if strings.TrimSpace(path) == "" {
		return &parsererror.ValidationError{Field: "output path", Reason: "must not be empty"}
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return fmt.Errorf("error checking path %s: %w", path, err)
	case info.IsDir():
		return &parsererror.ValidationError{Field: "output path", Reason: path + " is a directory"}
	}

	for _, r := range reserved {
		if r != "" && samePath(path, r) {
			return &parsererror.ValidationError{Field: "output path", Reason: fmt.Sprintf("%s would overwrite %s", path, r)}
		}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return &parsererror.ValidationError{
		Field:  "output format",
		Reason: fmt.Sprintf("unsupported format %q (use text, json or yaml)", format),
	}
}
