// Package validation checks user-supplied command inputs before the pipeline
// runs, so failures surface as clear messages instead of mid-import errors.
package validation

import (
	"fmt"
	"os"

	"fjacquet/bank-import/internal/oldfilter"
)

// IsValidInputPath checks if a given path exists and is a regular file or directory.
func IsValidInputPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'json', 'yaml'", format)
	}
}

// IsValidFilterMode checks that an old-transaction filter mode is one the
// filter understands. An empty mode is allowed; it means "use the configured
// mode".
func IsValidFilterMode(mode string) error {
	switch oldfilter.Mode(mode) {
	case "", oldfilter.ModeDoNotIgnore, oldfilter.ModeIgnoreAll, oldfilter.ModeIgnoreDuplicates:
		return nil
	default:
		return fmt.Errorf("unsupported filter mode: %s. Supported modes are 'do-not-ignore', 'ignore-all', 'ignore-duplicates'", mode)
	}
}

// IsValidCurrencyCode checks that a currency code looks like an ISO 4217 code:
// three ASCII letters. An empty code is allowed; it means "use the default".
func IsValidCurrencyCode(code string) error {
	if code == "" {
		return nil
	}
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code: %s (must be three letters)", code)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return fmt.Errorf("invalid currency code: %s (must be three letters)", code)
		}
	}
	return nil
}
