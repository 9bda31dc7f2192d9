// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// FallbackName is used when argv[0] carries no usable name.
const FallbackName = "puppet-ca-bootstrap"

// GetExecutableName returns the executable name of the running process
// without directory or .exe extension.
//
// Returns:
//   - string: Clean executable name suitable for CLI usage
func GetExecutableName() string {
	// This literally never happens. If it happens, then it's not an operating system.
	if len(os.Args) == 0 {
		return FallbackName
	}
	return ExecutableName(os.Args[0])
}

// ExecutableName strips the directory and .exe extension from arg0.
//
// Both '/' and '\' are treated as separators so Windows paths resolve the
// same on Unix-like systems.
func ExecutableName(arg0 string) string {
	parts := strings.FieldsFunc(arg0, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return FallbackName
	}

	name := strings.TrimSuffix(parts[len(parts)-1], ".exe")
	if name == "" || name == "." || name == ".." {
		return FallbackName
	}
	return name
}
