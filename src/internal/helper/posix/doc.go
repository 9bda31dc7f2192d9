// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//   - ExecutableName: The same for an explicit argv[0]
//
// Use in cobra command definitions:
//
//	rootCmd := &cobra.Command{
//	    Use:   posix.GetExecutableName(),
//	    Short: "Puppet CA bootstrap",
//	}
//
// Behavior:
//
//   - Linux/macOS: "/opt/puppetlabs/bin/puppet-ca-bootstrap" → "puppet-ca-bootstrap"
//   - Windows: "C:\bin\puppet-ca-bootstrap.exe" → "puppet-ca-bootstrap"
//   - Fallback: Empty args → "puppet-ca-bootstrap"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
