// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the Puppet CA bootstrap.
// It implements a Cobra-based CLI with two subcommands: setup, which validates
// and installs an externally generated CA bundle, private key and CRL chain,
// and revoke, which asks a running CA service to revoke certificates.
// Diagnostics are written through the logger package, either as headed text
// blocks or as JSON records.
package cli
