// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config resolves where the CA bootstrap installs its material.
//
// Settings start from the Puppet server defaults and may be overridden by a
// host configuration file. The format is chosen by file extension:
//
//   - .yaml, .yml: a flat YAML map of settings
//   - .json: a flat JSON object of settings
//   - anything else: puppet.conf INI, where the [main], [master] and [server]
//     sections apply in that order
//
// Values may reference other settings as $name or ${name}:
//
//	[master]
//	cadir = $ssldir/ca
//
// When no path is given, the PUPPET_CA_CONFIG_FILE environment variable is
// consulted before falling back to defaults.
package config
