// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// puppet-ca-bootstrap installs an externally generated certificate
// authority into the trust store of a Puppet CA service.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/puppet-ca-bootstrap/cmd/puppet-ca-bootstrap@latest
//
// # Usage
//
//	puppet-ca-bootstrap setup --cert-bundle BUNDLE --private-key KEY [FLAGS]
//	puppet-ca-bootstrap revoke --certname NAME [--config CONF]
//
// # Setup Flags
//
//	--cert-bundle   PEM encoded CA certificate bundle [required]
//	--private-key   PEM encoded private key of the signing CA [required]
//	--crl-chain     PEM encoded CRL chain
//	--config        puppet.conf, or a .yaml/.yml/.json settings file
//	--verbose       Print a summary of the installed bundle
//	--version       Output the version
//
// # Global Flags
//
//	--log-format    Diagnostic output format: text (default) or json
//	-q, --quiet     Report errors only, suppressing warnings
//
// # Examples
//
// Install a signing CA, its root and their CRLs:
//
//	puppet-ca-bootstrap setup --cert-bundle bundle.pem --private-key key.pem --crl-chain crls.pem
//
// Install into a non-default location described by puppet.conf:
//
//	puppet-ca-bootstrap setup --cert-bundle bundle.pem --private-key key.pem --config /etc/puppetlabs/puppet/puppet.conf
//
// Revoke an agent certificate on the running CA:
//
//	puppet-ca-bootstrap revoke --certname agent01.example.com
//
// The exit status is 0 on success and 1 on any validation, configuration or
// I/O failure; nothing is written when validation fails.
package main
