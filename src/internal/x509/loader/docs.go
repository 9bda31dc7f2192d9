// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package loader reads the PEM artifacts handed to the CA bootstrap: a
// certificate bundle, a private key and an optional CRL chain. Files may hold
// several concatenated PEM blocks. Every problem found in every file is
// reported through a [diag.Set]; decoding itself is delegated to an
// [x509certs.Parser].
//
// [diag.Set]: https://pkg.go.dev/github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/diag#Set
// [x509certs.Parser]: https://pkg.go.dev/github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/certs#Parser
package loader
