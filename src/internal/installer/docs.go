// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package installer writes validated CA material into the trust store.
//
// The certificate bundle, the private key and the CRL chain are written, in
// that order, to their destinations as PEM. Existing files are truncated.
// Writes are not transactional: when a later write fails, earlier files keep
// their new content.
package installer
