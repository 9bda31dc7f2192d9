// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain implements the consistency checks run on externally
// generated [X.509] CA material before it is installed. It provides
// capabilities to:
//   - Index a certificate bundle by subject name, whatever order it came in.
//   - Validate that the private key matches a certificate and that every
//     certificate's issuer is present in the bundle.
//   - Attribute [CRL]s to bundle issuers and flag expired ones.
//   - Check peer chains against a CRL set for the HTTPS client.
//   - Render an installed bundle as a table.
//
// [X.509]: https://grokipedia.com/page/X.509
// [CRL]: https://grokipedia.com/page/Certificate_revocation_list
package x509chain
