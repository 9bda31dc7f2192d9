// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides encoding and decoding of the three kinds of
// objects a CA bootstrap handles: [X.509] certificates, private keys and
// certificate revocation lists. Certificates may also arrive as a [PKCS7]
// bundle. Decoding is exposed through the [Parser] interface so callers can
// substitute fixtures for the real [PEM]/ASN.1 parsing.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
