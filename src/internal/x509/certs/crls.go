// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// ErrParseCRL indicates a failure to parse a certificate revocation list.
var ErrParseCRL = errors.New("x509certs: failed to parse CRL")

// ParseCRL parses a single DER encoded certificate revocation list.
func (c *Codec) ParseCRL(der []byte) (*x509.RevocationList, error) {
	crl, err := x509.ParseRevocationList(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCRL, err)
	}
	return crl, nil
}

// EncodeCRLPEM encodes a CRL to PEM format.
func (c *Codec) EncodeCRLPEM(crl *x509.RevocationList) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  c.crlBlockType,
		Bytes: crl.Raw,
	})
}

// EncodeMultipleCRLPEM encodes multiple CRLs to PEM format, preserving order.
func (c *Codec) EncodeMultipleCRLPEM(crls []*x509.RevocationList) []byte {
	var data []byte

	for _, crl := range crls {
		data = append(data, c.EncodeCRLPEM(crl)...)
	}

	return data
}
