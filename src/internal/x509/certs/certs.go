// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

// PEM block types understood by the codec.
const (
	BlockCertificate = "CERTIFICATE"
	BlockPKCS7       = "PKCS7"
	BlockCRL         = "X509 CRL"
	BlockPrivateKey  = "PRIVATE KEY"
	BlockRSAKey      = "RSA PRIVATE KEY"
	BlockECKey       = "EC PRIVATE KEY"
	BlockECParams    = "EC PARAMETERS"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

// Parser turns decoded PEM payloads into typed objects.
//
// The loader depends on this interface only, so validation logic can be
// exercised against fixture objects without the real parser.
type Parser interface {
	// ParseCertificate parses a single DER encoded certificate.
	ParseCertificate(der []byte) (*x509.Certificate, error)
	// ParsePKCS7 extracts the certificates of a DER encoded PKCS7 bundle.
	ParsePKCS7(der []byte) ([]*x509.Certificate, error)
	// ParsePrivateKey parses a PEM private key block.
	ParsePrivateKey(block *pem.Block) (*PrivateKey, error)
	// ParseCRL parses a single DER encoded certificate revocation list.
	ParseCRL(der []byte) (*x509.RevocationList, error)
}

// Codec provides methods to decode and encode [X.509] certificates, keys and CRLs.
// It maintains internal configuration such as the block types it emits.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Codec struct {
	certBlockType string
	crlBlockType  string
}

// New creates a new Codec with default settings.
func New() *Codec {
	return &Codec{
		certBlockType: BlockCertificate,
		crlBlockType:  BlockCRL,
	}
}

var _ Parser = (*Codec)(nil)

// IsPEM checks if the data is in PEM format.
func (c *Codec) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// ParseCertificate parses a single DER encoded certificate.
func (c *Codec) ParseCertificate(der []byte) (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
	}
	return cert, nil
}

// ParsePKCS7 extracts every certificate of a PKCS7 bundle using Cloudflare's library.
func (c *Codec) ParsePKCS7(der []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsePKCS7, err)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	return p.Content.SignedData.Certificates, nil
}

// DecodeMultiple decodes one or more certificates from PEM or DER data.
func (c *Codec) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if !c.IsPEM(data) {
		certs, err := x509.ParseCertificates(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
		}
		return certs, nil
	}

	var certs []*x509.Certificate
	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != c.certBlockType {
			return nil, ErrInvalidBlockType
		}

		cert, err := c.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}

		certs = append(certs, cert)
		data = rest
	}

	return certs, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Codec) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeMultiplePEM encodes multiple certificates to PEM format, preserving order.
func (c *Codec) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}
