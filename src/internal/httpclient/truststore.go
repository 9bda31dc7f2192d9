// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/chain"
)

var (
	// ErrNoTrustAnchors indicates a CA bundle without certificates.
	ErrNoTrustAnchors = errors.New("httpclient: no certificates in CA bundle")

	// ErrNoPeerCertificate indicates a server that presented no certificate.
	ErrNoPeerCertificate = errors.New("httpclient: server presented no certificate")
)

// TrustStore holds the CA certificates and CRLs used to verify the server.
//
// Self-signed bundle certificates are trust anchors; the others only help
// build the chain, so every verified chain ends at a root.
type TrustStore struct {
	roots         *x509.CertPool
	intermediates []*x509.Certificate
	checker       *x509chain.RevocationChecker
}

// NewTrustStore builds a trust store from PEM data.
//
// Parameters:
//   - bundlePEM: One or more CA certificates
//   - crlPEM: CRL chain, ignored when mode is CRLNone
//   - mode: How much of the server chain is checked against the CRLs
//
// Returns:
//   - *TrustStore: Trust store ready for [TrustStore.TLSConfig]
//   - error: Error if the bundle or a CRL cannot be parsed
func NewTrustStore(bundlePEM, crlPEM []byte, mode x509chain.CRLMode) (*TrustStore, error) {
	codec := x509certs.New()

	certs, err := codec.DecodeMultiple(bundlePEM)
	if err != nil {
		return nil, fmt.Errorf("httpclient: CA bundle: %w", err)
	}
	if len(certs) == 0 {
		return nil, ErrNoTrustAnchors
	}

	roots := x509.NewCertPool()
	var intermediates []*x509.Certificate
	for _, cert := range certs {
		if x509chain.IsSelfIssued(cert) {
			roots.AddCert(cert)
		} else {
			intermediates = append(intermediates, cert)
		}
	}
	// A bundle without a root is trusted as given.
	if len(intermediates) == len(certs) {
		for _, cert := range certs {
			roots.AddCert(cert)
		}
		intermediates = nil
	}

	var crls []*x509.RevocationList
	if mode != x509chain.CRLNone {
		rest := crlPEM
		for n := 1; ; n++ {
			var block *pem.Block
			block, rest = pem.Decode(rest)
			if block == nil {
				break
			}
			if block.Type != x509certs.BlockCRL {
				continue
			}
			crl, err := codec.ParseCRL(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("httpclient: CRL %d: %w", n, err)
			}
			crls = append(crls, crl)
		}
	}

	return &TrustStore{
		roots:         roots,
		intermediates: intermediates,
		checker:       x509chain.NewRevocationChecker(crls, mode, nil),
	}, nil
}

// LoadTrustStore reads the CA bundle and CRL chain from disk.
//
// The CRL file is not read when mode is CRLNone.
func LoadTrustStore(bundlePath, crlPath string, mode x509chain.CRLMode) (*TrustStore, error) {
	bundle, err := readFile(bundlePath)
	if err != nil {
		return nil, err
	}

	var crls []byte
	if mode != x509chain.CRLNone {
		if crls, err = readFile(crlPath); err != nil {
			return nil, err
		}
	}
	return NewTrustStore(bundle, crls, mode)
}

// TLSConfig returns a client TLS configuration that trusts only the store.
func (ts *TrustStore) TLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		// The default verifier would accept chains ending at an
		// intermediate, so verifyConnection replaces it.
		InsecureSkipVerify: true,
		VerifyConnection:   ts.verifyConnection,
	}
}

// verifyConnection verifies the server chain against the store and accepts
// the connection when any verified chain passes CRL checking.
func (ts *TrustStore) verifyConnection(cs tls.ConnectionState) error {
	if len(cs.PeerCertificates) == 0 {
		return ErrNoPeerCertificate
	}

	pool := x509.NewCertPool()
	for _, cert := range ts.intermediates {
		pool.AddCert(cert)
	}
	for _, cert := range cs.PeerCertificates[1:] {
		pool.AddCert(cert)
	}

	chains, err := cs.PeerCertificates[0].Verify(x509.VerifyOptions{
		DNSName:       cs.ServerName,
		Roots:         ts.roots,
		Intermediates: pool,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})
	if err != nil {
		return err
	}

	var lastErr error
	for _, chain := range chains {
		if lastErr = ts.checker.Check(chain); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// readFile reads path through a pooled buffer.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %w", err)
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()         // Reset the buffer to prevent data leaks
		gc.Default.Put(buf) // Return the buffer to the pool for reuse
	}()

	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("httpclient: read %s: %w", path, err)
	}
	return append([]byte(nil), buf.Bytes()...), nil
}
