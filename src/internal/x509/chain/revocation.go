// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CRLMode selects how much of a verified chain is checked against CRLs.
type CRLMode int

const (
	// CRLNone disables revocation checking.
	CRLNone CRLMode = iota
	// CRLLeaf checks only the end-entity certificate.
	CRLLeaf
	// CRLChain checks every certificate below the trust anchor.
	CRLChain
)

var (
	// ErrUnknownCRLMode indicates an unrecognised revocation checking mode.
	ErrUnknownCRLMode = errors.New("x509chain: unknown CRL checking mode")

	// ErrRevoked indicates a certificate listed on its issuer's CRL.
	ErrRevoked = errors.New("x509chain: certificate revoked")

	// ErrCRLNotFound indicates that no CRL from a certificate's issuer is available.
	ErrCRLNotFound = errors.New("x509chain: unable to get certificate CRL")

	// ErrCRLExpired indicates a CRL past its next-update time.
	ErrCRLExpired = errors.New("x509chain: CRL has expired")

	// ErrCRLSignature indicates a CRL not signed by the certificate's issuer.
	ErrCRLSignature = errors.New("x509chain: CRL signature failure")
)

// ParseCRLMode accepts the values of Puppet's certificate_revocation setting.
func ParseCRLMode(s string) (CRLMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false", "none", "ignore":
		return CRLNone, nil
	case "leaf":
		return CRLLeaf, nil
	case "true", "chain", "":
		return CRLChain, nil
	}
	return CRLNone, fmt.Errorf("%w: %q", ErrUnknownCRLMode, s)
}

// String returns the canonical name of the mode.
func (m CRLMode) String() string {
	switch m {
	case CRLLeaf:
		return "leaf"
	case CRLChain:
		return "chain"
	default:
		return "none"
	}
}

// RevocationChecker checks verified chains against a fixed set of CRLs.
type RevocationChecker struct {
	mode     CRLMode
	byIssuer map[string][]*x509.RevocationList
	now      func() time.Time
}

// NewRevocationChecker indexes crls by issuer name.
//
// Parameters:
//   - crls: CRLs from any number of issuers
//   - mode: How much of each chain to check
//   - now: Source of the current time, time.Now when nil
//
// Returns:
//   - *RevocationChecker: Checker ready for use
func NewRevocationChecker(crls []*x509.RevocationList, mode CRLMode, now func() time.Time) *RevocationChecker {
	if now == nil {
		now = time.Now
	}
	rc := &RevocationChecker{
		mode:     mode,
		byIssuer: make(map[string][]*x509.RevocationList, len(crls)),
		now:      now,
	}
	for _, crl := range crls {
		name := CRLIssuerName(crl)
		rc.byIssuer[name] = append(rc.byIssuer[name], crl)
	}
	return rc
}

// Check verifies a chain ordered leaf first, trust anchor last.
//
// Returns:
//   - error: The first revocation failure, or nil
func (rc *RevocationChecker) Check(chain []*x509.Certificate) error {
	if rc.mode == CRLNone || len(chain) < 2 {
		return nil
	}

	last := len(chain) - 1
	if rc.mode == CRLLeaf {
		last = 1
	}

	for i := 0; i < last; i++ {
		if err := rc.checkOne(chain[i], chain[i+1]); err != nil {
			return fmt.Errorf("%w (%s)", err, SubjectName(chain[i]))
		}
	}
	return nil
}

// checkOne looks cert up in the CRL published by issuer.
func (rc *RevocationChecker) checkOne(cert, issuer *x509.Certificate) error {
	crls := rc.byIssuer[IssuerName(cert)]
	if len(crls) == 0 {
		return ErrCRLNotFound
	}

	var lastErr error
	for _, crl := range crls {
		if err := crl.CheckSignatureFrom(issuer); err != nil {
			lastErr = ErrCRLSignature
			continue
		}
		if !crl.NextUpdate.IsZero() && crl.NextUpdate.Before(rc.now()) {
			return ErrCRLExpired
		}
		for _, entry := range crl.RevokedCertificateEntries {
			if entry.SerialNumber.Cmp(cert.SerialNumber) == 0 {
				return ErrRevoked
			}
		}
		return nil
	}
	return lastErr
}
