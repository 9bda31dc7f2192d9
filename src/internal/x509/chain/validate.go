// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"time"

	"github.com/jmhodges/clock"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/diag"
)

// Diagnostic messages with fixed wording.
const (
	MsgEmptyBundle  = "Certificate bundle is empty"
	MsgNoPrivateKey = "No private key given"
	MsgKeyMismatch  = "Private key and certificate bundle are not matched"
	MsgNoCRLChain   = "No CRL chain given, full CRL chain checking will not be possible"
)

const (
	timeLayout = time.RFC3339

	msgInvalidKey     = "Private key is not valid: %v"
	msgMissingIssuer  = "Could not find issuer '%s' of certificate '%s' in the certificate bundle"
	msgUnattributed   = "Could not find issuer '%s' of CRL in the certificate bundle"
	msgCRLExpired     = "CRL issued by '%s' expired at %s"
	msgCRLNotYetValid = "CRL issued by '%s' is not valid before %s"
	msgCertExpired    = "Certificate '%s' expired at %s"
	msgCertNotYet     = "Certificate '%s' is not valid before %s"
	msgNotCA          = "Certificate '%s' is not a CA certificate"
)

// PrivateKey is the capability the validator needs from a private key.
type PrivateKey interface {
	// Matches reports whether cert carries the public half of the key.
	Matches(cert *x509.Certificate) bool
	// Verify checks that the key is a usable asymmetric key pair.
	Verify() error
}

// Options tunes validation.
type Options struct {
	// Clock supplies the current time for currency checks. Defaults to the wall clock.
	Clock clock.Clock

	// MissingCRLReported suppresses the missing CRL chain warning when the
	// caller has already reported it.
	MissingCRLReported bool
}

// Result is the outcome of Validate.
type Result struct {
	diag.Report

	// Bundle is the indexed certificate bundle.
	Bundle *Bundle
	// Leaf is the first certificate, in bundle order, matching the private key.
	Leaf *x509.Certificate
}

// Validate cross-checks a certificate bundle, its private key and an optional
// CRL chain.
//
// Every check runs regardless of the outcome of the others so the report
// lists all problems at once. A nil crls slice means no CRL chain was given
// and yields a warning. Expired CRLs and certificates are warnings; key
// mismatch, unresolved issuers and unattributed CRLs are errors.
//
// Parameters:
//   - certs: Certificate bundle in file order
//   - key: Private key expected to match one certificate
//   - crls: CRL chain in file order, or nil
//   - opts: Validation options
//
// Returns:
//   - *Result: Errors, warnings, the indexed bundle and the resolved leaf
func Validate(certs []*x509.Certificate, key PrivateKey, crls []*x509.RevocationList, opts Options) *Result {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	now := clk.Now()

	bundle := NewBundle(certs)
	res := &Result{Bundle: bundle}

	if len(certs) == 0 {
		res.Errors.Add(MsgEmptyBundle)
	}

	res.Errors.Merge(checkKey(key))

	leaf, errs := matchKey(bundle, key)
	res.Errors.Merge(errs)
	res.Leaf = leaf
	bundle.leaf = leaf

	res.Errors.Merge(checkChain(bundle))
	res.Errors.Merge(checkCRLIssuers(bundle, crls))

	if crls == nil && !opts.MissingCRLReported {
		res.Warnings.Add(MsgNoCRLChain)
	}
	res.Warnings.Merge(checkCRLCurrency(crls, now))
	res.Warnings.Merge(checkCertificateCurrency(certs, now))
	res.Warnings.Merge(checkCAFlags(certs))

	return res
}

// checkKey verifies that the key is a usable key pair.
func checkKey(key PrivateKey) diag.Set {
	var errs diag.Set
	if key == nil {
		errs.Add(MsgNoPrivateKey)
		return errs
	}
	if err := key.Verify(); err != nil {
		errs.Addf(msgInvalidKey, err)
	}
	return errs
}

// matchKey finds the leaf, the first certificate carrying the key's public half.
func matchKey(b *Bundle, key PrivateKey) (*x509.Certificate, diag.Set) {
	var errs diag.Set
	if key == nil {
		return nil, errs
	}
	for _, cert := range b.Certs {
		if key.Matches(cert) {
			return cert, errs
		}
	}
	errs.Add(MsgKeyMismatch)
	return nil, errs
}

// checkChain reports every non-self-issued certificate whose issuer is not in the bundle.
func checkChain(b *Bundle) diag.Set {
	var errs diag.Set
	for _, cert := range b.Certs {
		if b.IssuerOf(cert) == nil {
			errs.Addf(msgMissingIssuer, IssuerName(cert), SubjectName(cert))
		}
	}
	return errs
}

// checkCRLIssuers reports every CRL whose issuer is not a subject in the bundle.
func checkCRLIssuers(b *Bundle, crls []*x509.RevocationList) diag.Set {
	var errs diag.Set
	for _, crl := range crls {
		if name := CRLIssuerName(crl); !b.HasSubject(name) {
			errs.Addf(msgUnattributed, name)
		}
	}
	return errs
}

// checkCRLCurrency warns about CRLs outside their update window.
func checkCRLCurrency(crls []*x509.RevocationList, now time.Time) diag.Set {
	var warns diag.Set
	for _, crl := range crls {
		switch {
		case !crl.NextUpdate.IsZero() && crl.NextUpdate.Before(now):
			warns.Addf(msgCRLExpired, CRLIssuerName(crl), crl.NextUpdate.UTC().Format(timeLayout))
		case crl.ThisUpdate.After(now):
			warns.Addf(msgCRLNotYetValid, CRLIssuerName(crl), crl.ThisUpdate.UTC().Format(timeLayout))
		}
	}
	return warns
}

// checkCertificateCurrency warns about certificates outside their validity window.
func checkCertificateCurrency(certs []*x509.Certificate, now time.Time) diag.Set {
	var warns diag.Set
	for _, cert := range certs {
		switch {
		case !cert.NotAfter.IsZero() && cert.NotAfter.Before(now):
			warns.Addf(msgCertExpired, SubjectName(cert), cert.NotAfter.UTC().Format(timeLayout))
		case cert.NotBefore.After(now):
			warns.Addf(msgCertNotYet, SubjectName(cert), cert.NotBefore.UTC().Format(timeLayout))
		}
	}
	return warns
}

// checkCAFlags warns about certificates that are not marked as CAs.
func checkCAFlags(certs []*x509.Certificate) diag.Set {
	var warns diag.Set
	for _, cert := range certs {
		if !cert.BasicConstraintsValid || !cert.IsCA {
			warns.Addf(msgNotCA, SubjectName(cert))
		}
	}
	return warns
}
