// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
)

// Bundle manages an unordered set of [X.509] certificates indexed by subject.
//
// The index is built once so issuer lookups never depend on where a
// certificate sits in the input file.
//
// [X.509]: https://grokipedia.com/page/X.509
type Bundle struct {
	Certs     []*x509.Certificate
	bySubject map[string][]*x509.Certificate
	leaf      *x509.Certificate
}

// NewBundle indexes certs, keeping their order in Certs.
//
// Parameters:
//   - certs: Certificates in file order
//
// Returns:
//   - *Bundle: New Bundle instance
func NewBundle(certs []*x509.Certificate) *Bundle {
	b := &Bundle{
		Certs:     certs,
		bySubject: make(map[string][]*x509.Certificate, len(certs)),
	}
	for _, cert := range certs {
		key := SubjectName(cert)
		b.bySubject[key] = append(b.bySubject[key], cert)
	}
	return b
}

// HasSubject reports whether some certificate in the bundle has the given subject name.
func (b *Bundle) HasSubject(name string) bool {
	return len(b.bySubject[name]) > 0
}

// IssuerOf returns the certificate in the bundle whose subject is cert's issuer.
//
// For a self-issued certificate the certificate itself is returned.
// Otherwise a certificate other than cert is preferred.
//
// Parameters:
//   - cert: Certificate to find issuer for
//
// Returns:
//   - *x509.Certificate: Issuer certificate, or nil if not found
func (b *Bundle) IssuerOf(cert *x509.Certificate) *x509.Certificate {
	candidates := b.bySubject[IssuerName(cert)]
	if IsSelfIssued(cert) {
		return cert
	}
	for _, c := range candidates {
		if c != cert {
			return c
		}
	}
	return nil
}

// Leaf returns the certificate matched by the private key, or nil when
// validation has not matched one.
func (b *Bundle) Leaf() *x509.Certificate { return b.leaf }

// IsSelfIssued reports whether cert names itself as issuer.
func IsSelfIssued(cert *x509.Certificate) bool {
	return SubjectName(cert) == IssuerName(cert)
}

// SubjectName returns the comparable string form of cert's subject.
func SubjectName(cert *x509.Certificate) string {
	return nameString(cert.RawSubject, cert.Subject)
}

// IssuerName returns the comparable string form of cert's issuer.
func IssuerName(cert *x509.Certificate) string {
	return nameString(cert.RawIssuer, cert.Issuer)
}

// CRLIssuerName returns the comparable string form of crl's issuer.
func CRLIssuerName(crl *x509.RevocationList) string {
	return nameString(crl.RawIssuer, crl.Issuer)
}

// nameString renders a distinguished name in RFC 2253 form.
//
// The raw DER is preferred because it keeps attributes pkix.Name does not
// model; hand-built certificates without raw bytes fall back to the parsed name.
func nameString(raw []byte, name pkix.Name) string {
	if len(raw) > 0 {
		var rdn pkix.RDNSequence
		if rest, err := asn1.Unmarshal(raw, &rdn); err == nil && len(rest) == 0 {
			return rdn.String()
		}
	}
	return name.String()
}
