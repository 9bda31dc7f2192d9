// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package testpki builds throwaway certificate authorities, keys and CRLs for
// tests. It mirrors the layout an operator would hand to the bootstrap: a
// self-signed root "foo", an intermediate "bar" signed by it, and one CRL per
// authority.
package testpki

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha1"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Authority is a certificate together with its private key.
type Authority struct {
	Key  crypto.Signer
	Cert *x509.Certificate
}

// NewKey generates a P-256 key.
func NewKey(t testing.TB) crypto.Signer {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err, "failed to generate key")
	return key
}

// NewRoot creates a self-signed CA named cn.
func NewRoot(t testing.TB, cn string) *Authority {
	t.Helper()
	key := NewKey(t)
	return &Authority{Key: key, Cert: sign(t, cn, key, nil)}
}

// Issue creates a CA named cn signed by a.
func (a *Authority) Issue(t testing.TB, cn string) *Authority {
	t.Helper()
	key := NewKey(t)
	return &Authority{Key: key, Cert: sign(t, cn, key, a)}
}

// IssueWithValidity creates a CA named cn signed by a with an explicit validity window.
func (a *Authority) IssueWithValidity(t testing.TB, cn string, notBefore, notAfter time.Time) *Authority {
	t.Helper()
	key := NewKey(t)
	tmpl := template(cn, key)
	tmpl.NotBefore = notBefore
	tmpl.NotAfter = notAfter
	return &Authority{Key: key, Cert: create(t, tmpl, key, a)}
}

// CRL issues a CRL valid from one second ago for 100 hours, revoking the given certificates.
func (a *Authority) CRL(t testing.TB, revoked ...*x509.Certificate) *x509.RevocationList {
	t.Helper()
	now := time.Now()
	return a.CRLWithWindow(t, now.Add(-time.Second), now.Add(100*time.Hour), revoked...)
}

// CRLWithWindow issues a CRL with explicit this-update and next-update times.
func (a *Authority) CRLWithWindow(t testing.TB, thisUpdate, nextUpdate time.Time, revoked ...*x509.Certificate) *x509.RevocationList {
	t.Helper()

	entries := make([]x509.RevocationListEntry, 0, len(revoked))
	for _, c := range revoked {
		entries = append(entries, x509.RevocationListEntry{
			SerialNumber:   c.SerialNumber,
			RevocationTime: thisUpdate,
			ReasonCode:     1, // keyCompromise
		})
	}

	der, err := x509.CreateRevocationList(rand.Reader, &x509.RevocationList{
		Number:                    big.NewInt(int64(len(revoked))),
		ThisUpdate:                thisUpdate,
		NextUpdate:                nextUpdate,
		RevokedCertificateEntries: entries,
	}, a.Cert, a.Key)
	require.NoError(t, err, "failed to create CRL")

	crl, err := x509.ParseRevocationList(der)
	require.NoError(t, err, "failed to parse CRL")
	return crl
}

// IssueServer creates a TLS server certificate for localhost and 127.0.0.1 signed by a.
func (a *Authority) IssueServer(t testing.TB, cn string) *Authority {
	t.Helper()
	key := NewKey(t)
	tmpl := template(cn, key)
	tmpl.IsCA = false
	tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	tmpl.DNSNames = []string{"localhost"}
	tmpl.IPAddresses = []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}
	return &Authority{Key: key, Cert: create(t, tmpl, key, a)}
}

// TLSCertificate pairs a with the intermediates a server should present.
func (a *Authority) TLSCertificate(intermediates ...*Authority) tls.Certificate {
	chain := [][]byte{a.Cert.Raw}
	for _, i := range intermediates {
		chain = append(chain, i.Cert.Raw)
	}
	return tls.Certificate{Certificate: chain, PrivateKey: a.Key, Leaf: a.Cert}
}

// KeyPEM returns the key of a as a PKCS #8 PEM block.
func (a *Authority) KeyPEM(t testing.TB) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(a.Key)
	require.NoError(t, err, "failed to marshal key")
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// CertPEM returns the certificate of a as PEM.
func (a *Authority) CertPEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: a.Cert.Raw})
}

// CRLPEM encodes crl as PEM.
func CRLPEM(crl *x509.RevocationList) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "X509 CRL", Bytes: crl.Raw})
}

// WriteFile writes the concatenation of parts to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, parts ...[]byte) string {
	t.Helper()
	var data []byte
	for _, p := range parts {
		data = append(data, p...)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0600), "failed to write %s", name)
	return path
}

// Fixture is the canonical bootstrap input: bundle [bar, foo], bar's key and
// CRLs [bar, foo], written below a temporary directory.
type Fixture struct {
	Root, Leaf *Authority
	RootCRL    *x509.RevocationList
	LeafCRL    *x509.RevocationList

	Dir        string
	BundlePath string
	KeyPath    string
	CRLPath    string
}

// NewFixture creates the canonical fixture in a fresh temporary directory.
func NewFixture(t testing.TB) *Fixture {
	t.Helper()

	root := NewRoot(t, "foo")
	leaf := root.Issue(t, "bar")
	f := &Fixture{
		Root:    root,
		Leaf:    leaf,
		RootCRL: root.CRL(t),
		LeafCRL: leaf.CRL(t),
		Dir:     t.TempDir(),
	}

	f.BundlePath = WriteFile(t, f.Dir, "bundle.pem", leaf.CertPEM(), root.CertPEM())
	f.KeyPath = WriteFile(t, f.Dir, "key.pem", leaf.KeyPEM(t))
	f.CRLPath = WriteFile(t, f.Dir, "chain.pem", CRLPEM(f.LeafCRL), CRLPEM(f.RootCRL))
	return f
}

// Bundle returns the fixture certificates in file order.
func (f *Fixture) Bundle() []*x509.Certificate {
	return []*x509.Certificate{f.Leaf.Cert, f.Root.Cert}
}

// CRLs returns the fixture CRLs in file order.
func (f *Fixture) CRLs() []*x509.RevocationList {
	return []*x509.RevocationList{f.LeafCRL, f.RootCRL}
}

func template(cn string, key crypto.Signer) *x509.Certificate {
	serial, _ := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 127))
	pub, _ := x509.MarshalPKIXPublicKey(key.Public())
	ski := sha1.Sum(pub)

	return &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now().Add(-time.Second),
		NotAfter:              time.Now().Add(100 * time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		SubjectKeyId:          ski[:],
	}
}

func sign(t testing.TB, cn string, key crypto.Signer, issuer *Authority) *x509.Certificate {
	t.Helper()
	return create(t, template(cn, key), key, issuer)
}

func create(t testing.TB, tmpl *x509.Certificate, key crypto.Signer, issuer *Authority) *x509.Certificate {
	t.Helper()

	parent, signer := tmpl, key
	if issuer != nil {
		parent, signer = issuer.Cert, issuer.Key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, key.Public(), signer)
	require.NoError(t, err, "failed to create certificate %q", tmpl.Subject.CommonName)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err, "failed to parse certificate %q", tmpl.Subject.CommonName)
	return cert
}
