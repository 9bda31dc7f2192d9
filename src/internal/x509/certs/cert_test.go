// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509certs "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/testpki"
)

const (
	invalidPEM = `
-----BEGIN INVALID-----
MIIEmTCCBD+gAwIBAgIRANFjRCmF+Y2bUYHbhxwkEpowCgYIKoZIzj0EAwIwgY8x
-----END INVALID-----
`

	invalidCERT = `
-----BEGIN CERTIFICATE-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAz6e5VV5F8rF2sFJ0Q4vA
-----END CERTIFICATE-----
`
)

func TestCertificateOperations(t *testing.T) {
	root := testpki.NewRoot(t, "foo")
	leaf := root.Issue(t, "bar")

	tests := []struct {
		name     string
		testFunc func(t *testing.T, codec *x509certs.Codec)
	}{
		{
			name: "Parse Certificate",
			testFunc: func(t *testing.T, codec *x509certs.Codec) {
				cert, err := codec.ParseCertificate(leaf.Cert.Raw)
				require.NoError(t, err, "ParseCertificate() error")
				assert.Equal(t, "bar", cert.Subject.CommonName)
				assert.True(t, cert.Equal(leaf.Cert))
			},
		},
		{
			name: "Parse Invalid DER",
			testFunc: func(t *testing.T, codec *x509certs.Codec) {
				_, err := codec.ParseCertificate([]byte("not a certificate"))
				assert.ErrorIs(t, err, x509certs.ErrParseCertificate)
			},
		},
		{
			name: "Encode Multiple Certificates Keeps Order",
			testFunc: func(t *testing.T, codec *x509certs.Codec) {
				encoded := codec.EncodeMultiplePEM([]*x509.Certificate{leaf.Cert, root.Cert})

				certs, err := codec.DecodeMultiple(encoded)
				require.NoError(t, err, "DecodeMultiple() error")
				require.Len(t, certs, 2)
				assert.True(t, certs[0].Equal(leaf.Cert), "expected leaf first")
				assert.True(t, certs[1].Equal(root.Cert), "expected root second")
			},
		},
		{
			name: "Encode PEM Block Type",
			testFunc: func(t *testing.T, codec *x509certs.Codec) {
				block, _ := pem.Decode(codec.EncodePEM(root.Cert))
				require.NotNil(t, block)
				assert.Equal(t, x509certs.BlockCertificate, block.Type)
			},
		},
		{
			name: "Decode DER Bundle",
			testFunc: func(t *testing.T, codec *x509certs.Codec) {
				der := append(append([]byte{}, leaf.Cert.Raw...), root.Cert.Raw...)
				certs, err := codec.DecodeMultiple(der)
				require.NoError(t, err)
				assert.Len(t, certs, 2)
			},
		},
	}

	codec := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t, codec)
		})
	}
}

func TestDecodeMultiple_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "Invalid PEM Type",
			input:    invalidPEM,
			expected: x509certs.ErrInvalidBlockType,
		},
		{
			name:     "Invalid Certificate Data",
			input:    invalidCERT,
			expected: x509certs.ErrParseCertificate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := x509certs.New().DecodeMultiple([]byte(tt.input))
			assert.ErrorIs(t, err, tt.expected, "expected specific error")
		})
	}
}

func TestCodec_IsPEM(t *testing.T) {
	root := testpki.NewRoot(t, "foo")

	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{name: "Valid PEM", input: root.CertPEM(), expected: true},
		{name: "Invalid PEM", input: []byte("not a pem block"), expected: false},
		{name: "Empty Input", input: []byte(""), expected: false},
		{name: "DER format (binary)", input: root.Cert.Raw, expected: false},
	}

	codec := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, codec.IsPEM(tt.input), "IsPEM() result incorrect")
		})
	}
}

func TestCodec_ParsePKCS7(t *testing.T) {
	_, err := x509certs.New().ParsePKCS7([]byte("garbage"))
	assert.ErrorIs(t, err, x509certs.ErrParsePKCS7)
}

func TestCodec_CRL(t *testing.T) {
	root := testpki.NewRoot(t, "foo")
	leaf := root.Issue(t, "bar")
	crl := root.CRL(t, leaf.Cert)

	codec := x509certs.New()

	parsed, err := codec.ParseCRL(crl.Raw)
	require.NoError(t, err, "ParseCRL() error")
	require.Len(t, parsed.RevokedCertificateEntries, 1)
	assert.Equal(t, 0, leaf.Cert.SerialNumber.Cmp(parsed.RevokedCertificateEntries[0].SerialNumber))

	encoded := codec.EncodeMultipleCRLPEM([]*x509.RevocationList{crl, crl})
	blocks := 0
	for rest := encoded; len(rest) > 0; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		assert.Equal(t, x509certs.BlockCRL, block.Type)
		blocks++
	}
	assert.Equal(t, 2, blocks)

	_, err = codec.ParseCRL([]byte("not a crl"))
	assert.ErrorIs(t, err, x509certs.ErrParseCRL)
}

func TestCodec_ParsePrivateKey(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ecDER, err := x509.MarshalECPrivateKey(ecKey)
	require.NoError(t, err)
	pkcs8, err := x509.MarshalPKCS8PrivateKey(edKey)
	require.NoError(t, err)

	tests := []struct {
		name      string
		block     *pem.Block
		expectErr error
	}{
		{
			name:  "PKCS1 RSA",
			block: &pem.Block{Type: x509certs.BlockRSAKey, Bytes: x509.MarshalPKCS1PrivateKey(rsaKey)},
		},
		{
			name:  "SEC1 EC",
			block: &pem.Block{Type: x509certs.BlockECKey, Bytes: ecDER},
		},
		{
			name:  "PKCS8 Ed25519",
			block: &pem.Block{Type: x509certs.BlockPrivateKey, Bytes: pkcs8},
		},
		{
			name:      "Wrong Block Type",
			block:     &pem.Block{Type: x509certs.BlockCertificate, Bytes: ecDER},
			expectErr: x509certs.ErrInvalidBlockType,
		},
		{
			name:      "Garbage",
			block:     &pem.Block{Type: x509certs.BlockPrivateKey, Bytes: []byte("garbage")},
			expectErr: x509certs.ErrParsePrivateKey,
		},
		{
			name: "Encrypted",
			block: &pem.Block{
				Type:    x509certs.BlockRSAKey,
				Headers: map[string]string{"Proc-Type": "4,ENCRYPTED", "DEK-Info": "AES-128-CBC,00000000000000000000000000000000"},
				Bytes:   []byte("whatever"),
			},
			expectErr: x509certs.ErrEncryptedPrivateKey,
		},
	}

	codec := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := codec.ParsePrivateKey(tt.block)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, key.Verify(), "key should verify against itself")
			assert.Equal(t, pem.EncodeToMemory(tt.block), key.EncodePEM(), "EncodePEM must reproduce the input block")
		})
	}
}

func TestPrivateKey_Matches(t *testing.T) {
	root := testpki.NewRoot(t, "foo")
	leaf := root.Issue(t, "bar")

	key, err := x509certs.NewPrivateKey(leaf.Key)
	require.NoError(t, err)

	assert.True(t, key.Matches(leaf.Cert), "key should match its own certificate")
	assert.False(t, key.Matches(root.Cert), "key should not match a foreign certificate")
	assert.False(t, key.Matches(nil), "nil certificate never matches")
	pub, ok := key.Public().(*ecdsa.PublicKey)
	require.True(t, ok, "fixture keys are ECDSA")
	assert.True(t, pub.Equal(leaf.Cert.PublicKey), "Public must return the certificate's key")

	block, _ := pem.Decode(key.EncodePEM())
	require.NotNil(t, block)
	assert.Equal(t, x509certs.BlockPrivateKey, block.Type)
}

func TestIsPrivateKeyBlock(t *testing.T) {
	assert.True(t, x509certs.IsPrivateKeyBlock("PRIVATE KEY"))
	assert.True(t, x509certs.IsPrivateKeyBlock("RSA PRIVATE KEY"))
	assert.True(t, x509certs.IsPrivateKeyBlock("EC PRIVATE KEY"))
	assert.False(t, x509certs.IsPrivateKeyBlock("EC PARAMETERS"))
	assert.False(t, x509certs.IsPrivateKeyBlock("CERTIFICATE"))
}
