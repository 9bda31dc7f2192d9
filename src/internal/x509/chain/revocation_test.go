// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509chain "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/testpki"
)

func TestParseCRLMode(t *testing.T) {
	tests := []struct {
		input    string
		expected x509chain.CRLMode
		wantErr  bool
	}{
		{input: "chain", expected: x509chain.CRLChain},
		{input: "true", expected: x509chain.CRLChain},
		{input: "", expected: x509chain.CRLChain},
		{input: "leaf", expected: x509chain.CRLLeaf},
		{input: " LEAF ", expected: x509chain.CRLLeaf},
		{input: "false", expected: x509chain.CRLNone},
		{input: "none", expected: x509chain.CRLNone},
		{input: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := x509chain.ParseCRLMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, x509chain.ErrUnknownCRLMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	assert.Equal(t, "none", x509chain.CRLNone.String())
	assert.Equal(t, "leaf", x509chain.CRLLeaf.String())
	assert.Equal(t, "chain", x509chain.CRLChain.String())
}

func TestRevocationChecker(t *testing.T) {
	root := testpki.NewRoot(t, "foo")
	mid := root.Issue(t, "mid")
	server := mid.Issue(t, "server")
	revokedServer := mid.Issue(t, "revoked")

	chain := []*x509.Certificate{server.Cert, mid.Cert, root.Cert}
	revokedChain := []*x509.Certificate{revokedServer.Cert, mid.Cert, root.Cert}

	rootCRL := root.CRL(t)
	midCRL := mid.CRL(t, revokedServer.Cert)
	rootRevokesMid := root.CRL(t, mid.Cert)

	tests := []struct {
		name      string
		crls      []*x509.RevocationList
		mode      x509chain.CRLMode
		chain     []*x509.Certificate
		now       func() time.Time
		expectErr error
	}{
		{
			name:  "None Ignores Everything",
			mode:  x509chain.CRLNone,
			chain: revokedChain,
		},
		{
			name:  "Leaf Good",
			crls:  []*x509.RevocationList{midCRL},
			mode:  x509chain.CRLLeaf,
			chain: chain,
		},
		{
			name:      "Leaf Revoked",
			crls:      []*x509.RevocationList{midCRL},
			mode:      x509chain.CRLLeaf,
			chain:     revokedChain,
			expectErr: x509chain.ErrRevoked,
		},
		{
			name:  "Leaf Mode Skips Intermediate",
			crls:  []*x509.RevocationList{midCRL, rootRevokesMid},
			mode:  x509chain.CRLLeaf,
			chain: chain,
		},
		{
			name:      "Chain Mode Catches Intermediate",
			crls:      []*x509.RevocationList{midCRL, rootRevokesMid},
			mode:      x509chain.CRLChain,
			chain:     chain,
			expectErr: x509chain.ErrRevoked,
		},
		{
			name:  "Chain Good",
			crls:  []*x509.RevocationList{midCRL, rootCRL},
			mode:  x509chain.CRLChain,
			chain: chain,
		},
		{
			name:      "Chain Missing Root CRL",
			crls:      []*x509.RevocationList{midCRL},
			mode:      x509chain.CRLChain,
			chain:     chain,
			expectErr: x509chain.ErrCRLNotFound,
		},
		{
			name:      "Expired CRL",
			crls:      []*x509.RevocationList{midCRL},
			mode:      x509chain.CRLLeaf,
			chain:     chain,
			now:       func() time.Time { return time.Now().Add(200 * time.Hour) },
			expectErr: x509chain.ErrCRLExpired,
		},
		{
			name:      "CRL Signed By Someone Else",
			crls:      []*x509.RevocationList{midCRL},
			mode:      x509chain.CRLLeaf,
			chain:     []*x509.Certificate{server.Cert, root.Cert},
			expectErr: x509chain.ErrCRLSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := x509chain.NewRevocationChecker(tt.crls, tt.mode, tt.now)

			err := rc.Check(tt.chain)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
