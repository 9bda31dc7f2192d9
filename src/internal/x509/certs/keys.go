// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/helpers/derhelpers"
)

var (
	// ErrParsePrivateKey indicates a failure to parse a private key block.
	ErrParsePrivateKey = errors.New("x509certs: failed to parse private key")

	// ErrEncryptedPrivateKey indicates a passphrase protected PEM key, which is not supported.
	ErrEncryptedPrivateKey = errors.New("x509certs: encrypted private keys are not supported")

	// ErrUnsupportedKey indicates a key algorithm other than RSA, ECDSA or Ed25519.
	ErrUnsupportedKey = errors.New("x509certs: unsupported private key type")

	// ErrKeyMismatch indicates that the public half embedded in a private key
	// does not verify signatures made by the private half.
	ErrKeyMismatch = errors.New("x509certs: private key failed signature verification")
)

// IsPrivateKeyBlock reports whether a PEM block type denotes a private key.
func IsPrivateKeyBlock(blockType string) bool {
	switch blockType {
	case BlockPrivateKey, BlockRSAKey, BlockECKey:
		return true
	}
	return false
}

// PrivateKey is an immutable asymmetric private key together with the PEM
// block it was decoded from.
type PrivateKey struct {
	signer crypto.Signer
	block  *pem.Block
}

// NewPrivateKey wraps signer and serializes it as a PKCS #8 "PRIVATE KEY" block.
func NewPrivateKey(signer crypto.Signer) (*PrivateKey, error) {
	der, err := x509.MarshalPKCS8PrivateKey(signer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}
	return &PrivateKey{
		signer: signer,
		block:  &pem.Block{Type: BlockPrivateKey, Bytes: der},
	}, nil
}

// ParsePrivateKey parses an RSA, ECDSA or Ed25519 private key held in a
// PKCS #1, PKCS #8 or SEC 1 container.
func (c *Codec) ParsePrivateKey(block *pem.Block) (*PrivateKey, error) {
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if !IsPrivateKeyBlock(block.Type) {
		return nil, ErrInvalidBlockType
	}
	//lint:ignore SA1019 legacy encrypted PEM must be rejected, not decrypted
	if x509.IsEncryptedPEMBlock(block) {
		return nil, ErrEncryptedPrivateKey
	}

	signer, err := derhelpers.ParsePrivateKeyDER(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsePrivateKey, err)
	}

	switch signer.(type) {
	case *rsa.PrivateKey, *ecdsa.PrivateKey, ed25519.PrivateKey:
	default:
		return nil, ErrUnsupportedKey
	}

	return &PrivateKey{signer: signer, block: block}, nil
}

// Public returns the public half of the key.
func (k *PrivateKey) Public() crypto.PublicKey { return k.signer.Public() }

// Matches reports whether cert carries the public half of this key.
func (k *PrivateKey) Matches(cert *x509.Certificate) bool {
	if k == nil || cert == nil {
		return false
	}
	pub, ok := k.Public().(interface{ Equal(crypto.PublicKey) bool })
	return ok && pub.Equal(cert.PublicKey)
}

// EncodePEM returns the key in the PEM form it was read from.
func (k *PrivateKey) EncodePEM() []byte { return pem.EncodeToMemory(k.block) }

// Verify ensures that the public key embedded in the private key actually
// belongs to it by signing a fixed message and verifying the signature.
func (k *PrivateKey) Verify() error {
	digest := sha256.Sum256([]byte("verifiable"))

	switch key := k.signer.(type) {
	case *rsa.PrivateKey:
		if err := key.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrKeyMismatch, err)
		}
		sig, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrKeyMismatch, err)
		}
		if err := rsa.VerifyPSS(&key.PublicKey, crypto.SHA256, digest[:], sig, nil); err != nil {
			return fmt.Errorf("%w: %v", ErrKeyMismatch, err)
		}
	case *ecdsa.PrivateKey:
		sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrKeyMismatch, err)
		}
		if !ecdsa.VerifyASN1(&key.PublicKey, digest[:], sig) {
			return ErrKeyMismatch
		}
	case ed25519.PrivateKey:
		sig := ed25519.Sign(key, digest[:])
		if !ed25519.Verify(key.Public().(ed25519.PublicKey), digest[:], sig) {
			return ErrKeyMismatch
		}
	default:
		// This should never happen.
		return ErrUnsupportedKey
	}

	return nil
}
