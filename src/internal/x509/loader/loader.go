// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package loader

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/diag"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/certs"
)

var (
	// ErrNoPEMBlocks indicates a file without any PEM block.
	ErrNoPEMBlocks = errors.New("no PEM blocks found")

	// ErrMalformedPEM indicates a BEGIN marker that could not be decoded.
	ErrMalformedPEM = errors.New("malformed PEM framing")
)

var pemStart = []byte("-----BEGIN ")

// Artifacts holds everything read from the bootstrap input files.
type Artifacts struct {
	// Certificates in file order.
	Certificates []*x509.Certificate
	// Key is the single private key.
	Key *x509certs.PrivateKey
	// CRLs in file order; nil when no CRL chain was given.
	CRLs []*x509.RevocationList
}

// Loader decodes PEM artifacts from disk.
type Loader struct {
	parser x509certs.Parser
}

// New creates a Loader using parser, or the default codec when parser is nil.
func New(parser x509certs.Parser) *Loader {
	if parser == nil {
		parser = x509certs.New()
	}
	return &Loader{parser: parser}
}

// CheckReadable reports every path that does not exist or cannot be read.
// No path is parsed.
func CheckReadable(paths ...string) diag.Set {
	var errs diag.Set
	for _, path := range paths {
		if !readable(path) {
			errs.Addf("Could not read file '%s'", path)
		}
	}
	return errs
}

func readable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Load reads the certificate bundle, the private key and, when crlChain is
// not empty, the CRL chain. Errors from all three files are combined.
func (l *Loader) Load(bundle, key, crlChain string) (*Artifacts, diag.Set) {
	var errs diag.Set
	art := &Artifacts{}

	certs, certErrs := l.Certificates(bundle)
	errs.Merge(certErrs)
	art.Certificates = certs

	k, keyErrs := l.PrivateKey(key)
	errs.Merge(keyErrs)
	art.Key = k

	if crlChain != "" {
		crls, crlErrs := l.CRLs(crlChain)
		errs.Merge(crlErrs)
		art.CRLs = crls
	}

	if !errs.Empty() {
		return nil, errs
	}
	return art, nil
}

// Certificates decodes every certificate in path, in file order.
// PKCS7 blocks contribute all the certificates they carry.
func (l *Loader) Certificates(path string) ([]*x509.Certificate, diag.Set) {
	blocks, errs := readBlocks(path)
	if !errs.Empty() {
		return nil, errs
	}

	var certs []*x509.Certificate
	for i, block := range blocks {
		switch block.Type {
		case x509certs.BlockCertificate:
			cert, err := l.parser.ParseCertificate(block.Bytes)
			if err != nil {
				errs.Addf("Could not parse certificate %d in '%s': %v", i+1, path, err)
				continue
			}
			certs = append(certs, cert)
		case x509certs.BlockPKCS7:
			bundle, err := l.parser.ParsePKCS7(block.Bytes)
			if err != nil {
				errs.Addf("Could not parse certificate %d in '%s': %v", i+1, path, err)
				continue
			}
			certs = append(certs, bundle...)
		default:
			errs.Addf("Could not parse '%s': block %d has unexpected type '%s'", path, i+1, block.Type)
		}
	}

	if !errs.Empty() {
		return nil, errs
	}
	return certs, nil
}

// PrivateKey decodes the single private key in path. A leading EC PARAMETERS
// block is ignored; zero or several key blocks are an error.
func (l *Loader) PrivateKey(path string) (*x509certs.PrivateKey, diag.Set) {
	blocks, errs := readBlocks(path)
	if !errs.Empty() {
		return nil, errs
	}

	var keys []*pem.Block
	for i, block := range blocks {
		switch {
		case x509certs.IsPrivateKeyBlock(block.Type):
			keys = append(keys, block)
		case block.Type == x509certs.BlockECParams:
		default:
			errs.Addf("Could not parse '%s': block %d has unexpected type '%s'", path, i+1, block.Type)
		}
	}

	switch len(keys) {
	case 0:
		errs.Addf("No private key found in '%s'", path)
	case 1:
		key, err := l.parser.ParsePrivateKey(keys[0])
		if err != nil {
			errs.Addf("Could not parse private key in '%s': %v", path, err)
			break
		}
		if errs.Empty() {
			return key, nil
		}
	default:
		errs.Addf("Found %d private keys in '%s', expected exactly one", len(keys), path)
	}

	return nil, errs
}

// CRLs decodes every CRL in path, in file order.
func (l *Loader) CRLs(path string) ([]*x509.RevocationList, diag.Set) {
	blocks, errs := readBlocks(path)
	if !errs.Empty() {
		return nil, errs
	}

	var crls []*x509.RevocationList
	for i, block := range blocks {
		if block.Type != x509certs.BlockCRL {
			errs.Addf("Could not parse '%s': block %d has unexpected type '%s'", path, i+1, block.Type)
			continue
		}
		crl, err := l.parser.ParseCRL(block.Bytes)
		if err != nil {
			errs.Addf("Could not parse CRL %d in '%s': %v", i+1, path, err)
			continue
		}
		crls = append(crls, crl)
	}

	if !errs.Empty() {
		return nil, errs
	}
	return crls, nil
}

// readBlocks reads path into a pooled buffer and splits it into PEM blocks.
func readBlocks(path string) ([]*pem.Block, diag.Set) {
	var errs diag.Set

	f, err := os.Open(path)
	if err != nil {
		errs.Addf("Could not read file '%s'", path)
		return nil, errs
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()         // Reset the buffer to prevent data leaks
		gc.Default.Put(buf) // Return the buffer to the pool for reuse
	}()

	if _, err := buf.ReadFrom(f); err != nil {
		errs.Addf("Could not read file '%s'", path)
		return nil, errs
	}

	blocks, err := decodeBlocks(buf.Bytes())
	if err != nil {
		errs.Addf("Could not parse '%s': %v", path, err)
		return nil, errs
	}
	return blocks, nil
}

// decodeBlocks returns every PEM block of data in order. The decoded blocks
// do not alias data.
func decodeBlocks(data []byte) ([]*pem.Block, error) {
	var blocks []*pem.Block
	rest := data
	for {
		block, remainder := pem.Decode(rest)
		if block == nil {
			break
		}
		blocks = append(blocks, block)
		rest = remainder
	}

	// pem.Decode skips blocks it cannot frame, so compare against the markers.
	if begins := bytes.Count(data, pemStart); begins > len(blocks) {
		return nil, fmt.Errorf("%w: %d of %d blocks could not be decoded", ErrMalformedPEM, begins-len(blocks), begins)
	}
	if len(blocks) == 0 {
		return nil, ErrNoPEMBlocks
	}
	return blocks, nil
}
