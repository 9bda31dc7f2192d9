// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package installer

import (
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/certs"
)

const (
	// dirMode is used for parent directories created on demand.
	dirMode os.FileMode = 0o755
	// publicMode is used for the certificate bundle and CRL chain.
	publicMode os.FileMode = 0o644
	// keyMode is used for the private key.
	keyMode os.FileMode = 0o640
)

// Destinations names the files written by [Install].
type Destinations struct {
	CACert string
	CAKey  string
	CACRL  string
}

// KeyEncoder is a private key that can render itself as PEM.
type KeyEncoder interface {
	EncodePEM() []byte
}

// Artifacts is the validated material to install.
type Artifacts struct {
	Certificates []*x509.Certificate
	Key          KeyEncoder
	// CRLs may be empty, in which case an empty CRL file is written.
	CRLs []*x509.RevocationList
}

// Install writes art to dest.
//
// Parameters:
//   - dest: Target paths for the bundle, key and CRL chain
//   - art: Validated certificates, key and CRLs
//
// Returns:
//   - error: The first write failure, or nil
func Install(dest Destinations, art Artifacts) error {
	codec := x509certs.New()

	writes := []struct {
		role   string
		path   string
		mode   os.FileMode
		encode func(buf gc.Buffer)
	}{
		{
			role: "cacert",
			path: dest.CACert,
			mode: publicMode,
			encode: func(buf gc.Buffer) {
				buf.Write(codec.EncodeMultiplePEM(art.Certificates))
			},
		},
		{
			role: "cakey",
			path: dest.CAKey,
			mode: keyMode,
			encode: func(buf gc.Buffer) {
				if art.Key != nil {
					buf.Write(art.Key.EncodePEM())
				}
			},
		},
		{
			role: "cacrl",
			path: dest.CACRL,
			mode: publicMode,
			encode: func(buf gc.Buffer) {
				buf.Write(codec.EncodeMultipleCRLPEM(art.CRLs))
			},
		},
	}

	for _, w := range writes {
		if err := writeFile(w.path, w.mode, w.encode); err != nil {
			return fmt.Errorf("installer: write %s '%s': %w", w.role, w.path, err)
		}
	}
	return nil
}

// writeFile renders content into a pooled buffer and writes it to path,
// truncating any existing file.
func writeFile(path string, mode os.FileMode, encode func(buf gc.Buffer)) error {
	if path == "" {
		return os.ErrInvalid
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()         // Reset the buffer to prevent data leaks
		gc.Default.Put(buf) // Return the buffer to the pool for reuse
	}()

	encode(buf)

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	// OpenFile leaves the mode of an existing file alone.
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}

	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
