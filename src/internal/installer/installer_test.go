// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package installer_test

import (
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/installer"
	x509certs "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/loader"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/testpki"
)

func destinations(dir string) installer.Destinations {
	return installer.Destinations{
		CACert: filepath.Join(dir, "ca", "ca_crt.pem"),
		CAKey:  filepath.Join(dir, "ca", "ca_key.pem"),
		CACRL:  filepath.Join(dir, "ca", "ca_crl.pem"),
	}
}

func loadFixture(t *testing.T, f *testpki.Fixture) *loader.Artifacts {
	t.Helper()
	art, errs := loader.New(nil).Load(f.BundlePath, f.KeyPath, f.CRLPath)
	require.Empty(t, errs)
	return art
}

func TestInstall_RoundTrip(t *testing.T) {
	f := testpki.NewFixture(t)
	art := loadFixture(t, f)
	dest := destinations(t.TempDir())

	err := installer.Install(dest, installer.Artifacts{
		Certificates: art.Certificates,
		Key:          art.Key,
		CRLs:         art.CRLs,
	})
	require.NoError(t, err)

	reloaded, errs := loader.New(nil).Load(dest.CACert, dest.CAKey, dest.CACRL)
	require.Empty(t, errs)

	require.Len(t, reloaded.Certificates, 2)
	for i := range art.Certificates {
		assert.True(t, art.Certificates[i].Equal(reloaded.Certificates[i]), "certificate %d differs", i+1)
	}
	require.Len(t, reloaded.CRLs, 2)
	for i := range art.CRLs {
		assert.Equal(t, art.CRLs[i].Raw, reloaded.CRLs[i].Raw, "CRL %d differs", i+1)
	}
	assert.Equal(t, art.Key.EncodePEM(), reloaded.Key.EncodePEM())

	codec := x509certs.New()
	installedCerts, err := os.ReadFile(dest.CACert)
	require.NoError(t, err)
	assert.Equal(t, codec.EncodeMultiplePEM(art.Certificates), installedCerts)
	installedCRLs, err := os.ReadFile(dest.CACRL)
	require.NoError(t, err)
	assert.Equal(t, codec.EncodeMultipleCRLPEM(art.CRLs), installedCRLs)

	keyBytes, err := os.ReadFile(f.KeyPath)
	require.NoError(t, err)
	installedKey, err := os.ReadFile(dest.CAKey)
	require.NoError(t, err)
	assert.Equal(t, keyBytes, installedKey)

	info, err := os.Stat(dest.CAKey)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestInstall_Idempotent(t *testing.T) {
	f := testpki.NewFixture(t)
	art := loadFixture(t, f)
	dest := destinations(t.TempDir())

	in := installer.Artifacts{Certificates: art.Certificates, Key: art.Key, CRLs: art.CRLs}

	read := func() [][]byte {
		var out [][]byte
		for _, p := range []string{dest.CACert, dest.CAKey, dest.CACRL} {
			b, err := os.ReadFile(p)
			require.NoError(t, err)
			out = append(out, b)
		}
		return out
	}

	require.NoError(t, installer.Install(dest, in))
	first := read()
	require.NoError(t, installer.Install(dest, in))
	assert.Equal(t, first, read())
}

func TestInstall_TruncatesExisting(t *testing.T) {
	f := testpki.NewFixture(t)
	art := loadFixture(t, f)
	dest := destinations(t.TempDir())

	require.NoError(t, os.MkdirAll(filepath.Dir(dest.CACert), 0o755))
	require.NoError(t, os.WriteFile(dest.CACRL, []byte("stale stale stale stale stale"), 0o644))
	require.NoError(t, os.WriteFile(dest.CAKey, []byte("old"), 0o600))

	require.NoError(t, installer.Install(dest, installer.Artifacts{
		Certificates: art.Certificates,
		Key:          art.Key,
	}))

	crl, err := os.ReadFile(dest.CACRL)
	require.NoError(t, err)
	assert.Empty(t, crl)

	info, err := os.Stat(dest.CAKey)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestInstall_Failures(t *testing.T) {
	f := testpki.NewFixture(t)
	art := loadFixture(t, f)
	in := installer.Artifacts{Certificates: art.Certificates, Key: art.Key, CRLs: art.CRLs}

	tests := []struct {
		name        string
		mutate      func(t *testing.T, dest *installer.Destinations)
		expectErr   string
		expectFiles []bool
	}{
		{
			name: "Key Destination Is Directory",
			mutate: func(t *testing.T, dest *installer.Destinations) {
				require.NoError(t, os.MkdirAll(dest.CAKey, 0o755))
			},
			expectErr:   "installer: write cakey",
			expectFiles: []bool{true, false, false},
		},
		{
			name: "Parent Is File",
			mutate: func(t *testing.T, dest *installer.Destinations) {
				require.NoError(t, os.MkdirAll(filepath.Dir(dest.CACert), 0o755))
				blocker := filepath.Join(filepath.Dir(dest.CACert), "blocker")
				require.NoError(t, os.WriteFile(blocker, nil, 0o644))
				dest.CACert = filepath.Join(blocker, "ca_crt.pem")
			},
			expectErr:   "installer: write cacert",
			expectFiles: []bool{false, false, false},
		},
		{
			name: "Empty CRL Destination",
			mutate: func(t *testing.T, dest *installer.Destinations) {
				dest.CACRL = ""
			},
			expectErr:   "installer: write cacrl ''",
			expectFiles: []bool{true, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := destinations(t.TempDir())
			tt.mutate(t, &dest)

			err := installer.Install(dest, in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)

			for i, p := range []string{dest.CACert, dest.CAKey, dest.CACRL} {
				if p == "" {
					continue
				}
				info, statErr := os.Stat(p)
				exists := statErr == nil && info.Mode().IsRegular()
				assert.Equal(t, tt.expectFiles[i], exists, "file %s", p)
			}
		})
	}
}

func TestInstall_CertificateOrder(t *testing.T) {
	f := testpki.NewFixture(t)
	art := loadFixture(t, f)
	dest := destinations(t.TempDir())

	reversed := []*x509.Certificate{art.Certificates[1], art.Certificates[0]}
	require.NoError(t, installer.Install(dest, installer.Artifacts{Certificates: reversed, Key: art.Key}))

	reloaded, errs := loader.New(nil).Certificates(dest.CACert)
	require.Empty(t, errs)
	require.Len(t, reloaded, 2)
	assert.True(t, reversed[0].Equal(reloaded[0]))
	assert.True(t, reversed[1].Equal(reloaded[1]))
}
