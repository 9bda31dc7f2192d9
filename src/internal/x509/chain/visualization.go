// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the trust path from the signing CA up to its root.
//
// Each step is marked with [✓] when its issuer is present in the bundle and
// [✗] when the path breaks. Certificates not on the path are listed after it.
//
// Returns:
//   - string: ASCII tree representation of the bundle
func (b *Bundle) RenderASCIITree() string {
	if len(b.Certs) == 0 {
		return "No certificates in bundle"
	}

	start := b.leaf
	if start == nil {
		start = b.Certs[0]
	}

	var path []*x509.Certificate
	seen := make(map[*x509.Certificate]bool, len(b.Certs))
	for cert := start; cert != nil && !seen[cert]; {
		seen[cert] = true
		path = append(path, cert)
		if IsSelfIssued(cert) {
			break
		}
		cert = b.IssuerOf(cert)
	}

	var result strings.Builder
	for i, cert := range path {
		connector := "├── "
		if i == len(path)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		if !IsSelfIssued(cert) && b.IssuerOf(cert) == nil {
			statusIcon = "✗"
		}

		result.WriteString(strings.Repeat("    ", i))
		result.WriteString(fmt.Sprintf("%s[%s] %s (%s)\n", connector, statusIcon, SubjectName(cert), b.Role(cert)))
	}

	for _, cert := range b.Certs {
		if !seen[cert] {
			result.WriteString(fmt.Sprintf("    %s (%s, not on trust path)\n", SubjectName(cert), b.Role(cert)))
		}
	}

	return result.String()
}

// RenderTable renders the bundle as a markdown table.
//
// It displays each certificate's role, subject, issuer, expiry and key type
// in file order using tablewriter.
//
// Returns:
//   - string: Markdown table representation of the bundle
func (b *Bundle) RenderTable() string {
	if len(b.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key"})

	rows := make([][]string, 0, len(b.Certs))
	for i, cert := range b.Certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			b.Role(cert),
			SubjectName(cert),
			IssuerName(cert),
			cert.NotAfter.Format("2006-01-02"),
			keyDescription(cert),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// Role describes the function of cert within the bundle.
//
// Returns:
//   - string: "Signing CA" for the key holder, "Root CA" for self-issued
//     certificates, "Intermediate CA" otherwise
func (b *Bundle) Role(cert *x509.Certificate) string {
	switch {
	case b.leaf != nil && cert == b.leaf:
		return "Signing CA"
	case IsSelfIssued(cert):
		return "Root CA"
	default:
		return "Intermediate CA"
	}
}

// keyDescription formats the public key type and size of cert.
func keyDescription(cert *x509.Certificate) string {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", pub.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", pub.Curve.Params().BitSize)
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return "unknown"
	}
}
