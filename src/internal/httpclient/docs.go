// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package httpclient talks HTTPS to the Puppet CA service.
//
// The server is trusted through the local CA bundle only. Depending on the
// certificate_revocation setting, the presented chain is also checked against
// the host CRL chain:
//
//   - none: no CRL checking
//   - leaf: only the server certificate is checked
//   - chain: every certificate below the trust anchor is checked, and a
//     missing CRL fails the handshake
//
// Example usage:
//
//	store, err := httpclient.LoadTrustStore(settings.LocalCACert, settings.HostCRL, settings.CertificateRevocation)
//	if err != nil {
//		return err
//	}
//	client := httpclient.New(store, httpclient.NewHTTPConfig())
//	url := httpclient.MakeCAURL(settings.CAServer, settings.CAPort, "certificate_status", "agent01")
//	res, err := client.Put(ctx, url, []byte(`{"desired_state":"revoked"}`))
package httpclient
