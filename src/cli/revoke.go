// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/config"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/diag"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/httpclient"
)

// certificateStatus is the body of a certificate_status update.
type certificateStatus struct {
	DesiredState string `json:"desired_state"`
}

type revokeOptions struct {
	certnames  []string
	configFile string
}

func (a *app) revokeCommand() *cobra.Command {
	opts := &revokeOptions{}

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke certificates on the CA service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRevoke(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.certnames, "certname", nil, "certname to revoke, may be repeated or comma separated")
	f.StringVar(&opts.configFile, "config", "", "path to puppet.conf (or a YAML/JSON settings file)")

	return cmd
}

func (a *app) runRevoke(cmd *cobra.Command, opts *revokeOptions) error {
	if len(opts.certnames) == 0 {
		a.missingArguments(cmd, "At least one --certname is required")
		return ErrRevokeFailed
	}

	settings, errs := config.Resolve(opts.configFile)
	if !errs.Empty() {
		a.printErrors(headingConfig, errs)
		return ErrRevokeFailed
	}

	store, err := httpclient.LoadTrustStore(settings.LocalCACert, settings.HostCRL, settings.CertificateRevocation)
	if err != nil {
		a.printErrors(headingError, diag.Set{fmt.Sprintf("Could not load CA trust store: %v", err)})
		return ErrRevokeFailed
	}
	client := httpclient.New(store, nil)

	body, err := json.Marshal(certificateStatus{DesiredState: "revoked"})
	if err != nil {
		return err
	}

	var failures diag.Set
	for _, name := range opts.certnames {
		url := httpclient.MakeCAURL(settings.CAServer, settings.CAPort, "certificate_status", name)

		res, err := client.Put(cmd.Context(), url, body)
		if err != nil {
			failures.Addf("Could not revoke certificate for %s: %v", name, err)
			continue
		}

		switch res.Code {
		case http.StatusOK, http.StatusNoContent:
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked certificate for %s\n", name)
		case http.StatusNotFound:
			failures.Addf("Could not find certificate for %s", name)
		default:
			failures.Addf("Unexpected response (%d): %s", res.Code, res.Body)
		}
	}

	if !failures.Empty() {
		a.printErrors(headingError, failures)
		return ErrRevokeFailed
	}
	return nil
}
