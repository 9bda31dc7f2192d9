// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/config"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/diag"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/installer"
	x509chain "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/loader"
)

// noCRLChain is printed before loading when --crl-chain is omitted.
var noCRLChain = diag.Set{
	"No CRL chain given",
	"Full CRL chain checking will not be possible",
}

type setupOptions struct {
	certBundle string
	privateKey string
	crlChain   string
	configFile string
	verbose    bool
	version    bool
}

func (a *app) setupCommand() *cobra.Command {
	opts := &setupOptions{}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Validate and install an external CA bundle, private key and CRL chain",
		Long: `Validate and install an external CA bundle, private key and CRL chain.

The private key must match a certificate in the bundle, every certificate
must find its issuer in the bundle, and every CRL must be issued by a
certificate in the bundle. Nothing is written unless all checks pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSetup(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.certBundle, "cert-bundle", "", "path to PEM encoded CA certificate bundle")
	f.StringVar(&opts.privateKey, "private-key", "", "path to PEM encoded CA private key")
	f.StringVar(&opts.crlChain, "crl-chain", "", "path to PEM encoded CRL chain")
	f.StringVar(&opts.configFile, "config", "", "path to puppet.conf (or a YAML/JSON settings file)")
	f.BoolVar(&opts.verbose, "verbose", false, "print a summary of the installed bundle")
	f.BoolVar(&opts.version, "version", false, "output the version")

	return cmd
}

// runSetup checks inputs, validates the material and installs it. Every
// stage stops the run before any file is written when it finds a problem.
func (a *app) runSetup(cmd *cobra.Command, opts *setupOptions) error {
	if opts.version {
		fmt.Fprintln(cmd.OutOrStdout(), a.version)
		return nil
	}

	if opts.certBundle == "" || opts.privateKey == "" {
		a.missingArguments(cmd, "Both --cert-bundle and --private-key are required")
		return ErrSetupFailed
	}

	files := []string{opts.certBundle, opts.privateKey}
	if opts.crlChain != "" {
		files = append(files, opts.crlChain)
	}
	if opts.configFile != "" {
		files = append(files, opts.configFile)
	}
	if errs := loader.CheckReadable(files...); !errs.Empty() {
		a.printErrors(headingError, errs)
		return ErrSetupFailed
	}

	if opts.crlChain == "" {
		a.printWarnings(noCRLChain)
	}

	art, errs := loader.New(nil).Load(opts.certBundle, opts.privateKey, opts.crlChain)
	if !errs.Empty() {
		a.printErrors(headingError, errs)
		return ErrSetupFailed
	}

	var key x509chain.PrivateKey
	if art.Key != nil {
		key = art.Key
	}
	res := x509chain.Validate(art.Certificates, key, art.CRLs, x509chain.Options{
		Clock:              a.clock,
		MissingCRLReported: opts.crlChain == "",
	})
	a.printWarnings(res.Warnings)
	if res.Fatal() {
		a.printErrors(headingError, res.Errors)
		return ErrSetupFailed
	}

	settings, errs := config.Resolve(opts.configFile)
	if !errs.Empty() {
		a.printErrors(headingConfig, errs)
		return ErrSetupFailed
	}

	dest := installer.Destinations{
		CACert: settings.CACert,
		CAKey:  settings.CAKey,
		CACRL:  settings.CACRL,
	}
	err := installer.Install(dest, installer.Artifacts{
		Certificates: art.Certificates,
		Key:          art.Key,
		CRLs:         art.CRLs,
	})
	if err != nil {
		a.printErrors(headingError, diag.Set{err.Error()})
		return ErrSetupFailed
	}

	if opts.verbose {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Installed CA material:\n  cacert: %s\n  cakey:  %s\n  cacrl:  %s\n\n", dest.CACert, dest.CAKey, dest.CACRL)
		fmt.Fprint(out, res.Bundle.RenderASCIITree())
		fmt.Fprintln(out)
		fmt.Fprintln(out, res.Bundle.RenderTable())
	}
	return nil
}
