// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmhodges/clock"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/logger"
)

var (
	// ErrSetupFailed is returned by setup after its diagnostics were printed.
	ErrSetupFailed = errors.New("cli: setup failed")

	// ErrRevokeFailed is returned by revoke after its diagnostics were printed.
	ErrRevokeFailed = errors.New("cli: revoke failed")

	// ErrUnknownLogFormat indicates an unsupported --log-format value.
	ErrUnknownLogFormat = errors.New("cli: unknown log format")
)

// Reported reports whether err has already been shown to the operator.
func Reported(err error) bool {
	return errors.Is(err, ErrSetupFailed) || errors.Is(err, ErrRevokeFailed)
}

// app carries the state shared by every subcommand.
type app struct {
	version   string
	base      logger.Logger
	log       logger.Logger
	logFormat string
	quiet     bool
	clock     clock.Clock
}

// NewRootCommand builds the command tree.
//
// Parameters:
//   - version: Version printed by --version
//   - log: Logger for diagnostics in text mode
//
// Returns:
//   - *cobra.Command: Root command with the setup and revoke subcommands
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	a := &app{
		version: version,
		base:    log,
		log:     log,
		clock:   clock.New(),
	}
	return a.rootCommand()
}

// Execute runs the command tree with the process arguments.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:               exeName,
		Short:             "Install externally generated CA material for a Puppet CA service",
		Version:           a.version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.selectLogger,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "diagnostic output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "report errors only, suppressing warnings")

	rootCmd.AddCommand(a.setupCommand(), a.revokeCommand())
	return rootCmd
}

// selectLogger switches to structured output when --log-format json is given.
// With --quiet the structured logger drops everything below error level.
func (a *app) selectLogger(cmd *cobra.Command, _ []string) error {
	switch a.logFormat {
	case "text", "":
		a.log = a.base
	case "json":
		jl := logger.NewJSONLogger(cmd.ErrOrStderr(), cmd.Name())
		if a.quiet {
			if err := jl.SetLevel("error"); err != nil {
				return err
			}
		}
		a.log = jl
	default:
		return fmt.Errorf("%w '%s', expected text or json", ErrUnknownLogFormat, a.logFormat)
	}
	return nil
}
