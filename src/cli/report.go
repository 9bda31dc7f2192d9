// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/diag"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/logger"
)

const (
	headingError   = "Error:"
	headingWarning = "Warning:"
	headingConfig  = "Configuration error:"

	indent = "    "
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
)

// printErrors writes a fatal block under heading.
func (a *app) printErrors(heading string, msgs diag.Set) {
	if msgs.Empty() {
		return
	}

	if ll, ok := a.log.(logger.LevelLogger); ok {
		for _, msg := range msgs {
			if heading == headingConfig {
				ll.Errorf("configuration: %s", msg)
				continue
			}
			ll.Errorf("%s", msg)
		}
		return
	}

	a.log.Println(errorColor.Sprint(heading))
	for _, msg := range msgs {
		a.log.Println(indent + msg)
	}
}

// printWarnings writes a non-fatal block followed by a blank line.
func (a *app) printWarnings(msgs diag.Set) {
	if msgs.Empty() {
		return
	}

	if ll, ok := a.log.(logger.LevelLogger); ok {
		for _, msg := range msgs {
			ll.Warnf("%s", msg)
		}
		return
	}
	if a.quiet {
		return
	}

	a.log.Println(warningColor.Sprint(headingWarning))
	for _, msg := range msgs {
		a.log.Println(indent + msg)
	}
	a.log.Println("")
}

// missingArguments reports absent required flags followed by usage.
func (a *app) missingArguments(cmd *cobra.Command, detail string) {
	if ll, ok := a.log.(logger.LevelLogger); ok {
		ll.Errorf("Missing required argument: %s", detail)
		return
	}

	a.log.Println(errorColor.Sprint(headingError))
	a.log.Println("Missing required argument")
	a.log.Println(indent + detail)
	a.log.Println("")
	a.log.Println(strings.TrimRight(cmd.UsageString(), "\n"))
}
