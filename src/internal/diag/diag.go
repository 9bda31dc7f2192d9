// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Set is an ordered sequence of human-readable diagnostic messages.
//
// The zero value is an empty set and is ready to use.
type Set []string

// Add appends msg to the set.
func (s *Set) Add(msg string) { *s = append(*s, msg) }

// Addf formats a message using fmt.Sprintf semantics and appends it to the set.
func (s *Set) Addf(format string, v ...any) { *s = append(*s, fmt.Sprintf(format, v...)) }

// Merge appends every message of other, preserving order.
func (s *Set) Merge(other Set) { *s = append(*s, other...) }

// Empty reports whether the set holds no messages.
func (s Set) Empty() bool { return len(s) == 0 }

// Len returns the number of messages in the set.
func (s Set) Len() int { return len(s) }

// Err converts the set into a single error, or nil when the set is empty.
//
// Each message becomes one entry of a [multierror.Error] so callers that
// need an error value keep every finding.
func (s Set) Err() error {
	var merr *multierror.Error
	for _, msg := range s {
		merr = multierror.Append(merr, errors.New(msg))
	}
	if merr != nil {
		merr.ErrorFormat = listFormat
	}
	return merr.ErrorOrNil()
}

// listFormat renders a multierror as one finding per line.
func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}

	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return fmt.Sprintf("%d problems found:\n  %s", len(errs), strings.Join(lines, "\n  "))
}

// Report pairs fatal findings with non-fatal ones.
//
// Errors block the pipeline; Warnings are surfaced to the operator but the
// operation proceeds.
type Report struct {
	Errors   Set
	Warnings Set
}

// Fatal reports whether the report holds at least one error.
func (r Report) Fatal() bool { return !r.Errors.Empty() }

// Merge appends the errors and warnings of other to r.
func (r *Report) Merge(other Report) {
	r.Errors.Merge(other.Errors)
	r.Warnings.Merge(other.Warnings)
}
