// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrUndefinedReference indicates a $name that names no setting.
	ErrUndefinedReference = errors.New("config: undefined reference")

	// ErrCircularReference indicates settings that reference each other.
	ErrCircularReference = errors.New("config: circular reference")
)

// referencePattern matches $name and ${name}.
var referencePattern = regexp.MustCompile(`\$(?:\{(\w+)\}|(\w+))`)

// resolver expands references lazily, memoizing every resolved setting.
type resolver struct {
	raw      map[string]string
	resolved map[string]string
	visiting map[string]bool
}

func newResolver(raw map[string]string) *resolver {
	return &resolver{
		raw:      raw,
		resolved: make(map[string]string, len(raw)),
		visiting: make(map[string]bool),
	}
}

// resolve returns the fully expanded value of name.
func (r *resolver) resolve(name string) (string, error) {
	if v, ok := r.resolved[name]; ok {
		return v, nil
	}

	v, ok := r.raw[name]
	if !ok {
		return "", fmt.Errorf("%w '$%s'", ErrUndefinedReference, name)
	}
	if r.visiting[name] {
		return "", fmt.Errorf("%w through '$%s'", ErrCircularReference, name)
	}

	r.visiting[name] = true
	defer delete(r.visiting, name)

	var firstErr error
	expanded := referencePattern.ReplaceAllStringFunc(v, func(ref string) string {
		m := referencePattern.FindStringSubmatch(ref)
		dep := m[1]
		if dep == "" {
			dep = m[2]
		}
		out, err := r.resolve(dep)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return out
	})
	if firstErr != nil {
		return "", firstErr
	}

	r.resolved[name] = expanded
	return expanded, nil
}
