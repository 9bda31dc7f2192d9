// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		arg0     string
		expected string
	}{
		{name: "Relative path", arg0: "./puppet-ca-bootstrap", expected: "puppet-ca-bootstrap"},
		{name: "Just filename", arg0: "myapp", expected: "myapp"},
		{name: "Unix absolute path", arg0: "/opt/puppetlabs/bin/puppet-ca-bootstrap", expected: "puppet-ca-bootstrap"},
		{name: "Trailing separator", arg0: "/usr/local/bin/myapp/", expected: "myapp"},
		{name: "Windows path with .exe", arg0: "C:\\Program Files\\Puppet\\puppet-ca-bootstrap.exe", expected: "puppet-ca-bootstrap"},
		{name: "Windows path without .exe", arg0: "C:\\Program Files\\myapp", expected: "myapp"},
		{name: "Mixed separators", arg0: "C:\\tools/bin\\myapp.exe", expected: "myapp"},
		{name: "Only .exe", arg0: "C:\\bin\\.exe", expected: FallbackName},
		{name: "Empty", arg0: "", expected: FallbackName},
		{name: "Root", arg0: "/", expected: FallbackName},
		{name: "Dot", arg0: ".", expected: FallbackName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExecutableName(tt.arg0))
		})
	}
}

func TestGetExecutableName(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"/usr/bin/puppet-ca-bootstrap", "setup"}
	assert.Equal(t, "puppet-ca-bootstrap", GetExecutableName())

	os.Args = nil
	assert.Equal(t, FallbackName, GetExecutableName())
}
