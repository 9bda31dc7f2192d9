// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/diag"
	x509chain "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/x509/chain"
)

// EnvConfigFile names the environment variable consulted when no
// configuration path is given.
const EnvConfigFile = "PUPPET_CA_CONFIG_FILE"

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatINI represents puppet.conf (any other extension)
	configFormatINI configFormat = iota
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// iniSections lists the puppet.conf sections read, lowest precedence first.
var iniSections = []string{ini.DefaultSection, "main", "master", "server"}

// defaults mirrors the Puppet server layout.
var defaults = map[string]string{
	"confdir":                "/etc/puppetlabs/puppet",
	"codedir":                "/etc/puppetlabs/code",
	"vardir":                 "/opt/puppetlabs/puppet/cache",
	"logdir":                 "/var/log/puppetlabs/puppet",
	"rundir":                 "/var/run/puppetlabs",
	"ssldir":                 "$confdir/ssl",
	"cadir":                  "$ssldir/ca",
	"cacert":                 "$cadir/ca_crt.pem",
	"cakey":                  "$cadir/ca_key.pem",
	"cacrl":                  "$cadir/ca_crl.pem",
	"localcacert":            "$ssldir/certs/ca.pem",
	"hostcrl":                "$ssldir/crl.pem",
	"certificate_revocation": "chain",
	"ca_server":              "puppet",
	"ca_port":                "8140",
}

// Settings holds the resolved destinations and client settings.
type Settings struct {
	// Source is the configuration file that was read, empty for defaults.
	Source string

	Confdir string
	SSLDir  string
	CADir   string

	// CACert, CAKey and CACRL are the install destinations.
	CACert string
	CAKey  string
	CACRL  string

	LocalCACert string
	HostCRL     string

	CertificateRevocation x509chain.CRLMode
	CAServer              string
	CAPort                int
}

// Resolve builds the settings from defaults and the configuration at path.
//
// Parameters:
//   - path: Configuration file, or empty to use PUPPET_CA_CONFIG_FILE or defaults
//
// Returns:
//   - *Settings: Resolved settings, nil when errs is not empty
//   - diag.Set: Every problem found reading, parsing or resolving settings
func Resolve(path string) (*Settings, diag.Set) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	raw := make(map[string]string, len(defaults))
	for k, v := range defaults {
		raw[k] = v
	}

	var errs diag.Set
	if path != "" {
		overrides, err := loadFile(path)
		if err != nil {
			errs.Add(err.Error())
			return nil, errs
		}
		for k, v := range overrides {
			raw[k] = v
		}
	}

	r := newResolver(raw)
	get := func(name string) (string, bool) {
		v, err := r.resolve(name)
		if err != nil {
			errs.Addf("Could not resolve setting '%s': %v", name, err)
			return "", false
		}
		return v, true
	}
	value := func(name string) string {
		v, _ := get(name)
		return v
	}

	s := &Settings{
		Source:      path,
		Confdir:     value("confdir"),
		SSLDir:      value("ssldir"),
		CADir:       value("cadir"),
		CACert:      value("cacert"),
		CAKey:       value("cakey"),
		CACRL:       value("cacrl"),
		LocalCACert: value("localcacert"),
		HostCRL:     value("hostcrl"),
		CAServer:    value("ca_server"),
	}

	if v, ok := get("certificate_revocation"); ok {
		mode, err := x509chain.ParseCRLMode(v)
		if err != nil {
			errs.Addf("Could not resolve setting '%s': expected one of true, chain, leaf, false, none; got '%s'",
				"certificate_revocation", v)
		}
		s.CertificateRevocation = mode
	}

	if v, ok := get("ca_port"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			errs.Addf("Could not resolve setting '%s': '%s' is not a valid port", "ca_port", v)
		}
		s.CAPort = port
	}

	if !errs.Empty() {
		return nil, errs
	}
	return s, nil
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	case ".json":
		return configFormatJSON
	default:
		return configFormatINI
	}
}

// loadFile reads path and returns its settings as strings.
func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Could not read config file '%s': %w", path, err)
	}

	settings, err := unmarshalConfig(data, detectConfigFormat(path))
	if err != nil {
		return nil, fmt.Errorf("Could not parse config file '%s': %w", path, err)
	}
	return settings, nil
}

// unmarshalConfig decodes data according to format into a flat settings map.
func unmarshalConfig(data []byte, format configFormat) (map[string]string, error) {
	switch format {
	case configFormatYAML:
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return flatten(m)
	case configFormatJSON:
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return flatten(m)
	default:
		return unmarshalINI(data)
	}
}

// unmarshalINI reads puppet.conf sections in precedence order.
func unmarshalINI(data []byte) (map[string]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		AllowBooleanKeys:    true,
	}, data)
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string)
	for _, name := range iniSections {
		sec, err := f.GetSection(name)
		if err != nil {
			continue
		}
		for _, key := range sec.Keys() {
			settings[key.Name()] = stripMetadata(key.Value())
		}
	}
	return settings, nil
}

// stripMetadata drops puppet.conf file metadata such as
// "$ssldir/ca { owner = service }".
func stripMetadata(v string) string {
	if i := strings.Index(v, "{"); i > 0 && strings.HasSuffix(strings.TrimSpace(v), "}") {
		return strings.TrimSpace(v[:i])
	}
	return v
}

// flatten converts scalar values to their string form.
func flatten(m map[string]any) (map[string]string, error) {
	settings := make(map[string]string, len(m))
	for k, v := range m {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("setting '%s' must be a scalar value", k)
		case nil:
			continue
		}
		settings[k] = fmt.Sprint(v)
	}
	return settings, nil
}
