// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpclient

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	// caEndpoint is the path prefix of the CA API.
	caEndpoint = "puppet-ca"
	// caVersion is the API version served under caEndpoint.
	caVersion = "v1"
)

// URL addresses one resource of the CA API.
type URL struct {
	Protocol     string
	Host         string
	Port         int
	Endpoint     string
	Version      string
	ResourceType string
	ResourceName string
}

// MakeCAURL builds the URL of a CA resource.
//
// Parameters:
//   - host: CA server host name
//   - port: CA server port
//   - resourceType: Resource collection such as "certificate_status"
//   - resourceName: Resource name, usually a certname
//
// Returns:
//   - URL: https://host:port/puppet-ca/v1/resourceType/resourceName
func MakeCAURL(host string, port int, resourceType, resourceName string) URL {
	return URL{
		Protocol:     "https",
		Host:         host,
		Port:         port,
		Endpoint:     caEndpoint,
		Version:      caVersion,
		ResourceType: resourceType,
		ResourceName: resourceName,
	}
}

// String returns the full URL. Empty path segments are omitted and the
// resource name is path-escaped.
func (u URL) String() string {
	var path []string
	for _, seg := range []string{u.Endpoint, u.Version, u.ResourceType, u.ResourceName} {
		if seg != "" {
			path = append(path, url.PathEscape(seg))
		}
	}
	return u.Protocol + "://" + net.JoinHostPort(u.Host, strconv.Itoa(u.Port)) + "/" + strings.Join(path, "/")
}
