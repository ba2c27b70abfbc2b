/*
Copyright 2026 Psiphon Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package transifex

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// webHosts are the hosts a resource's web URL may point at
var webHosts = map[string]bool{
	"app.transifex.com": true,
	"www.transifex.com": true,
	"transifex.com":     true,
}

// ResourceID identifies a resource in the Transifex API
type ResourceID struct {
	Organization string
	Project      string
	Slug         string
}

// String returns the API form of the ID, e.g. o:otf:p:Psiphon3:r:conduit-core
func (r ResourceID) String() string {
	return fmt.Sprintf("o:%s:p:%s:r:%s", r.Organization, r.Project, r.Slug)
}

// ParseResourceURL accepts a resource's web URL
// (https://app.transifex.com/<org>/<project>/<resource>/) or its API ID.
func ParseResourceURL(s string) (ResourceID, error) {
	if strings.HasPrefix(s, "o:") {
		return parseResourceID(s)
	}

	u, err := url.Parse(s)
	if err != nil {
		return ResourceID{}, errors.Wrapf(err, "parsing resource URL %q", s)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return ResourceID{}, errors.Errorf("resource URL %q: unsupported scheme %q", s, u.Scheme)
	}
	if !webHosts[strings.ToLower(u.Host)] {
		return ResourceID{}, errors.Errorf("resource URL %q: %q is not a Transifex host", s, u.Host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 3 {
		return ResourceID{}, errors.Errorf("resource URL %q: want /<organization>/<project>/<resource>/", s)
	}
	for _, p := range parts {
		if p == "" {
			return ResourceID{}, errors.Errorf("resource URL %q: empty path segment", s)
		}
	}
	return ResourceID{Organization: parts[0], Project: parts[1], Slug: parts[2]}, nil
}

func parseResourceID(s string) (ResourceID, error) {
	f := strings.Split(s, ":")
	if len(f) != 6 || f[0] != "o" || f[2] != "p" || f[4] != "r" || f[1] == "" || f[3] == "" || f[5] == "" {
		return ResourceID{}, errors.Errorf("malformed resource ID %q", s)
	}
	return ResourceID{Organization: f[1], Project: f[3], Slug: f[5]}, nil
}

// LanguageID returns the API ID of a Transifex language key, e.g. l:pt_BR
func LanguageID(key string) string {
	return "l:" + key
}
