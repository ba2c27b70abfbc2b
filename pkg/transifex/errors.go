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
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/psiphon-inc/transifex-pull/pkg/exit"
)

var (
	// ErrNoToken is returned when no API token has been configured
	ErrNoToken = configError("no Transifex API token: set TRANSIFEX_TOKEN or pass --token")
	// ErrJobFailed is returned when Transifex reports a download job as failed
	ErrJobFailed = errors.New("translation download failed")
)

type configError string

func (e configError) Error() string { return string(e) }

func (e configError) ExitCode() int { return exit.Config }

// ErrorDetail is one entry of a JSON:API error document
type ErrorDetail struct {
	Status string `json:"status,omitempty"`
	Code   string `json:"code,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (d ErrorDetail) String() string {
	s := d.Title
	if d.Detail != "" {
		s = strings.TrimSpace(s + ": " + d.Detail)
	}
	if s == "" {
		s = d.Code
	}
	return s
}

// APIError is an unexpected response from the Transifex API
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Details    []ErrorDetail
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	var ds []string
	for _, d := range e.Details {
		if s := d.String(); s != "" {
			ds = append(ds, s)
		}
	}
	if len(ds) > 0 {
		msg += " (" + strings.Join(ds, "; ") + ")"
	}
	return msg
}

// ExitCode maps the response status onto an exit code
func (e *APIError) ExitCode() int {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return exit.Config
	case e.StatusCode == http.StatusNotFound:
		return exit.Data
	case e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500:
		return exit.Unavailable
	}
	return exit.Failure
}

// JobError is a download job that Transifex reported as failed
type JobError struct {
	ID      string
	Details []ErrorDetail
}

func (e *JobError) Error() string {
	var ds []string
	for _, d := range e.Details {
		if s := d.String(); s != "" {
			ds = append(ds, s)
		}
	}
	if len(ds) == 0 {
		return fmt.Sprintf("%v: job %s", ErrJobFailed, e.ID)
	}
	return fmt.Sprintf("%v: job %s: %s", ErrJobFailed, e.ID, strings.Join(ds, "; "))
}

// Unwrap allows errors.Is(err, ErrJobFailed)
func (e *JobError) Unwrap() error { return ErrJobFailed }

// ExitCode reports failed jobs as bad data
func (e *JobError) ExitCode() int { return exit.Data }
