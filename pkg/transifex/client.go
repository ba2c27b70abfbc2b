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

// Package transifex downloads resource translations through the Transifex REST API (v3).
package transifex

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/psiphon-inc/transifex-pull/pkg/version"

	"k8s.io/klog/v2"
)

const (
	// DefaultAPIURL is the Transifex REST API endpoint
	DefaultAPIURL = "https://rest.api.transifex.com"
	// DefaultMode asks for translations with untranslated strings filled in from the source
	DefaultMode = "default"
	// DefaultPollInterval is the initial wait between download job status checks
	DefaultPollInterval = time.Second
	// DefaultPollTimeout bounds how long a single download job may take
	DefaultPollTimeout = 5 * time.Minute
	// DefaultRetryMax is how many times the command line retries a failed request
	DefaultRetryMax = 4

	contentType = "application/vnd.api+json"
)

// Modes are the download modes Transifex accepts
var Modes = []string{
	"default",
	"reviewed",
	"proofread",
	"translator",
	"untranslated",
	"onlytranslated",
	"onlyreviewed",
	"onlyproofread",
	"sourceastranslation",
}

// Config configures a Client
type Config struct {
	// APIURL defaults to DefaultAPIURL
	APIURL string
	// Token is the Transifex API token (required)
	Token string
	// Mode is the translation download mode, one of Modes
	Mode string
	// Root is prepended to relative output paths
	Root string
	// PollInterval defaults to DefaultPollInterval
	PollInterval time.Duration
	// PollTimeout defaults to DefaultPollTimeout
	PollTimeout time.Duration
	// RetryMax is how many times a failed request is retried; zero or less disables retries
	RetryMax int
}

// Client talks to the Transifex API
type Client struct {
	apiURL       string
	token        string
	mode         string
	root         string
	pollInterval time.Duration
	pollTimeout  time.Duration
	http         *retryablehttp.Client
}

// NewClient returns a Client for cfg
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrNoToken
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
	if !validMode(cfg.Mode) {
		return nil, configError("invalid download mode " + cfg.Mode + ", valid modes: " + strings.Join(Modes, ", "))
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}

	hc := retryablehttp.NewClient()
	hc.Logger = klogLogger{}
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	hc.RetryMax = cfg.RetryMax
	if hc.RetryMax < 0 {
		hc.RetryMax = 0
	}
	// finished download jobs answer 303; the redirect target is fetched without credentials
	hc.HTTPClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Client{
		apiURL:       strings.TrimSuffix(cfg.APIURL, "/"),
		token:        cfg.Token,
		mode:         cfg.Mode,
		root:         cfg.Root,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		http:         hc,
	}, nil
}

func validMode(m string) bool {
	for _, v := range Modes {
		if v == m {
			return true
		}
	}
	return false
}

// apiRequest builds an authenticated JSON:API request to path
func (c *Client) apiRequest(ctx context.Context, method, path string, body interface{}) (*retryablehttp.Request, error) {
	var rb io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshal request")
		}
		rb = bytes.NewReader(b)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.apiURL+path, rb)
	if err != nil {
		return nil, errors.Wrapf(err, "new request %s %s", method, path)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do sends req, returning the response only if its status is one of want
func (c *Client) do(req *retryablehttp.Request, want ...int) (*http.Response, error) {
	klog.V(2).Infof("%s %s", req.Method, req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.URL)
	}
	for _, w := range want {
		if resp.StatusCode == w {
			return resp, nil
		}
	}
	defer resp.Body.Close()
	return nil, apiError(req.Method, req.URL.String(), resp)
}

// apiError builds an APIError from a non-success response
func apiError(method, url string, resp *http.Response) error {
	e := &APIError{Method: method, URL: url, StatusCode: resp.StatusCode}
	var doc struct {
		Errors []ErrorDetail `json:"errors"`
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && json.Unmarshal(body, &doc) == nil {
		e.Details = doc.Errors
	}
	return e
}

// klogLogger adapts klog to retryablehttp.LeveledLogger
type klogLogger struct{}

func (klogLogger) Error(msg string, keysAndValues ...interface{}) {
	klog.ErrorS(nil, msg, keysAndValues...)
}

func (klogLogger) Warn(msg string, keysAndValues ...interface{}) {
	klog.InfoS(msg, keysAndValues...)
}

func (klogLogger) Info(msg string, keysAndValues ...interface{}) {
	klog.V(2).InfoS(msg, keysAndValues...)
}

func (klogLogger) Debug(msg string, keysAndValues ...interface{}) {
	klog.V(4).InfoS(msg, keysAndValues...)
}
