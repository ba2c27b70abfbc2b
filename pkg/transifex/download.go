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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/psiphon-inc/transifex-pull/pkg/out"
	"github.com/psiphon-inc/transifex-pull/pkg/util/retry"
	"github.com/psiphon-inc/transifex-pull/pkg/version"

	"k8s.io/klog/v2"
)

const downloadsPath = "/resource_translations_async_downloads"

// job statuses reported while a download is being prepared
const (
	statusPending    = "pending"
	statusProcessing = "processing"
	statusFailed     = "failed"
)

type ref struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type relationship struct {
	Data ref `json:"data"`
}

type jobAttributes struct {
	ContentEncoding string        `json:"content_encoding,omitempty"`
	FileType        string        `json:"file_type,omitempty"`
	Mode            string        `json:"mode,omitempty"`
	Pseudo          bool          `json:"pseudo"`
	Status          string        `json:"status,omitempty"`
	Errors          []ErrorDetail `json:"errors,omitempty"`
}

type jobRelationships struct {
	Language relationship `json:"language"`
	Resource relationship `json:"resource"`
}

type jobData struct {
	Type          string            `json:"type"`
	ID            string            `json:"id,omitempty"`
	Attributes    jobAttributes     `json:"attributes"`
	Relationships *jobRelationships `json:"relationships,omitempty"`
}

type jobDocument struct {
	Data jobData `json:"data"`
}

// Download returns the translation of resource into the Transifex language key lang
func (c *Client) Download(ctx context.Context, resource ResourceID, lang string) ([]byte, error) {
	id, err := c.createJob(ctx, resource, lang)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("download job %s created for %s/%s", id, resource, lang)

	out.Spin(fmt.Sprintf("Waiting for %s (%s) ...", resource.Slug, lang))
	var location string
	err = retry.Poll(ctx, func() error {
		loc, err := c.jobLocation(ctx, id)
		var pending retry.Pending
		if errors.As(err, &pending) {
			return err
		}
		if err != nil {
			return retry.Permanent(err)
		}
		location = loc
		return nil
	}, c.pollInterval, c.pollTimeout)
	out.StopSpin()
	if err != nil {
		return nil, errors.Wrapf(err, "waiting for download job %s", id)
	}

	return c.fetch(ctx, location)
}

// createJob asks Transifex to prepare a translation file, returning the job ID
func (c *Client) createJob(ctx context.Context, resource ResourceID, lang string) (string, error) {
	doc := jobDocument{Data: jobData{
		Type: "resource_translations_async_downloads",
		Attributes: jobAttributes{
			ContentEncoding: "text",
			FileType:        "default",
			Mode:            c.mode,
		},
		Relationships: &jobRelationships{
			Language: relationship{Data: ref{Type: "languages", ID: LanguageID(lang)}},
			Resource: relationship{Data: ref{Type: "resources", ID: resource.String()}},
		},
	}}
	req, err := c.apiRequest(ctx, http.MethodPost, downloadsPath, doc)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req, http.StatusAccepted, http.StatusCreated, http.StatusOK)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var created jobDocument
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", errors.Wrap(err, "decoding download job")
	}
	if created.Data.ID == "" {
		return "", errors.Errorf("download job for %s/%s has no id", resource, lang)
	}
	return created.Data.ID, nil
}

// jobLocation checks on a download job. It returns the file's location once
// the job is done, a retry.Pending error while it is still running and a
// *JobError if it failed.
func (c *Client) jobLocation(ctx context.Context, id string) (string, error) {
	req, err := c.apiRequest(ctx, http.MethodGet, downloadsPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req, http.StatusSeeOther, http.StatusOK)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusSeeOther {
		loc, err := resp.Location()
		if err != nil {
			return "", errors.Wrapf(err, "download job %s finished without a location", id)
		}
		return loc.String(), nil
	}

	var status jobDocument
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", errors.Wrapf(err, "decoding status of download job %s", id)
	}
	switch s := status.Data.Attributes.Status; s {
	case statusFailed:
		return "", &JobError{ID: id, Details: status.Data.Attributes.Errors}
	case statusPending, statusProcessing, "":
		if s == "" {
			s = statusPending
		}
		return "", retry.Pending{Status: s}
	default:
		return "", errors.Errorf("download job %s: unexpected status %q", id, s)
	}
}

// fetch downloads a finished translation file. The location is pre-signed,
// so no credentials are sent.
func (c *Client) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "new request GET %s", location)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", location)
	}
	return b, nil
}
