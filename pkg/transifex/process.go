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
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/psiphon-inc/transifex-pull/pkg/langs"
	"github.com/psiphon-inc/transifex-pull/pkg/out"
	"github.com/psiphon-inc/transifex-pull/pkg/pull"
	"github.com/psiphon-inc/transifex-pull/pkg/util/lock"

	"k8s.io/klog/v2"
)

var _ pull.Puller = (*Client)(nil)

// ProcessResource downloads every language of r and writes each to
// r.OutputPath of its mapped tag, applying r.Mutator first if set.
// Languages are processed in sorted key order; the first failure stops the
// resource and files already written are left in place.
func (c *Client) ProcessResource(ctx context.Context, r pull.Resource) error {
	res, err := ParseResourceURL(r.URL)
	if err != nil {
		return err
	}

	for _, key := range r.Langs.Keys() {
		tag := r.Langs[key]
		out.ErrT(out.Pulling, "Pulling {{.name}} ({{.lang}}) from {{.resource}} ...", out.V{"name": langs.Name(key), "lang": key, "resource": res.Slug})

		content, err := c.Download(ctx, res, key)
		if err != nil {
			return errors.Wrapf(err, "downloading %s translation of %s", key, res)
		}

		if r.Mutator != nil {
			content, err = r.Mutator(r.MasterPath, tag, content)
			if err != nil {
				return errors.Wrapf(err, "mutating %s translation of %s", key, res)
			}
		}

		path := c.outputPath(r.OutputPath(tag))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", path)
		}
		if err := lock.WriteFile(path, content, 0644); err != nil {
			return err
		}
		klog.V(1).Infof("wrote %s (%d bytes)", path, len(content))
		out.ErrT(out.FileWrite, "Wrote {{.path}}", out.V{"path": path})
	}
	return nil
}

// outputPath resolves relative paths against the configured root
func (c *Client) outputPath(p string) string {
	if c.root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.root, p)
}
