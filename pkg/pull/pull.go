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

// Package pull describes the translation resources we pull and drives the pull.
package pull

import (
	"context"

	"github.com/psiphon-inc/transifex-pull/pkg/out"

	"k8s.io/klog/v2"
)

// Puller downloads every language of a resource and writes each to its output path.
type Puller interface {
	ProcessResource(ctx context.Context, r Resource) error
}

// Run pulls the given resources (all of them if none are given) one after the
// other, printing a completion marker after each. The first error is returned
// as is and stops the run.
func Run(ctx context.Context, p Puller, resources ...Resource) error {
	if len(resources) == 0 {
		resources = Resources()
	}
	for _, r := range resources {
		klog.Infof("pulling %s translations from %s (%d languages)", r.Name, r.URL, len(r.Langs))
		if err := p.ProcessResource(ctx, r); err != nil {
			return err
		}
		out.Ln("Complete")
	}

	out.Ln("\nFinished translation pull")
	return nil
}
