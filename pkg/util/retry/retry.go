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

// Package retry implements wrappers to retry function calls
package retry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"k8s.io/klog/v2"
)

const (
	// logDedupWindow is the minimum time between identical log messages
	logDedupWindow = 3 * time.Second
	// maxDuplicateLogEntries is the maximum number of times a specific error is logged before suppressing it
	maxDuplicateLogEntries = 10
)

var (
	lastLogTime time.Time
	lastLogErr  string
	logCount    int
	logMu       sync.Mutex
)

func notify(err error, d time.Duration) {
	logMu.Lock()
	if err.Error() != lastLogErr {
		lastLogErr = err.Error()
		logCount = 0
	}

	now := time.Now()
	if now.Sub(lastLogTime) < logDedupWindow {
		lastLogTime = now
		logMu.Unlock()
		return
	}
	lastLogTime = now
	logCount++

	if logCount > maxDuplicateLogEntries {
		logMu.Unlock()
		klog.Infof("will retry after %s: stuck on same error as above...", d)
		return
	}
	logMu.Unlock()

	klog.Infof("will retry after %s: %v", d, err)
}

// Poll calls callback until it returns nil, a Permanent error, ctx is done, or
// maxTime has elapsed. interval is the initial wait between calls; it grows
// slowly so long-running jobs are not hammered.
func Poll(ctx context.Context, callback func() error, interval, maxTime time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.RandomizationFactor = 0.25
	b.Multiplier = 1.25
	b.MaxInterval = 10 * interval
	b.MaxElapsedTime = maxTime
	return backoff.RetryNotify(callback, backoff.WithContext(b, ctx), notify)
}

// Permanent wraps err so that Poll stops immediately and returns err.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Pending is an error that signals the polled operation has not finished yet
type Pending struct {
	Status string
}

func (p Pending) Error() string { return fmt.Sprintf("still %s", p.Status) }
