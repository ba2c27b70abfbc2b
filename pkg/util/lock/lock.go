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

// Package lock serializes writes to translation files across processes.
package lock

import (
	"crypto/sha1"
	"fmt"
	"os"
	"time"

	"github.com/juju/clock"
	"github.com/juju/mutex/v2"
	"github.com/pkg/errors"

	"k8s.io/klog/v2"
)

// acquireTimeout bounds how long a writer waits for another process holding the same path.
const acquireTimeout = 5 * time.Minute

// WriteFile decorates os.WriteFile with a file lock
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	spec := PathMutexSpec(filename)
	klog.V(1).Infof("WriteFile acquiring %s: %+v", filename, spec)
	releaser, err := mutex.Acquire(spec)
	if err != nil {
		return errors.Wrapf(err, "failed to acquire lock for %s: %+v", filename, spec)
	}

	defer releaser.Release()

	if err := os.WriteFile(filename, data, perm); err != nil {
		return errors.Wrapf(err, "writing file %s", filename)
	}
	return nil
}

// PathMutexSpec returns a mutex spec for a path
func PathMutexSpec(path string) mutex.Spec {
	return mutex.Spec{
		// mutex names may not start with a digit and are capped at 40 characters
		Name:    fmt.Sprintf("tx%x", sha1.Sum([]byte(path)))[0:40],
		Clock:   clock.WallClock,
		Delay:   250 * time.Millisecond,
		Timeout: acquireTimeout,
	}
}
