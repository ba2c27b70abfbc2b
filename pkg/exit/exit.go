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

// Package exit contains functions useful for exiting gracefully.
package exit

import (
	"context"
	"io/fs"
	"net"
	"os"

	"github.com/pkg/errors"

	"github.com/psiphon-inc/transifex-pull/pkg/out"

	"k8s.io/klog/v2"
)

// Exit codes based on sysexits(3)
const (
	Failure     = 1  // Failure represents a general failure code
	Interrupted = 2  // Ctrl-C (SIGINT)
	BadUsage    = 64 // Usage represents an incorrect command line
	Data        = 65 // Data represents incorrect data supplied by the user
	Unavailable = 69 // Unavailable represents when a service was unavailable
	IO          = 74 // IO represents an I/O error
	Permissions = 77 // Permissions represents a permissions error
	Config      = 78 // Config represents an unconfigured or misconfigured state
)

// Coder is implemented by errors that know which exit code they warrant
type Coder interface {
	ExitCode() int
}

// Code returns the exit code for err
func Code(err error) int {
	if err == nil {
		return 0
	}

	var c Coder
	if errors.As(err, &c) {
		return c.ExitCode()
	}
	if errors.Is(err, context.Canceled) {
		return Interrupted
	}
	if errors.Is(err, fs.ErrPermission) {
		return Permissions
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return IO
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return Unavailable
	}
	return Failure
}

// UsageT outputs a templated usage error and exits with error code 64
func UsageT(format string, a ...out.V) {
	out.ErrT(out.Usage, format, a...)
	os.Exit(BadUsage)
}

// WithError outputs an error and exits with the code it maps to.
func WithError(msg string, err error) {
	klog.Infof("WithError(%s)=%+v", msg, err)
	out.DisplayError(msg, err)
	klog.Flush()
	os.Exit(Code(err))
}
