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

// Package out provides a mechanism for sending stylized output to the console.
package out

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	isatty "github.com/mattn/go-isatty"

	"k8s.io/klog/v2"
)

// This package uses global references to output objects rather than passing
// a console object throughout the code base. Typical usage is:
//
// out.SetOutFile(os.Stdout)
// out.Ln("Complete")
// out.ErrT(out.Pulling, "Pulling {{.lang}} ...", out.V{"lang": "fr"})
//
// out.SetErrFile(os.Stderr)
// out.ErrT(out.FailureType, "Oh no, everything failed.")

// NOTE: If you do not want colorized output, set TRANSIFEX_PULL_IN_STYLE=false in your environment.

var (
	// outFile is where Out* functions send output to. Set using SetOutFile()
	outFile fdWriter
	// errFile is where Err* functions send output to. Set using SetErrFile()
	errFile fdWriter
	// useColor is whether or not color output should be used, updated by Set*Writer.
	useColor = false
	// OverrideEnv is the environment variable used to override color/emoji usage
	OverrideEnv = "TRANSIFEX_PULL_IN_STYLE"
	// spin is shown while waiting on remote jobs
	spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond)
)

// fdWriter is the subset of file.File that implements io.Writer and Fd()
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// V is a convenience wrapper for templating, it represents the variable key/value pair.
type V map[string]interface{}

// Step writes a stylized and templated message to stdout
func Step(st StyleEnum, format string, a ...V) {
	String("%s", ApplyTemplateFormatting(st, useColor, format, a...))
}

// String writes a basic formatted string to stdout
func String(format string, a ...interface{}) {
	// Flush log buffer so that output order makes sense
	klog.Flush()

	if outFile == nil {
		klog.Warningf("[unset outFile]: %s", fmt.Sprintf(format, a...))
		return
	}
	if spin.Active() {
		spin.Stop()
	}
	if _, err := fmt.Fprintf(outFile, format, a...); err != nil {
		klog.Errorf("Fprintf failed: %v", err)
	}
}

// Ln writes a basic formatted string with a newline to stdout
func Ln(format string, a ...interface{}) {
	String(format+"\n", a...)
}

// ErrT writes a stylized and templated error message to stderr
func ErrT(st StyleEnum, format string, a ...V) {
	Err("%s", ApplyTemplateFormatting(st, useColor, format, a...))
}

// Err writes a basic formatted string to stderr
func Err(format string, a ...interface{}) {
	if errFile == nil {
		klog.Errorf("[unset errFile]: %s", fmt.Sprintf(format, a...))
		return
	}
	if spin.Active() {
		spin.Stop()
	}
	if _, err := fmt.Fprintf(errFile, format, a...); err != nil {
		klog.Errorf("Fprint failed: %v", err)
	}
}

// FailureT is a shortcut for writing a templated failure message to stderr
func FailureT(format string, a ...V) {
	ErrT(FailureType, format, a...)
}

// WarningT is a shortcut for writing a templated warning message to stderr
func WarningT(format string, a ...V) {
	ErrT(Warning, format, a...)
}

// Spin shows a spinner with the given suffix on stderr until the next output
// call or StopSpin. It is a no-op unless stderr is a color-capable terminal.
func Spin(suffix string) {
	if errFile == nil || !useColor {
		klog.Infof("waiting: %s", suffix)
		return
	}
	spin.Writer = errFile
	spin.Suffix = " " + suffix
	spin.Start()
}

// StopSpin stops the spinner, if any.
func StopSpin() {
	if spin.Active() {
		spin.Stop()
	}
}

// SetOutFile configures which writer standard output goes to.
func SetOutFile(w fdWriter) {
	klog.V(1).Infof("Setting OutFile to fd %d ...", w.Fd())
	outFile = w
	useColor = wantsColor(w)
}

// SetErrFile configures which writer error output goes to.
func SetErrFile(w fdWriter) {
	klog.V(1).Infof("Setting ErrFile to fd %d...", w.Fd())
	errFile = w
	useColor = wantsColor(w)
}

// wantsColor determines if the user might want colorized output.
func wantsColor(w fdWriter) bool {
	// First process the environment: we allow users to force colors on or off.
	//
	// TRANSIFEX_PULL_IN_STYLE=[1, T, true, TRUE]
	// TRANSIFEX_PULL_IN_STYLE=[0, f, false, FALSE]
	//
	// If unset, we try to automatically determine suitability from the environment.
	val := os.Getenv(OverrideEnv)
	if val != "" {
		klog.V(1).Infof("%s=%q\n", OverrideEnv, val)
		override, err := strconv.ParseBool(val)
		if err != nil {
			// That's OK, we will just fall-back to automatic detection.
			klog.Errorf("ParseBool(%s): %v", OverrideEnv, err)
		} else {
			return override
		}
	}

	term := os.Getenv("TERM")
	colorTerm := os.Getenv("COLORTERM")
	// Example: term-256color
	if !strings.Contains(term, "color") && !strings.Contains(colorTerm, "truecolor") && !strings.Contains(colorTerm, "24bit") && !strings.Contains(colorTerm, "yes") {
		klog.V(1).Infof("TERM=%s,COLORTERM=%s, which probably does not support color", term, colorTerm)
		return false
	}

	if _, ok := w.(*os.File); !ok {
		return false
	}
	isT := isatty.IsTerminal(w.Fd())
	klog.V(1).Infof("isatty.IsTerminal(%d) = %v\n", w.Fd(), isT)
	return isT
}

// DisplayError prints the error to stderr, with a blank line before it
func DisplayError(msg string, err error) {
	klog.Warningf("%s: %v", msg, err)
	ErrT(Empty, "")
	FailureT("{{.msg}}: {{.err}}", V{"msg": msg, "err": err})
}
