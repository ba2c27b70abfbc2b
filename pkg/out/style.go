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

package out

import (
	"bytes"
	"text/template"

	"k8s.io/klog/v2"
)

// StyleEnum is an enumeration of Style
type StyleEnum int

const (
	Empty StyleEnum = iota
	FailureType
	Warning
	Usage
	Pulling
	FileWrite
	DryRun
)

var (
	// lowBullet is a bullet-point prefix for low-fi mode
	lowBullet = "* "
	// lowWarning is a warning prefix for low-fi mode
	lowWarning = "! "
	// lowError is an error prefix for low-fi mode
	lowError = "X "
)

// style describes how to stylize a message.
type style struct {
	// Prefix is a string to place in the beginning of a message
	Prefix string
	// LowPrefix is the 7-bit compatible prefix we fallback to for less-awesome terminals
	LowPrefix string
	// OmitNewline omits a newline at the end of a message.
	OmitNewline bool
}

// styles is a map of style name to style struct
// For consistency, ensure that emojis added render with the same width across platforms.
var styles = map[StyleEnum]style{
	Empty:       {Prefix: "", LowPrefix: ""},
	FailureType: {Prefix: "❌  ", LowPrefix: lowError},
	Warning:     {Prefix: "❗  ", LowPrefix: lowWarning},
	Usage:       {Prefix: "💡  "},
	Pulling:     {Prefix: "🚜  "},
	FileWrite:   {Prefix: "💾  "},
	DryRun:      {Prefix: "🌵  "},
}

// Add a prefix to a string
func applyPrefix(prefix, format string) string {
	if prefix == "" {
		return format
	}
	return prefix + format
}

// lowPrefix returns a 7-bit compatible prefix for a style
func lowPrefix(s style) string {
	if s.LowPrefix != "" {
		return s.LowPrefix
	}
	if s.Prefix == "" {
		return ""
	}
	return lowBullet
}

// applyStyle adds any appropriate style prefix.
func applyStyle(st StyleEnum, useColor bool, format string) string {
	s, ok := styles[st]
	if !s.OmitNewline {
		format += "\n"
	}

	// Similar to CSS styles, if no style matches, output an unformatted string.
	if !ok {
		return format
	}

	if !useColor {
		return applyPrefix(lowPrefix(s), format)
	}
	return applyPrefix(s.Prefix, format)
}

// ApplyTemplateFormatting applies formatting to the provided template
func ApplyTemplateFormatting(st StyleEnum, useColor bool, format string, a ...V) string {
	if a == nil {
		a = []V{{}}
	}
	format = applyStyle(st, useColor, format)

	var buf bytes.Buffer
	t, err := template.New(format).Parse(format)
	if err != nil {
		klog.Errorf("unable to parse %q: %v - returning raw string.", format, err)
		return format
	}
	err = t.Execute(&buf, a[0])
	if err != nil {
		klog.Errorf("unable to execute %s: %v - returning raw string.", format, err)
		return format
	}
	return buf.String()
}
