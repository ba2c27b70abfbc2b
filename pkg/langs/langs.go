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

// Package langs holds the Transifex language keys we pull and the locale tags
// each client target expects them under.
package langs

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Map maps a Transifex language key to the locale tag used in output paths.
type Map map[string]string

// coreLangs must map to valid BCP 47 in one of these forms:
// zh, zh-TW, zh-Hant, zh-Hant-TW (i18next accepts '_' for the region separator)
var coreLangs = Map{
	"ar":    "ar",    // Arabic
	"de":    "de",    // German
	"es":    "es",    // Spanish
	"fa":    "fa",    // Farsi/Persian
	"fr":    "fr",    // French
	"hi":    "hi",    // Hindi
	"id":    "id",    // Indonesian
	"pt_BR": "pt_BR", // Portuguese (Brazil)
	"pt_PT": "pt_PT", // Portuguese (Portugal)
	"sw":    "sw",    // Swahili
	"tr":    "tr",    // Turkish
	"ur":    "ur",    // Urdu
	"vi":    "vi",    // Vietnamese
}

// androidOverrides follow the resource qualifier convention: region codes are
// written like 'pt-rBR' instead of 'pt_BR'.
var androidOverrides = Map{
	"pt_BR": "pt-rBR", // Portuguese (Brazil)
	"pt_PT": "pt",     // Portuguese (Portugal and everywhere else)
}

// Core returns the language map for the core JSON catalog.
func Core() Map {
	return coreLangs.Copy()
}

// Android returns the language map for the Android string resources.
func Android() Map {
	return Overlay(coreLangs, androidOverrides)
}

// Overlay returns the union of base and override, with override winning for
// keys present in both. Neither argument is modified.
func Overlay(base, override Map) Map {
	m := make(Map, len(base)+len(override))
	for k, v := range base {
		m[k] = v
	}
	for k, v := range override {
		m[k] = v
	}
	return m
}

// Copy returns a shallow copy of m.
func (m Map) Copy() Map {
	return Overlay(m, nil)
}

// Keys returns the language keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Tag parses a Transifex language key as a BCP 47 tag.
func Tag(key string) (language.Tag, error) {
	t, err := language.Parse(strings.ReplaceAll(key, "_", "-"))
	if err != nil {
		return language.Und, errors.Wrapf(err, "language key %q", key)
	}
	return t, nil
}

// Name returns the English display name for a Transifex language key, or the
// key itself if it cannot be parsed.
func Name(key string) string {
	t, err := Tag(key)
	if err != nil {
		return key
	}
	if n := display.English.Tags().Name(t); n != "" {
		return n
	}
	return key
}
