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

package pull

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/psiphon-inc/transifex-pull/pkg/langs"
)

const (
	// CoreURL is the Transifex resource holding the app's i18next catalog
	CoreURL = "https://app.transifex.com/otf/Psiphon3/conduit-core/"
	// AndroidURL is the Transifex resource holding the Android string resources
	AndroidURL = "https://app.transifex.com/otf/Psiphon3/conduit-android/"

	// CoreMaster is the source-language catalog the core resource is built from
	CoreMaster = "../src/i18n/locales/es/translation.json"
	// AndroidMaster is the default-locale Android strings file
	AndroidMaster = "../android/app/src/main/res/values/strings.xml"
)

// Mutator transforms downloaded content for lang before it is written.
// masterPath is the resource's source-language file.
type Mutator func(masterPath, lang string, content []byte) ([]byte, error)

// PathFunc returns the output path for a mapped locale tag.
type PathFunc func(lang string) string

// Resource describes one Transifex resource and where its translations go.
type Resource struct {
	// Name is the short name used on the command line
	Name string
	// URL is the resource's Transifex web URL
	URL string
	// Langs maps Transifex language keys to output locale tags
	Langs langs.Map
	// MasterPath is the source-language file; it is handed to Mutator, never read here
	MasterPath string
	// OutputPath computes where a mapped locale's file goes
	OutputPath PathFunc
	// Mutator is applied before each write, if set
	Mutator Mutator
}

// CorePath returns the i18next catalog path for lang
func CorePath(lang string) string {
	return fmt.Sprintf("../src/i18n/locales/%s/translation.json", lang)
}

// AndroidPath returns the Android strings path for lang
func AndroidPath(lang string) string {
	return fmt.Sprintf("../android/app/src/main/res/values-%s/strings.xml", lang)
}

// CoreResource returns the core translation resource
func CoreResource() Resource {
	return Resource{
		Name:       "core",
		URL:        CoreURL,
		Langs:      langs.Core(),
		MasterPath: CoreMaster,
		OutputPath: CorePath,
	}
}

// AndroidResource returns the Android translation resource
func AndroidResource() Resource {
	return Resource{
		Name:       "android",
		URL:        AndroidURL,
		Langs:      langs.Android(),
		MasterPath: AndroidMaster,
		OutputPath: AndroidPath,
	}
}

// Resources returns every resource, in the order they are pulled
func Resources() []Resource {
	return []Resource{CoreResource(), AndroidResource()}
}

// Lookup returns the resources with the given names, in the given order
func Lookup(names ...string) ([]Resource, error) {
	all := Resources()
	var rs []Resource
	for _, n := range names {
		found := false
		for _, r := range all {
			if strings.EqualFold(r.Name, n) {
				rs = append(rs, r)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("unknown resource %q (valid: %s)", n, strings.Join(resourceNames(all), ", "))
		}
	}
	return rs, nil
}

func resourceNames(rs []Resource) []string {
	var ns []string
	for _, r := range rs {
		ns = append(ns, r.Name)
	}
	return ns
}
