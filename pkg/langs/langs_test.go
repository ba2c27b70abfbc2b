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

package langs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoreAndAndroidSize(t *testing.T) {
	if got := len(Core()); got != 13 {
		t.Errorf("len(Core()) = %d, want 13", got)
	}
	if got := len(Android()); got != 13 {
		t.Errorf("len(Android()) = %d, want 13", got)
	}
}

func TestAndroidOverrides(t *testing.T) {
	core := Core()
	android := Android()

	tests := []struct {
		key         string
		core        string
		android     string
		overwritten bool
	}{
		{key: "pt_BR", core: "pt_BR", android: "pt-rBR", overwritten: true},
		{key: "pt_PT", core: "pt_PT", android: "pt", overwritten: true},
		{key: "fr", core: "fr", android: "fr"},
		{key: "fa", core: "fa", android: "fa"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if core[tc.key] != tc.core {
				t.Errorf("Core()[%q] = %q, want %q", tc.key, core[tc.key], tc.core)
			}
			if android[tc.key] != tc.android {
				t.Errorf("Android()[%q] = %q, want %q", tc.key, android[tc.key], tc.android)
			}
		})
	}

	for k, v := range core {
		av, ok := android[k]
		if !ok {
			t.Errorf("Android() is missing core key %q", k)
			continue
		}
		_, overridden := androidOverrides[k]
		if !overridden && av != v {
			t.Errorf("Android()[%q] = %q, want core value %q", k, av, v)
		}
		if overridden && av == v {
			t.Errorf("Android()[%q] = %q, expected override of core value", k, av)
		}
	}
}

func TestOverlay(t *testing.T) {
	tests := []struct {
		description    string
		base, override Map
		want           Map
	}{
		{
			description: "nil override",
			base:        Map{"a": "1"},
			want:        Map{"a": "1"},
		},
		{
			description: "nil base",
			override:    Map{"a": "1"},
			want:        Map{"a": "1"},
		},
		{
			description: "override wins",
			base:        Map{"a": "1", "b": "2"},
			override:    Map{"b": "3"},
			want:        Map{"a": "1", "b": "3"},
		},
		{
			description: "union",
			base:        Map{"a": "1"},
			override:    Map{"c": "3"},
			want:        Map{"a": "1", "c": "3"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			got := Overlay(tc.base, tc.override)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Overlay(%v, %v) mismatch (-want +got):\n%s", tc.base, tc.override, diff)
			}
		})
	}
}

func TestOverlayDoesNotMutate(t *testing.T) {
	base := Map{"a": "1"}
	override := Map{"a": "2"}
	Overlay(base, override)
	if base["a"] != "1" || override["a"] != "2" {
		t.Errorf("Overlay modified its arguments: base=%v override=%v", base, override)
	}
}

func TestMapsAreCopies(t *testing.T) {
	c := Core()
	c["fr"] = "xx"
	a := Android()
	a["pt_BR"] = "xx"

	if got := Core()["fr"]; got != "fr" {
		t.Errorf("Core()[fr] = %q after modifying a previous copy", got)
	}
	if got := Android()["pt_BR"]; got != "pt-rBR" {
		t.Errorf("Android()[pt_BR] = %q after modifying a previous copy", got)
	}
}

func TestKeys(t *testing.T) {
	want := []string{"ar", "de", "es", "fa", "fr", "hi", "id", "pt_BR", "pt_PT", "sw", "tr", "ur", "vi"}
	if diff := cmp.Diff(want, Core().Keys()); diff != "" {
		t.Errorf("Core().Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestCoreTagsValid(t *testing.T) {
	for k, v := range Core() {
		if _, err := Tag(v); err != nil {
			t.Errorf("Core()[%q] = %q is not a valid BCP 47 tag: %v", k, v, err)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"fr", "French"},
		{"de", "German"},
		{"!!", "!!"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := Name(tc.key); got != tc.want {
				t.Errorf("Name(%q) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}
