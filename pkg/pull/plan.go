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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/psiphon-inc/transifex-pull/pkg/langs"
)

// PlanItem is one file a pull would write
type PlanItem struct {
	Lang string `json:"lang"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
	Path string `json:"path"`
}

// ResourcePlan lists what a pull of one resource would write
type ResourcePlan struct {
	Resource string     `json:"resource"`
	URL      string     `json:"url"`
	Master   string     `json:"master"`
	Mutator  bool       `json:"mutator"`
	Files    []PlanItem `json:"files"`
}

// GetPlan returns the plan for the given resources
func GetPlan(resources ...Resource) []ResourcePlan {
	var plans []ResourcePlan
	for _, r := range resources {
		p := ResourcePlan{
			Resource: r.Name,
			URL:      r.URL,
			Master:   r.MasterPath,
			Mutator:  r.Mutator != nil,
		}
		for _, k := range r.Langs.Keys() {
			tag := r.Langs[k]
			p.Files = append(p.Files, PlanItem{
				Lang: k,
				Name: langs.Name(k),
				Tag:  tag,
				Path: r.OutputPath(tag),
			})
		}
		plans = append(plans, p)
	}
	return plans
}

// PrettyPlan returns a JSON-formatted representation of the plan for resources
func PrettyPlan(resources ...Resource) (string, error) {
	plans := GetPlan(resources...)
	str, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", plans), err
	}
	return string(str), nil
}

// TablePlan renders the plan for resources as a table, one row per file
func TablePlan(resources ...Resource) string {
	var rows [][]string
	for _, p := range GetPlan(resources...) {
		for _, f := range p.Files {
			rows = append(rows, []string{p.Resource, f.Lang, f.Name, f.Tag, f.Path})
		}
	}
	b := new(bytes.Buffer)
	t := tablewriter.NewWriter(b)
	t.SetHeader([]string{"Resource", "Language", "Name", "Tag", "Path"})
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAutoWrapText(false)
	t.SetBorders(tablewriter.Border{Left: true, Top: true, Right: true, Bottom: true})
	t.SetCenterSeparator("|")
	t.AppendBulk(rows)
	t.Render()
	return b.String()
}
