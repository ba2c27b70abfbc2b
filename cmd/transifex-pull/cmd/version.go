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

package cmd

import (
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/psiphon-inc/transifex-pull/pkg/out"
	"github.com/psiphon-inc/transifex-pull/pkg/version"
)

func versionCmd() *cobra.Command {
	var short bool
	c := &cobra.Command{
		Use:   "version",
		Short: "Print the version of transifex-pull",
		Long:  `Print the version of transifex-pull.`,
		// the version command never needs the config file or token
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(command *cobra.Command, args []string) {
			v := version.GetVersion()
			if short {
				out.Ln("%s", v)
				return
			}
			if _, err := version.GetSemverVersion(); err != nil {
				klog.Infof("GetSemverVersion(%q): %v", v, err)
				out.WarningT("{{.version}} is not a semantic version", out.V{"version": v})
			}
			out.Ln("transifex-pull version: %s", v)
			if gitCommitID := version.GetGitCommitID(); gitCommitID != "" {
				out.Ln("commit: %s", gitCommitID)
			}
		},
	}
	c.Flags().BoolVar(&short, "short", false, "Print just the version number.")
	return c
}
