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
	"context"
	goflag "flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/psiphon-inc/transifex-pull/pkg/exit"
	"github.com/psiphon-inc/transifex-pull/pkg/out"
	"github.com/psiphon-inc/transifex-pull/pkg/pull"
	"github.com/psiphon-inc/transifex-pull/pkg/transifex"
	"github.com/psiphon-inc/transifex-pull/pkg/version"

	"k8s.io/klog/v2"
)

// newPuller is swapped out in tests
var newPuller = func(cfg transifex.Config) (pull.Puller, error) {
	return transifex.NewClient(cfg)
}

// usageError is a command line mistake
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func (e usageError) ExitCode() int { return exit.BadUsage }

// NewRootCmd returns the transifex-pull command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile, envFile string

	rootCmd := &cobra.Command{
		Use:   "transifex-pull [core|android]...",
		Short: "Pulls translations from Transifex into the app and Android resources",
		Long: `transifex-pull downloads every translation of the conduit-core and
conduit-android Transifex resources and writes them into the i18next catalog
(../src/i18n/locales/<lang>/translation.json) and the Android string resources
(../android/app/src/main/res/values-<lang>/strings.xml).

With no arguments both resources are pulled, core first. Run it from the i18n
directory, or point --root at it.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			if _, err := pull.Lookup(args...); err != nil {
				return usageError{err}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cfgFile, envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(cmd.Context(), v, args)
		},
	}

	// accept --poll_timeout as well as --poll-timeout, and --log-dir for klog's --log_dir
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./transifex.{yaml,json,toml})")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	flags := rootCmd.Flags()
	flags.String("token", "", "Transifex API token (env TRANSIFEX_TOKEN or TX_TOKEN)")
	flags.String("api-url", transifex.DefaultAPIURL, "Transifex REST API endpoint")
	flags.String("mode", transifex.DefaultMode, "translation download mode: "+strings.Join(transifex.Modes, ", "))
	flags.String("root", "", "directory relative output paths are resolved against (default is the working directory)")
	flags.Duration("poll-interval", transifex.DefaultPollInterval, "initial wait between download job status checks")
	flags.Duration("poll-timeout", transifex.DefaultPollTimeout, "how long to wait for Transifex to prepare one translation")
	flags.Int("retries", transifex.DefaultRetryMax, "how many times a failed request is retried (0 to disable)")
	flags.Bool("dry-run", false, "print which files would be written and exit")
	flags.StringP("output", "o", "table", "dry-run plan format: table or json")

	if err := v.BindPFlags(flags); err != nil {
		klog.Fatalf("binding flags: %v", err)
	}
	if err := v.BindEnv("token", "TRANSIFEX_TOKEN", "TX_TOKEN"); err != nil {
		klog.Fatalf("binding token env: %v", err)
	}
	v.SetEnvPrefix("transifex")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

// Execute runs the root command and exits on failure.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if exit.Code(err) == exit.BadUsage {
			exit.UsageT("{{.err}}\nRun 'transifex-pull --help' for usage.", out.V{"err": err})
		}
		exit.WithError("Failed to pull translations", err)
	}
}

// runPull pulls the named resources, or all of them
func runPull(ctx context.Context, v *viper.Viper, args []string) error {
	resources := pull.Resources()
	if len(args) > 0 {
		rs, err := pull.Lookup(args...)
		if err != nil {
			return usageError{err}
		}
		resources = rs
	}

	if v.GetBool("dry-run") {
		out.Step(out.DryRun, "dry-run mode: nothing will be downloaded or written")
		switch format := v.GetString("output"); format {
		case "table":
			out.String("%s", pull.TablePlan(resources...))
		case "json":
			plan, err := pull.PrettyPlan(resources...)
			if err != nil {
				return err
			}
			out.Ln("%s", plan)
		default:
			return usageError{errors.Errorf("invalid output format %q, valid formats: table, json", format)}
		}
		return nil
	}

	p, err := newPuller(clientConfig(v))
	if err != nil {
		return err
	}
	return pull.Run(ctx, p, resources...)
}
