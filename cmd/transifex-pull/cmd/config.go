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
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/psiphon-inc/transifex-pull/pkg/exit"
	"github.com/psiphon-inc/transifex-pull/pkg/transifex"
)

// configName is the config file looked up when --config is not given
const configName = "transifex"

// configFileError means a config or dotenv file exists but could not be used
type configFileError struct {
	err error
}

func (e configFileError) Error() string { return e.err.Error() }

func (e configFileError) Unwrap() error { return e.err }

func (e configFileError) ExitCode() int { return exit.Config }

// loadConfig reads the dotenv file and then the config file into v.
// Both are optional unless cfgFile names one explicitly.
func loadConfig(v *viper.Viper, cfgFile, envFile string) error {
	if envFile != "" {
		// existing environment variables win over the file
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return configFileError{errors.Wrapf(err, "loading %s", envFile)}
			}
			klog.V(1).Infof("no dotenv file at %s", envFile)
		} else {
			klog.Infof("loaded environment from %s", envFile)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			klog.V(1).Infof("no %s config file found", configName)
			return nil
		}
		return configFileError{errors.Wrap(err, "reading config")}
	}
	klog.Infof("using config file %s", v.ConfigFileUsed())
	return nil
}

// clientConfig builds the Transifex client settings from flags, environment and config file
func clientConfig(v *viper.Viper) transifex.Config {
	return transifex.Config{
		APIURL:       v.GetString("api-url"),
		Token:        v.GetString("token"),
		Mode:         v.GetString("mode"),
		Root:         v.GetString("root"),
		PollInterval: v.GetDuration("poll-interval"),
		PollTimeout:  v.GetDuration("poll-timeout"),
		RetryMax:     v.GetInt("retries"),
	}
}
