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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/psiphon-inc/transifex-pull/pkg/exit"
	"github.com/psiphon-inc/transifex-pull/pkg/out"
	"github.com/psiphon-inc/transifex-pull/pkg/pull"
	"github.com/psiphon-inc/transifex-pull/pkg/transifex"
)

type fakeFile struct {
	b bytes.Buffer
}

func (f *fakeFile) Fd() uintptr { return uintptr(0) }

func (f *fakeFile) Write(p []byte) (int, error) { return f.b.Write(p) }

func (f *fakeFile) String() string { return f.b.String() }

// stubPuller records the client config and the resources it was asked to pull
type stubPuller struct {
	cfg   transifex.Config
	names []string
}

func (p *stubPuller) ProcessResource(_ context.Context, r pull.Resource) error {
	p.names = append(p.names, r.Name)
	return nil
}

// setup isolates the test from the caller's environment and captures stdout
func setup(t *testing.T) (*fakeFile, *stubPuller) {
	t.Helper()
	for _, k := range []string{"TRANSIFEX_TOKEN", "TX_TOKEN", "TRANSIFEX_API_URL", "TRANSIFEX_MODE", "TRANSIFEX_ROOT", "TRANSIFEX_DRY_RUN"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv(out.OverrideEnv, "0")

	f := &fakeFile{}
	out.SetOutFile(f)
	out.SetErrFile(&fakeFile{})

	stub := &stubPuller{}
	orig := newPuller
	newPuller = func(cfg transifex.Config) (pull.Puller, error) {
		if _, err := transifex.NewClient(cfg); err != nil {
			return nil, err
		}
		stub.cfg = cfg
		return stub, nil
	}
	t.Cleanup(func() { newPuller = orig })
	return f, stub
}

func execute(args ...string) error {
	c := NewRootCmd()
	c.SetArgs(args)
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	return c.ExecuteContext(context.Background())
}

func TestPullAll(t *testing.T) {
	f, stub := setup(t)
	t.Setenv("TRANSIFEX_TOKEN", "env-token")

	if err := execute("--env-file", ""); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if diff := cmp.Diff([]string{"core", "android"}, stub.names); diff != "" {
		t.Errorf("pulled resources mismatch (-want +got):\n%s", diff)
	}
	want := transifex.Config{
		APIURL:       transifex.DefaultAPIURL,
		Token:        "env-token",
		Mode:         transifex.DefaultMode,
		PollInterval: transifex.DefaultPollInterval,
		PollTimeout:  transifex.DefaultPollTimeout,
		RetryMax:     transifex.DefaultRetryMax,
	}
	if diff := cmp.Diff(want, stub.cfg); diff != "" {
		t.Errorf("client config mismatch (-want +got):\n%s", diff)
	}
	if got, want := f.String(), "Complete\nComplete\n\nFinished translation pull\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestPullSelected(t *testing.T) {
	_, stub := setup(t)

	err := execute("android", "core", "--env-file", "", "--token", "flag-token", "--mode", "onlyreviewed", "--poll-timeout", "30s", "--root", "/src/conduit/i18n", "--retries", "0")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if diff := cmp.Diff([]string{"android", "core"}, stub.names); diff != "" {
		t.Errorf("pulled resources mismatch (-want +got):\n%s", diff)
	}
	if stub.cfg.Token != "flag-token" {
		t.Errorf("token = %q, want flag-token", stub.cfg.Token)
	}
	if stub.cfg.Mode != "onlyreviewed" {
		t.Errorf("mode = %q, want onlyreviewed", stub.cfg.Mode)
	}
	if stub.cfg.PollTimeout != 30*time.Second {
		t.Errorf("poll timeout = %v, want 30s", stub.cfg.PollTimeout)
	}
	if stub.cfg.Root != "/src/conduit/i18n" {
		t.Errorf("root = %q", stub.cfg.Root)
	}
	if stub.cfg.RetryMax != 0 {
		t.Errorf("retries = %d, want 0", stub.cfg.RetryMax)
	}
}

func TestFlagBeatsEnv(t *testing.T) {
	_, stub := setup(t)
	t.Setenv("TRANSIFEX_TOKEN", "env-token")
	t.Setenv("TRANSIFEX_MODE", "onlytranslated")

	if err := execute("core", "--env-file", "", "--token", "flag-token"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.cfg.Token != "flag-token" {
		t.Errorf("token = %q, want flag-token", stub.cfg.Token)
	}
	if stub.cfg.Mode != "onlytranslated" {
		t.Errorf("mode = %q, want onlytranslated from the environment", stub.cfg.Mode)
	}
}

func TestTXTokenFallback(t *testing.T) {
	_, stub := setup(t)
	t.Setenv("TX_TOKEN", "tx-token")

	if err := execute("core", "--env-file", ""); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.cfg.Token != "tx-token" {
		t.Errorf("token = %q, want tx-token", stub.cfg.Token)
	}
}

func TestDotEnv(t *testing.T) {
	_, stub := setup(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("TRANSIFEX_TOKEN=dotenv-token\nTRANSIFEX_MODE=onlyproofread\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := execute("core", "--env-file", envFile); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.cfg.Token != "dotenv-token" {
		t.Errorf("token = %q, want dotenv-token", stub.cfg.Token)
	}
	if stub.cfg.Mode != "onlyproofread" {
		t.Errorf("mode = %q, want onlyproofread", stub.cfg.Mode)
	}
}

func TestConfigFile(t *testing.T) {
	_, stub := setup(t)
	cfg := filepath.Join(t.TempDir(), "transifex.yaml")
	data := "token: file-token\napi-url: https://tx.example.com\nretries: -1\n"
	if err := os.WriteFile(cfg, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := execute("core", "--env-file", "", "--config", cfg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.cfg.Token != "file-token" {
		t.Errorf("token = %q, want file-token", stub.cfg.Token)
	}
	if stub.cfg.APIURL != "https://tx.example.com" {
		t.Errorf("api url = %q", stub.cfg.APIURL)
	}
	if stub.cfg.RetryMax != -1 {
		t.Errorf("retries = %d, want -1", stub.cfg.RetryMax)
	}
}

func TestDryRun(t *testing.T) {
	tests := []struct {
		description string
		args        []string
		want        []string
	}{
		{"table", nil, []string{"dry-run mode", "| Resource", pull.CorePath("pt_BR")}},
		{"json", []string{"-o", "json"}, []string{"dry-run mode", pull.CoreURL, pull.CorePath("pt_BR")}},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			f, stub := setup(t)

			args := append([]string{"core", "--env-file", "", "--dry-run"}, test.args...)
			if err := execute(args...); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if len(stub.names) != 0 {
				t.Errorf("dry run pulled %v", stub.names)
			}
			got := f.String()
			for _, want := range test.want {
				if !strings.Contains(got, want) {
					t.Errorf("dry run output missing %q:\n%s", want, got)
				}
			}
			if strings.Contains(got, "android") {
				t.Errorf("dry run for core mentions android:\n%s", got)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		description string
		args        []string
		env         map[string]string
		code        int
	}{
		{"unknown resource", []string{"ios"}, map[string]string{"TRANSIFEX_TOKEN": "t"}, exit.BadUsage},
		{"bad flag value", []string{"--poll-timeout", "soon"}, nil, exit.BadUsage},
		{"unknown flag", []string{"--verbose-please"}, nil, exit.BadUsage},
		{"no token", []string{"core"}, nil, exit.Config},
		{"bad mode", []string{"core", "--mode", "everything"}, map[string]string{"TRANSIFEX_TOKEN": "t"}, exit.Config},
		{"bad output format", []string{"--dry-run", "-o", "yaml"}, nil, exit.BadUsage},
		{"missing config file", []string{"--config", "/nonexistent/transifex.yaml"}, nil, exit.Config},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			_, stub := setup(t)
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			err := execute(append([]string{"--env-file", ""}, test.args...)...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := exit.Code(err); got != test.code {
				t.Errorf("exit code = %d, want %d (err: %v)", got, test.code, err)
			}
			if len(stub.names) != 0 {
				t.Errorf("pulled %v despite the error", stub.names)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	f, _ := setup(t)

	if err := execute("version", "--config", "/nonexistent/transifex.yaml"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(f.String(), "transifex-pull version: ") {
		t.Errorf("unexpected version output %q", f.String())
	}

	f.b.Reset()
	if err := execute("version", "--short"); err != nil {
		t.Fatalf("version --short: %v", err)
	}
	if strings.Contains(f.String(), "commit") || strings.TrimSpace(f.String()) == "" {
		t.Errorf("unexpected short version output %q", f.String())
	}
}
