// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plugpack/internal/config"
)

// execute runs the root command with args and returns stdout and the error.
// Flag variables are package-level, so every test must set the flags it
// depends on explicitly.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetState(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	config.SetConfigFilePathOverride("")
	cfg = config.DefaultConfig()
	cfgFile = ""
	releasePlatforms = nil
	releaseSources = map[string]string{}
	releaseDist = ""
	releaseManifest = false
}

func TestResolveCommand(t *testing.T) {
	resetState(t)

	out, err := execute(t, "resolve", "v2.0.0-beta.1")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "2.0.0-beta.1" {
		t.Errorf("resolve output = %q, want %q", got, "2.0.0-beta.1")
	}
}

func TestResolveCommandInvalidTag(t *testing.T) {
	resetState(t)

	_, err := execute(t, "resolve", "1.2.3")
	var exitError *ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("resolve error = %T, want *ExitError", err)
	}
	if exitError.Code != exitInvalidTag {
		t.Errorf("exit code = %d, want %d", exitError.Code, exitInvalidTag)
	}
}

func TestNameCommand(t *testing.T) {
	resetState(t)

	tests := []struct {
		args []string
		want string
	}{
		{
			args: []string{"name", "--tag", "v1.0.4", "--product", "tape_delay", "--platform", "macos"},
			want: "tape_delay-v1.0.4-macos.zip",
		},
		{
			args: []string{"name", "--tag", "v2.0.0-beta.1", "--product", "tape_delay", "--platform", "windows"},
			want: "tape_delay-v2.0.0-beta.1-win64.zip",
		},
	}

	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		if err != nil {
			t.Fatalf("name returned error: %v", err)
		}
		if got := strings.TrimSpace(out); got != tt.want {
			t.Errorf("name output = %q, want %q", got, tt.want)
		}
	}
}

func TestNameCommandUnknownPlatform(t *testing.T) {
	resetState(t)

	_, err := execute(t, "name", "--tag", "v1.0.4", "--product", "tape_delay", "--platform", "linux")
	var exitError *ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("name error = %T, want *ExitError", err)
	}
	if exitError.Code != exitUnknownPlatform {
		t.Errorf("exit code = %d, want %d", exitError.Code, exitUnknownPlatform)
	}
}

func TestBundleCommandWindows(t *testing.T) {
	resetState(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "tape_delay.vst3")
	if err := os.WriteFile(source, []byte("MZ binary"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	dest := filepath.Join(dir, "out.zip")

	_, err := execute(t, "bundle",
		"--tag", "v1.0.4", "--product", "tape_delay",
		"--platform", "windows", "--source", source, "--dest", dest)
	if err != nil {
		t.Fatalf("bundle returned error: %v", err)
	}

	if _, statErr := os.Stat(dest); statErr != nil {
		t.Errorf("bundle did not write the archive: %v", statErr)
	}
}

func TestBundleCommandSourceMissing(t *testing.T) {
	resetState(t)

	_, err := execute(t, "bundle",
		"--tag", "v1.0.4", "--product", "tape_delay",
		"--platform", "windows", "--source", filepath.Join(t.TempDir(), "nope.vst3"), "--dest", "out.zip")
	var exitError *ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("bundle error = %T, want *ExitError", err)
	}
	if exitError.Code != exitSourceMissing {
		t.Errorf("exit code = %d, want %d", exitError.Code, exitSourceMissing)
	}
}

func TestReleaseCommandFullSet(t *testing.T) {
	resetState(t)

	dir := t.TempDir()
	winSource := filepath.Join(dir, "win", "tape_delay.vst3")
	if err := os.MkdirAll(filepath.Dir(winSource), 0o755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	if err := os.WriteFile(winSource, []byte("MZ binary"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	macSource := filepath.Join(dir, "mac", "tape_delay.vst3")
	if err := os.MkdirAll(filepath.Join(macSource, "Contents", "MacOS"), 0o755); err != nil {
		t.Fatalf("creating bundle fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(macSource, "Contents", "MacOS", "tape_delay"), []byte("binary"), 0o755); err != nil {
		t.Fatalf("writing bundle fixture: %v", err)
	}

	dist := filepath.Join(dir, "dist")
	if err := os.MkdirAll(dist, 0o755); err != nil {
		t.Fatalf("creating dist dir: %v", err)
	}

	_, err := execute(t, "release",
		"--tag", "v1.0.4", "--product", "tape_delay",
		"--source", "windows="+winSource+",macos="+macSource,
		"--dist", dist, "--manifest")
	if err != nil {
		t.Fatalf("release returned error: %v", err)
	}

	for _, name := range []string{
		"tape_delay-v1.0.4-win64.zip",
		"tape_delay-v1.0.4-macos.zip",
		"release.toml",
	} {
		if _, statErr := os.Stat(filepath.Join(dist, name)); statErr != nil {
			t.Errorf("release did not produce %s: %v", name, statErr)
		}
	}
}

func TestReleaseCommandFailureIsolation(t *testing.T) {
	resetState(t)

	dir := t.TempDir()
	winSource := filepath.Join(dir, "tape_delay.vst3")
	if err := os.WriteFile(winSource, []byte("MZ binary"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	dist := filepath.Join(dir, "dist")
	if err := os.MkdirAll(dist, 0o755); err != nil {
		t.Fatalf("creating dist dir: %v", err)
	}

	// The macOS source does not exist; the windows bundle must still be
	// produced and the run must fail with the bundle failure's code.
	_, err := execute(t, "release",
		"--tag", "v1.0.4", "--product", "tape_delay",
		"--source", "windows="+winSource+",macos="+filepath.Join(dir, "nope.vst3"),
		"--dist", dist)

	var exitError *ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("release error = %T, want *ExitError", err)
	}
	if exitError.Code != exitSourceMissing {
		t.Errorf("exit code = %d, want %d", exitError.Code, exitSourceMissing)
	}

	if _, statErr := os.Stat(filepath.Join(dist, "tape_delay-v1.0.4-win64.zip")); statErr != nil {
		t.Errorf("windows archive should exist despite the macos failure: %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(dist, "tape_delay-v1.0.4-macos.zip")); !os.IsNotExist(statErr) {
		t.Error("macos archive should not exist after its bundle failed")
	}
}

func TestReleaseCommandMissingSourceMapping(t *testing.T) {
	resetState(t)

	_, err := execute(t, "release", "--tag", "v1.0.4", "--product", "tape_delay",
		"--platforms", "windows")
	var exitError *ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("release error = %T, want *ExitError", err)
	}
	if exitError.Code != exitFailure {
		t.Errorf("exit code = %d, want %d", exitError.Code, exitFailure)
	}
}

func TestMergedSourcesFlagWins(t *testing.T) {
	resetState(t)
	cfg.Sources = map[string]string{"macos": "from-config", "windows": "from-config"}
	releaseSources = map[string]string{"macos": "from-flag"}

	merged := mergedSources()
	if merged["macos"] != "from-flag" {
		t.Errorf("merged[macos] = %q, want flag value", merged["macos"])
	}
	if merged["windows"] != "from-config" {
		t.Errorf("merged[windows] = %q, want config value", merged["windows"])
	}
}

func TestRequiredPlatformsFromConfig(t *testing.T) {
	resetState(t)
	cfg.Platforms = []string{"macos"}
	releasePlatforms = nil

	got, err := requiredPlatforms()
	if err != nil {
		t.Fatalf("requiredPlatforms() returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "macos" {
		t.Errorf("requiredPlatforms() = %v, want [macos]", got)
	}
}

func TestRequiredPlatformsRejectsUnknown(t *testing.T) {
	resetState(t)
	releasePlatforms = []string{"windows", "amiga"}

	if _, err := requiredPlatforms(); err == nil {
		t.Error("requiredPlatforms() accepted an unknown platform")
	}
}
