package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/CodingWithCalvin/starkup.cli/src/internal/bootstrap"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/manifest"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/runner"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/testutil"
	"github.com/CodingWithCalvin/starkup.cli/src/internal/ui"
)

// setupCommandTest points the command seams at a temp HOME and a Recorder,
// and captures ui output.
func setupCommandTest(t *testing.T, env map[string]string) (home string, rec *testutil.Recorder, out *bytes.Buffer) {
	t.Helper()

	home = t.TempDir()
	if env == nil {
		env = map[string]string{}
	}
	env["HOME"] = home
	if env["PATH"] == "" {
		env["PATH"] = "/usr/bin"
	}

	rec = testutil.NewRecorder()
	rec.On("git", testutil.Response{Do: func(cmd runner.Command) error {
		return os.MkdirAll(cmd.Args[2], 0755)
	}})
	rec.On("scarb --version", testutil.Response{Output: "scarb 2.8.1\n"})
	rec.On("snforge --version", testutil.Response{Output: "snforge 0.30.0\n"})

	oldGetenv, oldNewRunner := getenv, newRunner
	oldConfig, oldDryRun, oldRC, oldProgress := configFile, installDryRun, installRCFile, installProgress
	t.Cleanup(func() {
		getenv, newRunner = oldGetenv, oldNewRunner
		configFile, installDryRun, installRCFile, installProgress = oldConfig, oldDryRun, oldRC, oldProgress
	})

	getenv = func(key string) string { return env[key] }
	newRunner = func(*zap.Logger) runner.Runner { return rec }
	configFile, installDryRun, installRCFile, installProgress = "", false, "", false

	ui.DisableColor()
	out = &bytes.Buffer{}
	t.Cleanup(ui.SetOutput(out))
	return home, rec, out
}

func TestInstallCommandFlags(t *testing.T) {
	t.Run("--dry-run flag exists", func(t *testing.T) {
		flag := installCmd.Flags().Lookup("dry-run")
		if flag == nil {
			t.Fatal("--dry-run flag should exist on install command")
		}
		if flag.Shorthand != "n" {
			t.Errorf("--dry-run flag shorthand = %q, want %q", flag.Shorthand, "n")
		}
	})

	for _, name := range []string{"rc-file", "progress"} {
		t.Run("--"+name+" flag exists", func(t *testing.T) {
			if installCmd.Flags().Lookup(name) == nil {
				t.Errorf("--%s flag should exist on install command", name)
			}
		})
	}
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "verbose", "no-color"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s should be a persistent flag", name)
		}
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"install": false, "plan": false, "status": false, "doctor": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"command status", &bootstrap.StepError{Err: &runner.ExitError{Code: 128}}, 128},
		{"plain error", errors.New("boom"), 1},
		{"zero status", &runner.ExitError{Code: 0}, 1},
		{"killed by signal", &runner.ExitError{Code: 137, Signal: "killed"}, 137},
		{"negative status", &runner.ExitError{Code: -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Run("default manifest", func(t *testing.T) {
		setupCommandTest(t, nil)

		cfg, m, err := loadEnvironment()
		if err != nil {
			t.Fatalf("loadEnvironment() error = %v", err)
		}
		if cfg.Home == "" {
			t.Error("Home should come from the getenv seam")
		}
		if m.Tools[0].Version != manifest.Default().Tools[0].Version {
			t.Error("expected the default manifest")
		}
	})

	t.Run("manifest from env", func(t *testing.T) {
		manifestPath := filepath.Join(t.TempDir(), "starkup.yaml")
		if err := os.WriteFile(manifestPath, []byte("tools:\n  - plugin: scarb\n    version: 2.7.1\n"), 0644); err != nil {
			t.Fatal(err)
		}
		setupCommandTest(t, map[string]string{"STARKUP_CONFIG": manifestPath})

		_, m, err := loadEnvironment()
		if err != nil {
			t.Fatalf("loadEnvironment() error = %v", err)
		}
		if len(m.Tools) != 1 || m.Tools[0].Version != "2.7.1" {
			t.Errorf("Tools = %+v, want scarb 2.7.1 only", m.Tools)
		}
	})

	t.Run("bad manifest", func(t *testing.T) {
		setupCommandTest(t, nil)
		configFile = filepath.Join(t.TempDir(), "missing.yaml")

		if _, _, err := loadEnvironment(); err == nil {
			t.Error("loadEnvironment() should fail for a missing --config file")
		}
	})
}

func TestInstallCommand(t *testing.T) {
	home, rec, out := setupCommandTest(t, nil)

	if err := installCmd.RunE(installCmd, nil); err != nil {
		t.Fatalf("install error = %v", err)
	}

	cmds := rec.Commands()
	if len(cmds) != 9 || !strings.HasPrefix(cmds[0], "git clone") {
		t.Errorf("commands = %q", cmds)
	}

	rc, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	if err != nil {
		t.Fatalf("startup file not written: %v", err)
	}
	if !strings.Contains(string(rc), ". ~/.asdf/asdf.sh") {
		t.Errorf("startup file = %q", rc)
	}

	for _, want := range []string{"Finished installing scarb", "Finished installing Foundry", "Toolchain ready!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestInstallCommand_RCFileFlag(t *testing.T) {
	home, _, _ := setupCommandTest(t, nil)
	installRCFile = "~/.zshrc"

	if err := installCmd.RunE(installCmd, nil); err != nil {
		t.Fatalf("install error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".zshrc")); err != nil {
		t.Errorf("--rc-file target not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".bashrc")); !os.IsNotExist(err) {
		t.Error("default startup file should be untouched when --rc-file is set")
	}
}

func TestInstallCommand_DryRun(t *testing.T) {
	home, rec, out := setupCommandTest(t, nil)
	installDryRun = true

	if err := installCmd.RunE(installCmd, nil); err != nil {
		t.Fatalf("install --dry-run error = %v", err)
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("dry run executed %q", rec.Commands())
	}
	if !strings.Contains(out.String(), "$ asdf install scarb 2.8.1") {
		t.Errorf("output = %q, want printed commands", out.String())
	}
	if _, err := os.Stat(filepath.Join(home, ".bashrc")); !os.IsNotExist(err) {
		t.Error("dry run must not write the startup file")
	}
}

func TestInstallCommand_Failure(t *testing.T) {
	_, rec, _ := setupCommandTest(t, nil)
	rec.On("asdf install scarb 2.8.1", testutil.Response{Err: &runner.ExitError{Code: 3}})

	err := installCmd.RunE(installCmd, nil)
	var stepErr *bootstrap.StepError
	if !errors.As(err, &stepErr) || stepErr.Kind != bootstrap.KindToolInstall {
		t.Fatalf("install error = %v, want tool-install StepError", err)
	}
	if got := exitCode(err); got != 3 {
		t.Errorf("exitCode() = %d, want 3", got)
	}
}

func TestPlanCommand(t *testing.T) {
	_, rec, out := setupCommandTest(t, nil)

	if err := planCmd.RunE(planCmd, nil); err != nil {
		t.Fatalf("plan error = %v", err)
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("plan executed %q", rec.Commands())
	}
	for _, want := range []string{"$ git clone", "$ asdf plugin add starknet-foundry", "$ snforge --version", "Added asdf to ~/.bashrc"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("plan output missing %q:\n%s", want, out.String())
		}
	}
}

func TestStatusCommand(t *testing.T) {
	_, rec, out := setupCommandTest(t, nil)
	rec.On("snforge --version", testutil.Response{Err: &runner.ExitError{Code: 127}})

	if err := statusCmd.RunE(statusCmd, nil); err != nil {
		t.Fatalf("status error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "scarb 2.8.1 ✓") {
		t.Errorf("status output = %q, want scarb matched", got)
	}
	if !strings.Contains(got, "Foundry 0.30.0 ✗ not found") {
		t.Errorf("status output = %q, want Foundry not found", got)
	}
}

func TestPrintToolLine(t *testing.T) {
	tool := manifest.Tool{Plugin: "starknet-foundry", Version: "0.30.0", Binary: "snforge", Display: "Foundry"}

	tests := []struct {
		name     string
		reported string
		want     string
	}{
		{"matched", "snforge 0.30.0", "Foundry 0.30.0 ✓"},
		{"mismatch", "snforge 0.29.0", "Foundry 0.30.0 ✗ found 0.29.0"},
		{"missing", "", "Foundry 0.30.0 ✗ not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui.DisableColor()
			var buf bytes.Buffer
			defer ui.SetOutput(&buf)()

			printToolLine(tool, tt.reported)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("printToolLine() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestDoctorCommand(t *testing.T) {
	// PATH without git
	setupCommandTest(t, map[string]string{"PATH": t.TempDir()})

	if err := doctorCmd.RunE(doctorCmd, nil); !errors.Is(err, errChecksFailed) {
		t.Errorf("doctor error = %v, want errChecksFailed", err)
	}
}
