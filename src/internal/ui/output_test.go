package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	DisableColor()
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestLeveledOutput(t *testing.T) {
	tests := []struct {
		name  string
		print func()
		want  string
	}{
		{"success", func() { Success("installed %s", "scarb") }, "✓ installed scarb\n"},
		{"warning", func() { Warning("version %s", "mismatch") }, "⚠ version mismatch\n"},
		{"error", func() { Error("clone failed") }, "✗ clone failed\n"},
		{"info", func() { Info("next steps") }, "next steps\n"},
		{"progress", func() { Progress("cloning") }, "→ cloning\n"},
		{"printf", func() { Printf("%s-%d", "a", 1) }, "a-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t)
			tt.print()
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	buf := captureOutput(t)
	Header("Bootstrapping %s", "starkup")
	if !strings.Contains(buf.String(), "Bootstrapping starkup") {
		t.Errorf("Header() output = %q", buf.String())
	}
}

func TestSetOutputRestore(t *testing.T) {
	var first, second bytes.Buffer
	restoreFirst := SetOutput(&first)
	restoreSecond := SetOutput(&second)

	Info("to second")
	restoreSecond()
	Info("to first")
	restoreFirst()

	if !strings.Contains(second.String(), "to second") || strings.Contains(second.String(), "to first") {
		t.Errorf("second = %q", second.String())
	}
	if !strings.Contains(first.String(), "to first") {
		t.Errorf("first = %q", first.String())
	}
}

func TestPlainReporter(t *testing.T) {
	buf := captureOutput(t)
	r := NewReporter(ReporterPlain, 3)

	r.Start("Cloning asdf")
	r.Done("Cloning asdf")
	r.Fail("Installing scarb", errors.New("exit status 1"))

	got := buf.String()
	for _, want := range []string{"→ Cloning asdf...", "✓ Cloning asdf", "✗ Installing scarb: exit status 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestProgressReporter(t *testing.T) {
	buf := captureOutput(t)
	r := NewReporter(ReporterProgress, 2)

	if _, ok := r.(*progressReporter); !ok {
		t.Fatalf("NewReporter(progress) = %T", r)
	}

	r.Start("Cloning asdf")
	r.Done("Cloning asdf")
	r.Start("Installing scarb")
	r.Fail("Installing scarb", errors.New("boom"))

	if !strings.Contains(buf.String(), "✗ Installing scarb: boom") {
		t.Errorf("output = %q, should report the failure", buf.String())
	}
}

func TestNewReporterKinds(t *testing.T) {
	if _, ok := NewReporter(ReporterSpinner, 1).(*spinnerReporter); !ok {
		t.Error("ReporterSpinner should build a spinner reporter")
	}
	if _, ok := NewReporter("unknown", 1).(PlainReporter); !ok {
		t.Error("unknown kinds should fall back to plain")
	}
}
