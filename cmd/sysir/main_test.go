package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const addTwoProgram = `
(parameter-count 2)
(prim 1 s32)
(bind 0 1)
(bind 1 1)
(bind 2 1)
(add 2 0 1)
(return 2)
`

func resetDebugFlags() {
	dAsm = false
	dTypes = false
	dVerify = false
	dC = false
	dOptim = false
	yamlIn = false
	verbose = false
}

func TestVersionNotEmpty(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	for _, name := range []string{"dasm", "dtypes", "dverify", "dc", "doptim", "yaml", "verbose"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist", name)
		}
	}
}

func TestDoptimIsNotImplemented(t *testing.T) {
	resetDebugFlags()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.sysir")
	if err := os.WriteFile(testFile, []byte(addTwoProgram), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--doptim", testFile})
	err := cmd.Execute()

	if err == nil {
		t.Fatal("expected error for --doptim, got nil")
	}
	if !errors.Is(err, ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
	if !strings.Contains(errOut.String(), "not yet implemented") {
		t.Errorf("expected stderr to mention 'not yet implemented', got %q", errOut.String())
	}
}

func TestDasmFlag(t *testing.T) {
	resetDebugFlags()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.sysir")
	if err := os.WriteFile(testFile, []byte(addTwoProgram), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dasm", testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error for --dasm, got %v", err)
	}

	if !strings.Contains(out.String(), "_i0:") {
		t.Errorf("expected output to list instruction _i0, got %q", out.String())
	}
}

func TestDverifyFlag(t *testing.T) {
	resetDebugFlags()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.sysir")
	if err := os.WriteFile(testFile, []byte(addTwoProgram), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dverify", testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error for --dverify, got %v", err)
	}
	if strings.TrimSpace(out.String()) != "verify: ok" {
		t.Errorf("expected %q, got %q", "verify: ok", out.String())
	}
}

func TestDverifyFlagCatchesTypeMismatch(t *testing.T) {
	resetDebugFlags()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "bad.sysir")
	badProgram := `
(parameter-count 1)
(prim 1 s32)
(prim 2 f64)
(bind 0 1)
(bind 1 2)
(bind 2 1)
(add 2 0 1)
(return 2)
`
	if err := os.WriteFile(testFile, []byte(badProgram), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dverify", testFile})
	if err := cmd.Execute(); err == nil {
		t.Error("expected a type-mismatch error, got nil")
	}
}

func TestNoFlagsWritesLoweredFile(t *testing.T) {
	resetDebugFlags()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.sysir")
	if err := os.WriteFile(testFile, []byte(addTwoProgram), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	expected := filepath.Join(tmpDir, "test.lowered.c")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	content, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("expected output file %s to exist: %v", expected, err)
	}
	if !strings.Contains(string(content), "_r2 = _r0 + _r1;") {
		t.Errorf("expected lowered C to contain the add statement, got %q", string(content))
	}
}

func TestLoweredOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"test.sysir", "test.lowered.c"},
		{"path/to/file.sysir", "path/to/file.lowered.c"},
		{"no_extension", "no_extension.lowered.c"},
	}
	for _, tc := range tests {
		if got := loweredOutputFilename(tc.input); got != tc.expected {
			t.Errorf("loweredOutputFilename(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestFileNotFound(t *testing.T) {
	resetDebugFlags()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"nonexistent.sysir"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}
