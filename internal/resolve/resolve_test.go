package resolve

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestManagedJavaBin_StandardLayout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("layout test targets the unix bin/java shape")
	}

	home := t.TempDir()
	binDir := filepath.Join(home, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	javaPath := filepath.Join(binDir, "java")
	if err := os.WriteFile(javaPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake java: %v", err)
	}

	got := managedJavaBin(home)
	if got != javaPath {
		t.Errorf("managedJavaBin = %q, want %q", got, javaPath)
	}
}

func TestManagedJavaBin_MacOSFallback(t *testing.T) {
	home := t.TempDir()
	macDir := filepath.Join(home, "Contents", "Home", "bin")
	if err := os.MkdirAll(macDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	javaPath := filepath.Join(macDir, name)
	if err := os.WriteFile(javaPath, []byte{}, 0o755); err != nil {
		t.Fatalf("write fake java: %v", err)
	}

	got := managedJavaBin(home)
	if got != javaPath {
		t.Errorf("managedJavaBin = %q, want %q", got, javaPath)
	}
}

func TestManagedJavaBin_NoneFound(t *testing.T) {
	home := t.TempDir()
	if got := managedJavaBin(home); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}
