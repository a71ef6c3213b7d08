package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/internal/filesystem"
	"github.com/Sravan2510/Data-Download-Duplication-Alert-System-DDAS/pkg/models"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScanCommand_JSONReport(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.txt":     "X",
		"sub/b.txt": "X",
		"sub/c.txt": "Y",
	})
	output := filepath.Join(t.TempDir(), "report.json")

	stdout, _, err := execute(t, "scan", root, "--report", "json", "--output", output)
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if !strings.Contains(stdout, output) {
		t.Errorf("Output does not mention report path:\n%s", stdout)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	var report models.ScanReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Invalid report: %v", err)
	}
	if report.TotalFiles != 3 || report.DuplicateFiles != 1 || report.SpaceWasted != 1 {
		t.Errorf("Report = %d/%d/%d, want 3/1/1", report.TotalFiles, report.DuplicateFiles, report.SpaceWasted)
	}
}

func TestScanCommand_Console(t *testing.T) {
	root := writeTree(t, map[string]string{
		"one.txt": "same",
		"two.txt": "same",
	})

	stdout, _, err := execute(t, "scan", root)
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	// one copy is redundant, both are flagged
	for _, want := range []string{"DUPLICATES FOUND: 1", "one.txt", "two.txt"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Console output missing %q:\n%s", want, stdout)
		}
	}
}

func TestScanCommand_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	if _, _, err := execute(t, "scan", missing); !errors.Is(err, filesystem.ErrNotFound) {
		t.Errorf("scan missing error = %v, want ErrNotFound", err)
	}
	if _, _, err := execute(t, "scan", t.TempDir(), "--report", "pdf"); err == nil {
		t.Error("scan with unknown report format expected error, got nil")
	}
}

func TestGetCommand(t *testing.T) {
	root := writeTree(t, map[string]string{"sub/b.txt": "hello"})

	stdout, _, err := execute(t, "get", "--root", root, "sub/b.txt")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	if stdout != "hello" {
		t.Errorf("get stdout = %q, want %q", stdout, "hello")
	}

	output := filepath.Join(t.TempDir(), "copy.txt")
	if _, _, err := execute(t, "get", "--root", root, "-o", output, "Root Directory/sub/b.txt"); err != nil {
		t.Fatalf("get -o error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil || string(data) != "hello" {
		t.Errorf("Copied file = %q, %v", data, err)
	}
}

func TestRmCommand(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "X"})
	outside := writeTree(t, map[string]string{"keep.txt": "keep"})

	stdout, _, err := execute(t, "rm", "--root", root, "a.txt")
	if err != nil {
		t.Fatalf("rm error = %v", err)
	}
	if !strings.Contains(stdout, "File deleted successfully") {
		t.Errorf("rm stdout = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "a.txt")); !os.IsNotExist(err) {
		t.Errorf("File still exists after rm: %v", err)
	}

	tests := []struct {
		name string
		arg  string
		want error
	}{
		{"Missing", "a.txt", filesystem.ErrNotFound},
		{"Escape", "../" + filepath.Base(outside) + "/keep.txt", filesystem.ErrAccessDenied},
		{"Absolute", filepath.Join(outside, "keep.txt"), filesystem.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, "rm", "--root", root, tt.arg); !errors.Is(err, tt.want) {
				t.Errorf("rm %s error = %v, want %v", tt.arg, err, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(outside, "keep.txt")); err != nil {
		t.Errorf("File outside root was removed: %v", err)
	}
}
