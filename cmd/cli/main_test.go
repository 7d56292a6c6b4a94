package main

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestReportPath(t *testing.T) {
	if got := reportPath("/api/v1/reports/financial", "", ""); got != "/api/v1/reports/financial" {
		t.Fatalf("expected bare path, got %q", got)
	}

	got := reportPath("/api/v1/reports/financial", "2026-01-01T00:00:00Z", "2026-02-01T00:00:00Z")
	expected := "/api/v1/reports/financial?from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}

	if got := reportPath("/x", "", "2026-02-01T00:00:00Z"); got != "/x?to=2026-02-01T00:00:00Z" {
		t.Fatalf("expected to-only query, got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestEntityCmdRegistersSubcommands(t *testing.T) {
	cmd := entityCmd("customer", "customers")

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, expected := range []string{"balance", "summary", "entries"} {
		if !names[expected] {
			t.Fatalf("expected %s subcommand to be registered", expected)
		}
	}
}
