package main

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/geo-labs/choromap/internal/domain"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestRun_NoArgumentsIsUsageError(t *testing.T) {
	err := execute(t, "run")
	if !errors.Is(err, domain.ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("expected exit 2, got %d", exitCode(err))
	}
}

func TestRun_NonexistentNameIsMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "run", "nope",
		"--config", filepath.Join(dir, "no-config.toml"),
		"--inputs-dir", dir)
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Fatalf("expected exit 1, got %d", exitCode(err))
	}
}

func TestRender_NoArgumentsIsUsageError(t *testing.T) {
	err := execute(t, "render")
	if !errors.Is(err, domain.ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestPages_RejectsPositionalArguments(t *testing.T) {
	err := execute(t, "pages", "stray")
	if err == nil {
		t.Fatal("expected an error for a stray positional argument")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "usage", err: domain.ErrUsage, want: 2},
		{name: "missing input", err: domain.ErrMissingInput, want: 1},
		{name: "cancelled", err: context.Canceled, want: 0},
		{name: "other", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
