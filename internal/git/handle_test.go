package git

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
)

func TestNewHandle(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "project.xml")
	if err := os.WriteFile(feed, []byte("<feed/>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "Directory", location: dir, want: dir},
		{name: "File", location: feed, want: dir},
		{name: "NotYetWritten", location: filepath.Join(dir, "later.xml"), want: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandle(tt.location)
			if err != nil {
				t.Fatalf("NewHandle: %v", err)
			}
			if h.Dir() != tt.want {
				t.Fatalf("Dir() = %q, want %q", h.Dir(), tt.want)
			}
			if h.Root() != tt.want {
				t.Fatalf("Root() = %q, want %q", h.Root(), tt.want)
			}
		})
	}
}

func TestOpenHandle(t *testing.T) {
	root := t.TempDir()
	if _, err := gogit.PlainInit(root, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	sub := filepath.Join(root, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	h, err := OpenHandle(sub)
	if err != nil {
		t.Fatalf("OpenHandle: %v", err)
	}
	if h.Dir() != sub {
		t.Fatalf("Dir() = %q, want %q", h.Dir(), sub)
	}
	if h.Root() != root {
		t.Fatalf("Root() = %q, want %q", h.Root(), root)
	}

	if _, err := OpenHandle(t.TempDir()); err == nil {
		t.Fatalf("expected error outside a repository")
	}
}
