package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestScript_RecordsAndReplies(t *testing.T) {
	s := NewScript().
		On(Reply{Stdout: "abc\n"}, "git", "rev-parse", "HEAD").
		On(Reply{ExitCode: 1, Stderr: "nope"}, "git", "symbolic-ref", "HEAD")

	res, err := s.Capture(context.Background(), Command{Name: "git", Args: []string{"rev-parse", "HEAD"}, Dir: "/repo"})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.Stdout != "abc\n" {
		t.Fatalf("Stdout = %q", res.Stdout)
	}

	err = s.Check(context.Background(), Command{Name: "git", Args: []string{"symbolic-ref", "HEAD"}})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}

	if err := s.Check(context.Background(), Command{Name: "git", Args: []string{"status"}}); err != nil {
		t.Fatalf("default reply should succeed: %v", err)
	}

	want := []string{"git rev-parse HEAD", "git symbolic-ref HEAD", "git status"}
	got := s.Lines()
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if s.Calls[0].Dir != "/repo" {
		t.Fatalf("Dir = %q, want /repo", s.Calls[0].Dir)
	}
	if !s.Called("git symbolic-ref") || s.Called("git push") {
		t.Fatalf("Called() mismatch")
	}
}

func TestScript_CheckWritesStdout(t *testing.T) {
	s := NewScript().On(Reply{Stdout: "log entry\n"}, "git", "log")
	var out bytes.Buffer
	if err := s.Check(context.Background(), Command{Name: "git", Args: []string{"log"}, Stdout: &out}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.String() != "log entry\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestScript_PipelineCleanup(t *testing.T) {
	s := NewScript().
		On(Reply{ExitCode: 128, Stderr: "fatal"}, "git", "archive").
		On(Reply{Stdout: "compressed"}, "bzip2", "-c")

	path := filepath.Join(t.TempDir(), "a.tar.bz2")
	p := NewPipeline(Command{Name: "git", Args: []string{"archive"}}, Command{Name: "bzip2", Args: []string{"-c"}})
	err := p.ToFile(context.Background(), s, path)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode != 128 {
		t.Fatalf("err = %v, want exit code 128", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial archive left behind")
	}
}
