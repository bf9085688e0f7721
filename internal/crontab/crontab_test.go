package crontab

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type call struct {
	stdin string
	args  []string
}

func fakeStore(stdout, stderr string, err error, calls *[]call) *Store {
	s := NewStore(zerolog.Nop())
	s.run = func(ctx context.Context, stdin string, args ...string) (string, string, error) {
		if calls != nil {
			*calls = append(*calls, call{stdin: stdin, args: args})
		}
		return stdout, stderr, err
	}
	return s
}

func TestListSplitsLines(t *testing.T) {
	t.Parallel()
	s := fakeStore("0 4 * * * /usr/local/bin/backup.sh\n*/5 * * * * /opt/fetch.py >> /opt/logs/gcs-sync.log 2>&1\n", "", nil, nil)
	lines, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if lines[0] != "0 4 * * * /usr/local/bin/backup.sh" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestListMissingTableIsEmpty(t *testing.T) {
	t.Parallel()
	s := fakeStore("", "no crontab for alice\n", errors.New("exit status 1"), nil)
	lines, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("a missing table must not be an error, got %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("got %d lines, want 0", len(lines))
	}
}

func TestListOtherFailure(t *testing.T) {
	t.Parallel()
	s := fakeStore("", "crontab: permission denied\n", errors.New("exit status 1"), nil)
	if _, err := s.List(context.Background()); err == nil {
		t.Fatal("expected error for non-missing-table failure")
	}
}

func TestListEmptyTable(t *testing.T) {
	t.Parallel()
	s := fakeStore("", "", nil, nil)
	lines, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("got %d lines, want 0", len(lines))
	}
}

func TestReplaceWritesWholeTable(t *testing.T) {
	t.Parallel()
	var calls []call
	s := fakeStore("", "", nil, &calls)
	err := s.Replace(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d crontab invocations, want 1", len(calls))
	}
	if got := strings.Join(calls[0].args, " "); got != "-" {
		t.Fatalf("args = %q, want -", got)
	}
	if calls[0].stdin != "a\nb\n" {
		t.Fatalf("stdin = %q, want %q", calls[0].stdin, "a\nb\n")
	}
}

func TestReplaceFailure(t *testing.T) {
	t.Parallel()
	s := fakeStore("", "crontab: installing new crontab: No space left on device\n", errors.New("exit status 1"), nil)
	if err := s.Replace(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error when crontab rejects the table")
	}
}
