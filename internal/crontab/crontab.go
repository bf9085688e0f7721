package crontab

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Store reads and replaces the invoking user's crontab through crontab(1).
// It implements scheduler.Store.
type Store struct {
	log zerolog.Logger
	run runFunc
}

type runFunc func(ctx context.Context, stdin string, args ...string) (stdout, stderr string, err error)

func NewStore(log zerolog.Logger) *Store {
	return &Store{log: log, run: runCrontab}
}

func runCrontab(ctx context.Context, stdin string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "crontab", args...)
	cmd.Stdin = strings.NewReader(stdin)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	return out.String(), errOut.String(), err
}

// List snapshots the current table. A user with no crontab yet is an empty
// snapshot: crontab -l exits nonzero with "no crontab for <user>" on stderr.
func (s *Store) List(ctx context.Context) ([]string, error) {
	out, stderr, err := s.run(ctx, "", "-l")
	if err != nil {
		if isMissingTable(stderr) {
			return nil, nil
		}
		return nil, fmt.Errorf("crontab -l: %v: %s", err, strings.TrimSpace(stderr))
	}
	return splitLines(out), nil
}

// Replace installs the full table in a single crontab invocation, so the
// write is all-or-nothing at the process boundary.
func (s *Store) Replace(ctx context.Context, lines []string) error {
	table := strings.Join(lines, "\n") + "\n"
	_, stderr, err := s.run(ctx, table, "-")
	if err != nil {
		return fmt.Errorf("crontab -: %v: %s", err, strings.TrimSpace(stderr))
	}
	s.log.Debug().Int("lines", len(lines)).Msg("crontab replaced")
	return nil
}

func isMissingTable(stderr string) bool {
	return strings.Contains(stderr, "no crontab for")
}

func splitLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
