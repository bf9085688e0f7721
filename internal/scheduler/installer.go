package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/leshk0de/gcs-sync/internal/domain"
)

// Installer registers periodic invocations of an external command in a
// Store, at most once per command. Filesystem access goes through fs and
// table access through store, so the logic is testable against fakes.
type Installer struct {
	store Store
	fs    afero.Fs
	log   zerolog.Logger
	euid  func() int
}

func NewInstaller(store Store, fs afero.Fs, log zerolog.Logger) *Installer {
	return &Installer{store: store, fs: fs, log: log, euid: os.Geteuid}
}

// Install ensures entry is present in the table. Re-running with the same
// entry is a no-op: the table never gains a second line referencing the
// command. The whole table is written back in one Replace; on any store
// error nothing is mutated.
func (ins *Installer) Install(ctx context.Context, entry domain.ScheduleEntry) (domain.Outcome, error) {
	if err := ins.checkPrivilege(); err != nil {
		return "", err
	}
	expr, err := Expression(entry.IntervalMinutes)
	if err != nil {
		return "", err
	}
	if err := ins.checkCommand(entry.Command); err != nil {
		return "", err
	}
	if err := ins.ensureLogPath(entry.LogPath); err != nil {
		return "", err
	}

	lines, err := ins.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if match := findCommand(lines, entry.Command); match != "" {
		ins.log.Info().Str("command", entry.Command).Str("line", match).Msg("schedule already installed")
		return domain.OutcomeAlreadyInstalled, nil
	}

	line := entry.Line(expr)
	if err := ins.store.Replace(ctx, append(lines, line)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	ins.log.Info().Str("line", line).Msg("schedule installed")
	return domain.OutcomeInstalled, nil
}

// Remove drops every line referencing command, leaving all other lines
// untouched and in order.
func (ins *Installer) Remove(ctx context.Context, command string) (domain.Outcome, error) {
	if err := ins.checkPrivilege(); err != nil {
		return "", err
	}
	lines, err := ins.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	kept := make([]string, 0, len(lines))
	removed := 0
	for _, l := range lines {
		if strings.Contains(l, command) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	if removed == 0 {
		return domain.OutcomeNotInstalled, nil
	}
	if err := ins.store.Replace(ctx, kept); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	ins.log.Info().Str("command", command).Int("removed", removed).Msg("schedule removed")
	return domain.OutcomeRemoved, nil
}

// Status reports whether command is currently scheduled and, when it is,
// the matched line and its next fire time.
func (ins *Installer) Status(ctx context.Context, command string) (domain.StatusReport, error) {
	lines, err := ins.store.List(ctx)
	if err != nil {
		return domain.StatusReport{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	match := findCommand(lines, command)
	if match == "" {
		return domain.StatusReport{}, nil
	}

	rep := domain.StatusReport{Installed: true, Line: match}
	if fields := strings.Fields(match); len(fields) >= 5 {
		expr := strings.Join(fields[:5], " ")
		if next, err := NextRunTime(expr, time.Now()); err == nil {
			rep.NextRun = next.Format(time.RFC3339)
		}
	}
	return rep, nil
}

// findCommand returns the first line containing command as a substring.
// This is the same coarse check the original setup script used; it can
// match an unrelated entry that merely mentions the path as an argument.
func findCommand(lines []string, command string) string {
	for _, l := range lines {
		if strings.Contains(l, command) {
			return l
		}
	}
	return ""
}

func (ins *Installer) checkPrivilege() error {
	if ins.euid() == 0 {
		return ErrSuperuser
	}
	return nil
}

func (ins *Installer) checkCommand(command string) error {
	if !filepath.IsAbs(command) {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidCommand, command)
	}
	info, err := ins.fs.Stat(command)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %q is not executable", ErrInvalidCommand, command)
	}
	return nil
}

func (ins *Installer) ensureLogPath(logPath string) error {
	if !filepath.IsAbs(logPath) {
		return fmt.Errorf("%w: %q is not absolute", ErrLogPath, logPath)
	}
	if err := ins.fs.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrLogPath, err)
	}
	return nil
}
