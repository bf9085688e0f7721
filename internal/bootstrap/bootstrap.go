package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultPackages are the client libraries the fetch script imports.
var DefaultPackages = []string{"google-cloud-storage", "google-cloud-pubsub"}

type Config struct {
	Python   string // interpreter used to create the venv, e.g. "python3"
	VenvDir  string
	Packages []string
}

// Step is one shell invocation of the provisioning plan.
type Step struct {
	Name string
	Argv []string
}

// Bootstrapper provisions the Python environment the fetch script runs in:
// a dedicated virtualenv with its dependencies installed. It never touches
// the scheduler.
type Bootstrapper struct {
	fs  afero.Fs
	log zerolog.Logger
	run func(ctx context.Context, argv []string) ([]byte, error)
}

func New(fs afero.Fs, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{fs: fs, log: log, run: runStep}
}

func runStep(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return cmd.CombinedOutput()
}

// Plan returns the provisioning steps for cfg. Venv creation is skipped
// when the venv already has a pip, so re-running only refreshes packages.
func (b *Bootstrapper) Plan(cfg Config) []Step {
	pip := filepath.Join(cfg.VenvDir, "bin", "pip")
	pkgs := cfg.Packages
	if len(pkgs) == 0 {
		pkgs = DefaultPackages
	}

	var steps []Step
	if ok, _ := afero.Exists(b.fs, pip); !ok {
		steps = append(steps, Step{Name: "create venv", Argv: []string{cfg.Python, "-m", "venv", cfg.VenvDir}})
	}
	steps = append(steps,
		Step{Name: "upgrade pip", Argv: []string{pip, "install", "--upgrade", "pip"}},
		Step{Name: "install fetcher deps", Argv: append([]string{pip, "install"}, pkgs...)},
	)
	return steps
}

// Run executes the plan in order, stopping at the first failing step.
func (b *Bootstrapper) Run(ctx context.Context, cfg Config) error {
	for _, st := range b.Plan(cfg) {
		b.log.Info().Str("step", st.Name).Strs("argv", st.Argv).Msg("running bootstrap step")
		out, err := b.run(ctx, st.Argv)
		if err != nil {
			return fmt.Errorf("%s: %v; out=%s", st.Name, err, bytes.TrimSpace(out))
		}
	}
	return nil
}
