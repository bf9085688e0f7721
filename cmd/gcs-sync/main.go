package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/leshk0de/gcs-sync/internal/bootstrap"
	"github.com/leshk0de/gcs-sync/internal/config"
	"github.com/leshk0de/gcs-sync/internal/crontab"
	"github.com/leshk0de/gcs-sync/internal/domain"
	"github.com/leshk0de/gcs-sync/internal/scheduler"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Str("run_id", uuid.NewString()).Logger()

	app := cli.NewApp()
	app.Name = "gcs-sync"
	app.Usage = "provision the GCS Pub/Sub fetcher and its cron schedule"
	app.ArgsUsage = "[interval-minutes]"
	app.Flags = commonFlags
	app.Action = installAction
	app.Commands = []cli.Command{
		{
			Name:      "install",
			Usage:     "register the periodic fetch job (default command)",
			ArgsUsage: "[interval-minutes]",
			Flags:     commonFlags,
			Action:    installAction,
		},
		{
			Name:   "remove",
			Usage:  "remove the fetch job from the crontab",
			Flags:  commonFlags,
			Action: removeAction,
		},
		{
			Name:   "status",
			Usage:  "report whether the fetch job is scheduled",
			Flags:  commonFlags,
			Action: statusAction,
		},
		{
			Name:   "bootstrap",
			Usage:  "provision the Python virtualenv for the fetch script",
			Flags:  bootstrapFlags,
			Action: bootstrapAction,
		},
	}

	if err := app.Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "gcs-sync: %s\n", err.Error())
		return 1
	}
	return 0
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(afero.NewOsFs(), configPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	if script != "" {
		cfg.FetchScript = script
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if venvDir != "" {
		cfg.VenvDir = venvDir
	}
	if python != "" {
		cfg.Python = python
	}
	return cfg, nil
}

func newInstaller() *scheduler.Installer {
	return scheduler.NewInstaller(crontab.NewStore(log.Logger), afero.NewOsFs(), log.Logger)
}

func installAction(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	interval := cfg.IntervalMinutes
	if raw := c.Args().First(); raw != "" {
		interval, err = strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("interval must be an integer, got %q", raw)
		}
	}

	outcome, err := newInstaller().Install(context.Background(), domain.ScheduleEntry{
		Command:         cfg.FetchScript,
		IntervalMinutes: interval,
		LogPath:         cfg.LogFile,
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("outcome", string(outcome)).
		Str("script", cfg.FetchScript).
		Int("interval_minutes", interval).
		Msg("install finished")
	return nil
}

func removeAction(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outcome, err := newInstaller().Remove(context.Background(), cfg.FetchScript)
	if err != nil {
		return err
	}
	log.Info().Str("outcome", string(outcome)).Str("script", cfg.FetchScript).Msg("remove finished")
	return nil
}

func statusAction(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rep, err := newInstaller().Status(context.Background(), cfg.FetchScript)
	if err != nil {
		return err
	}
	if !rep.Installed {
		fmt.Printf("%s: not scheduled\n", cfg.FetchScript)
		return nil
	}
	fmt.Printf("%s: scheduled\n  entry:    %s\n  next run: %s\n", cfg.FetchScript, rep.Line, rep.NextRun)
	return nil
}

func bootstrapAction(c *cli.Context) error {
	if os.Geteuid() == 0 {
		return scheduler.ErrSuperuser
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b := bootstrap.New(afero.NewOsFs(), log.Logger)
	return b.Run(context.Background(), bootstrap.Config{
		Python:  cfg.Python,
		VenvDir: cfg.VenvDir,
	})
}
