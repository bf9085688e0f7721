package main

import "github.com/urfave/cli"

var (
	configPath string
	script     string
	logFile    string
	venvDir    string
	python     string
)

var commonFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "config, c",
		Usage:       "path to the fetch-job config.json",
		EnvVar:      "GCS_SYNC_CONFIG",
		Destination: &configPath,
	},
	cli.StringFlag{
		Name:        "script, s",
		Usage:       "absolute path of the fetch script to schedule",
		Destination: &script,
	},
	cli.StringFlag{
		Name:        "log-file, l",
		Usage:       "absolute path the scheduled job appends its output to",
		Destination: &logFile,
	},
}

var bootstrapFlags = []cli.Flag{
	commonFlags[0],
	cli.StringFlag{
		Name:        "venv",
		Usage:       "directory of the Python virtualenv to provision",
		Destination: &venvDir,
	},
	cli.StringFlag{
		Name:        "python",
		Usage:       "interpreter used to create the virtualenv",
		Destination: &python,
	},
}
