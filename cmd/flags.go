package cmd

import "github.com/urfave/cli/v2"

var (
	//ConfigPathFlag specifies the config file path.
	ConfigPathFlag = &cli.StringFlag{
		Name:    "config-file",
		Usage:   "The filepath to a yaml file, defaults apply when omitted",
		EnvVars: []string{"AGRISYNC_CONFIG"},
	}

	// EnvFlag selects the prediction service environment.
	EnvFlag = &cli.StringFlag{
		Name:  "env",
		Usage: "Prediction service environment (local, deployed)",
	}

	// VerbosityFlag defines the log level.
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info=default, warn, error, fatal, panic)",
		Value: "info",
	}

	// LogFormatFlag specifies the log output format.
	LogFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Specify log formatting. Supports: text, json, fluentd, journald.",
		Value: "text",
	}

	// LogFilenameFlag specifies the log output file name.
	LogFilenameFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Specify log file name, relative or absolute",
	}

	// LogColorFlag specifies whether to force log color by skipping TTY check.
	LogColorFlag = &cli.BoolFlag{
		Name:  "log-color",
		Usage: "Force log color to be enabled, skipping TTY check",
	}
)

// CommonFlags are the flags shared by every binary.
var CommonFlags = []cli.Flag{
	ConfigPathFlag,
	EnvFlag,
	VerbosityFlag,
	LogFormatFlag,
	LogFilenameFlag,
	LogColorFlag,
}
