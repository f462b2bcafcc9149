// Package cmd implements the streamre command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pvto/streamre/internal/logging"
	"github.com/pvto/streamre/internal/logging/logfields"
)

const (
	ExitOK      = 0
	ExitNoMatch = 1
	ExitError   = 2
)

// errNoMatch makes Execute exit with ExitNoMatch without printing anything.
var errNoMatch = errors.New("no match")

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "cli")

// NewRootCmd returns the streamre command with its subcommands. Settings
// are read through vp from flags, STREAMRE_* environment variables and an
// optional config file, in that order of precedence.
func NewRootCmd(vp *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "streamre",
		Short:         "Match and tokenize character streams",
		Long:          "streamre - match patterns against streams one character at a time, without backtracking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(vp, cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (YAML)")
	flags.String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	flags.String("log-format", string(logging.DefaultLogFormat), "Log format (text, json)")
	vp.BindPFlags(flags)

	rootCmd.AddCommand(
		newMatchCommand(vp),
		newTokensCommand(vp),
		newDumpCommand(vp),
	)
	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(vp *viper.Viper, cfgFile string) error {
	vp.SetEnvPrefix("streamre")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()

	if cfgFile != "" {
		vp.SetConfigFile(cfgFile)
		if err := vp.ReadInConfig(); err != nil {
			return pkgerrors.Wrapf(err, "unable to read config file %s", cfgFile)
		}
	}

	if err := logging.SetupLogging(vp.GetString("log-level"), vp.GetString("log-format")); err != nil {
		return pkgerrors.Wrap(err, "unable to set up logging")
	}
	if used := vp.ConfigFileUsed(); used != "" {
		log.WithField(logfields.Path, used).Debug("Using config file")
	}
	return nil
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	vp := viper.New()
	rootCmd := NewRootCmd(vp)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	runID := uuid.New().String()
	scoped := log.WithField(logfields.RunID, runID)
	scoped.WithField("args", args).Debug("Starting")

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errNoMatch):
		return ExitNoMatch
	default:
		scoped.WithError(err).Error("Command failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}

// openInput opens the file named by the optional argument, or stdin.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, pkgerrors.Wrap(err, "unable to open input")
	}
	return f, nil
}

func logFields(pattern string) logrus.Fields {
	return logrus.Fields{logfields.Pattern: pattern}
}
