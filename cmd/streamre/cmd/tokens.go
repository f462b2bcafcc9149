package cmd

import (
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pvto/streamre/internal/follow"
	"github.com/pvto/streamre/internal/logging/logfields"
	"github.com/pvto/streamre/internal/rules"
	"github.com/pvto/streamre/stream"
)

func newTokensCommand(vp *viper.Viper) *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens --rules FILE [INPUT]",
		Short: "Split input into tokens with a rule file",
		Long: `Split input into tokens with a rule file.
Every token is printed as line:column, rule name and quoted text, separated
by tabs. Tokens of skip rules are not printed. Input is read from INPUT, or
from stdin when INPUT is missing or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, vp, args)
		},
	}

	flags := tokensCmd.Flags()
	flags.String("rules", "", "Rule file (YAML)")
	flags.Bool("skip-delims", false, "Drop spaces, tabs, line breaks and commas between tokens")

	// follow mode flags
	followFlags := pflag.NewFlagSet("Follow", pflag.ContinueOnError)
	followFlags.Bool("follow", false, "Keep reading when the input grows, until interrupted")
	followFlags.Duration("poll-interval", follow.DefaultInterval, "Time between polls in follow mode")
	flags.AddFlagSet(followFlags)

	vp.BindPFlags(flags)
	return tokensCmd
}

func runTokens(cmd *cobra.Command, vp *viper.Viper, args []string) error {
	path := vp.GetString("rules")
	if path == "" {
		return errors.New("--rules is required")
	}
	f, err := rules.Load(path)
	if err != nil {
		return pkgerrors.Wrap(err, "unable to load rules")
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	var r io.Reader = in
	if vp.GetBool("follow") {
		r = follow.NewReader(cmd.Context(), in, vp.GetDuration("poll-interval"))
	}
	tz, err := rules.NewTokenizer(f, stream.NewReader(r), vp.GetBool("skip-delims"))
	if err != nil {
		return pkgerrors.Wrap(err, "unable to build tokenizer")
	}

	log.WithFields(logrus.Fields{
		logfields.Path: path,
		"follow":       vp.GetBool("follow"),
	}).Info("Tokenizing input")

	out := cmd.OutOrStdout()
	n := 0
	for {
		tok, err := tz.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		n++
		fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Value.Name, tok.Text)
	}
	log.WithField("tokens", n).Info("Done")
	return nil
}
