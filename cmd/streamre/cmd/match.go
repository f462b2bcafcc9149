package cmd

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pvto/streamre"
)

func newMatchCommand(vp *viper.Viper) *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match PATTERN [FILE]",
		Short: "Check whether the whole input matches a pattern",
		Long: `Check whether the whole input matches a pattern.
Exits with 0 on a match and 1 otherwise. Input is read from FILE, or from
stdin when FILE is missing or "-".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, vp, args[0], args[1:])
		},
	}
	matchCmd.Flags().Bool("print", false, "Print \"match\" or \"no match\"")
	vp.BindPFlags(matchCmd.Flags())
	return matchCmd
}

func runMatch(cmd *cobra.Command, vp *viper.Viper, pattern string, args []string) error {
	re, err := streamre.Compile(pattern)
	if err != nil {
		return pkgerrors.Wrap(err, "invalid pattern")
	}
	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	ok, err := re.MatchReader(in)
	if err != nil {
		return pkgerrors.Wrap(err, "unable to read input")
	}
	log.WithFields(logFields(pattern)).WithField("match", ok).Debug("Matched input")

	if vp.GetBool("print") {
		if ok {
			cmd.Println("match")
		} else {
			cmd.Println("no match")
		}
	}
	if !ok {
		return errNoMatch
	}
	return nil
}
