package cmd

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pvto/streamre"
)

func newDumpCommand(_ *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump PATTERN",
		Short: "Print the compiled node graph of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := streamre.Compile(args[0])
			if err != nil {
				return pkgerrors.Wrap(err, "invalid pattern")
			}
			if err := re.Dump(cmd.OutOrStdout()); err != nil {
				return err
			}
			cmd.Printf("nodes: %d, classes: %d\n", re.NodeCount(), re.ClassCount())
			return nil
		},
	}
}
