package portview

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/deskutils/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of portview",
		Long:  `Display the current version of portview.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Get())
		},
	}

	return cmd
}
