package filemover

import (
	"github.com/spf13/cobra"

	"github.com/0xa1bed0/deskutils/internal/config"
	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/relocator"
	"github.com/0xa1bed0/deskutils/internal/runtime"
	"github.com/0xa1bed0/deskutils/internal/tui"
	"github.com/0xa1bed0/deskutils/internal/utils"
)

var (
	verbosity  int
	configPath string

	cfg = config.Default()
)

func Execute(rt *runtime.Runtime) error {
	return newRootCmd().ExecuteContext(rt.Ctx())
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filemover",
		Short: "Gather files of one type from subfolders into the current folder",
		Long: `filemover finds every file with a given extension below the current
directory and moves it into the current directory, renaming on collisions
(photo.png, photo_1.png, ...).

On a terminal 'filemover' opens an interactive screen. Otherwise it behaves
like 'filemover run --yes' with the configured default extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runtime.Interactive() {
				return runMove(cmd, runOptions{ext: cfg.FileMover.DefaultExtension, extSet: true, yes: true})
			}
			return runTUI(cmd)
		},

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logs.SetDebugVerbosity(verbosity)
			// filemover has no log file.
			logs.DisableFullLog()
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		// we will handle that
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultConfigFile()+")")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func runTUI(cmd *cobra.Command) error {
	root, err := utils.WorkingFolder()
	if err != nil {
		return err
	}

	screen, err := tui.OpenScreen()
	if err != nil {
		return err
	}
	release := logs.HoldStdout()
	defer release()
	defer screen.Fini()

	app := tui.NewFileMover(relocator.New(), root, cfg.FileMover.DefaultExtension)
	return app.Run(cmd.Context(), screen)
}
