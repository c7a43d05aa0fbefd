package portview

import (
	"github.com/spf13/cobra"

	"github.com/0xa1bed0/deskutils/internal/config"
	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/ports"
	"github.com/0xa1bed0/deskutils/internal/porttable"
	"github.com/0xa1bed0/deskutils/internal/runtime"
	"github.com/0xa1bed0/deskutils/internal/tui"
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
		Use:   "portview",
		Short: "Show listening TCP and UDP ports with their processes",
		Long: `portview lists TCP sockets in LISTEN state and bound UDP sockets together
with the PID and name of the owning process.

On a terminal 'portview' opens an interactive table: press Query (r) to
refresh and click a column header (or 1-4) to sort. Otherwise it behaves
like 'portview list'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runtime.Interactive() {
				return runList(cmd, listOptions{})
			}
			return runTUI(cmd)
		},

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logs.SetDebugVerbosity(verbosity)
			return setup()
		},
		// we will handle that
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultConfigFile()+")")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func setup() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logPath, err := config.ResolvePortLogPath(cfg.PortView.LogFile)
	if err != nil {
		logs.Errorf("resolve log file %s: %v", cfg.PortView.LogFile, err)
		return nil
	}
	if err := logs.SetFullLogPath(logPath); err != nil {
		logs.Errorf("open log file %s: %v", logPath, err)
	}
	return nil
}

func newEnumerator(rt *runtime.Runtime) *ports.Enumerator {
	return ports.NewEnumerator(ports.Options{
		ProcRoot: cfg.PortView.ProcRoot,
		GOOS:     rt.GOOS(),
	})
}

func sortMode(numeric bool) porttable.SortMode {
	if numeric || cfg.PortView.NumericSort {
		return porttable.SortNumeric
	}
	return porttable.SortLexical
}

func runTUI(cmd *cobra.Command) error {
	rt := runtime.FromContextOrPanic(cmd.Context())

	screen, err := tui.OpenScreen()
	if err != nil {
		return err
	}
	// console lines would land on the alternate screen
	release := logs.HoldStdout()
	defer release()
	defer screen.Fini()

	logs.InfofSilent("port viewer started")
	app := tui.NewPortView(newEnumerator(rt), porttable.New(sortMode(false)))
	return app.Run(cmd.Context(), screen)
}
