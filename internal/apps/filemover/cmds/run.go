package filemover

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/relocator"
	"github.com/0xa1bed0/deskutils/internal/runtime"
	"github.com/0xa1bed0/deskutils/internal/utils"
)

type runOptions struct {
	ext    string
	extSet bool // an explicit --ext "" is rejected, not prompted for
	yes    bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Move matching files into the current folder.",
		Long: `Move every file with the given extension found below the current folder
into the current folder. Without --ext the extension is asked for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.extSet = cmd.Flags().Changed("ext")
			return runMove(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ext, "ext", "e", "", "file extension to gather, with or without the dot")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runMove(cmd *cobra.Command, opts runOptions) error {
	rt := runtime.FromContextOrPanic(cmd.Context())

	raw := opts.ext
	if raw == "" && !opts.extSet {
		answer, err := logs.PromptInput("File extension", cfg.FileMover.DefaultExtension)
		if err != nil {
			return err
		}
		raw = answer
	}

	ext, err := relocator.NormalizeExtension(raw)
	if err != nil {
		return err
	}

	root, err := utils.WorkingFolder()
	if err != nil {
		return err
	}

	if !opts.yes {
		ok, err := logs.PromptConfirm(fmt.Sprintf("Move all .%s files below %s into it?", ext, root))
		if err != nil {
			return err
		}
		if !ok {
			logs.Infof("Nothing moved")
			return nil
		}
	}

	tail := logs.NewTailBox("filemover")
	events := make(chan relocator.Event, 64)
	drained := make(chan struct{})
	rt.GoNamed("filemover-events", func() {
		defer close(drained)
		for ev := range events {
			tail.Println(ev.String())
			if ev.Kind == relocator.EventFailed {
				logs.Warnf("%s", ev.String())
			}
		}
	})

	res, err := relocator.New().Run(cmd.Context(), root, ext, events)
	close(events)
	<-drained
	tail.Close()

	if err != nil {
		return fmt.Errorf("moved %d file(s) before stopping: %w", res.Moved, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %d file(s)\n", res.Moved)
	if res.Failed > 0 {
		return fmt.Errorf("%d file(s) could not be moved", res.Failed)
	}
	return nil
}
