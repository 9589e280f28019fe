package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/sucre/js/codebase"
	"github.com/dhamidi/sucre/project"
)

var log = commonlog.GetLogger("sucre.build")

func newBuildCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Transpile every source file of a project into its output directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			p, err := project.LoadFrom(dir)
			if err != nil {
				return fmt.Errorf("load project: %w", err)
			}

			if !watch {
				return runBuild(cmd.ErrOrStderr(), p)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd.ErrOrStderr(), p, interval)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and rebuild files as they change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval in watch mode")

	return cmd
}

func runBuild(w io.Writer, p *project.Project) error {
	built, errs := p.Build()
	for _, err := range errs {
		printError(w, err)
	}
	fmt.Fprintf(w, "built %d files into %s\n", built, p.OutDir)
	if len(errs) > 0 {
		return fmt.Errorf("%d files failed", len(errs))
	}
	return nil
}

// runWatch rebuilds changed sources until ctx is done. Removed sources
// have their output deleted.
func runWatch(ctx context.Context, w io.Writer, p *project.Project, interval time.Duration) error {
	c := codebase.New(p)
	watcher := codebase.NewFileWatcher(c, func(path string, kind codebase.ChangeKind) {
		src, ok := p.SourceFile(path)
		if !ok {
			return
		}
		switch kind {
		case codebase.FileRemoved:
			out := p.OutputPath(src)
			if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
				printError(w, err)
				return
			}
			log.Infof("removed %s", out)
		case codebase.FileChanged:
			if err := p.Transpile(src); err != nil {
				printError(w, err)
				return
			}
			fmt.Fprintf(w, "built %s\n", src.RelPath)
		}
	})
	watcher.SetPollInterval(interval)
	watcher.Start()

	fmt.Fprintf(w, "watching %s\n", p.SrcDir)
	<-ctx.Done()
	watcher.Stop()
	return nil
}
