package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/lifecycle"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
	"github.com/aretw0/quire/internal/watch"
	"github.com/aretw0/quire/pkg/adapters/fs"
)

var watchJSON bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Stream changes to the notes of a library",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		repo := fs.NewRepository(fs.Config{Logger: slog.Default()})
		_, lib, err := quire.OpenLibrary(ctx, argOrEmpty(args), quire.WithRepository(repo), quire.WithLogger(slog.Default()))
		if err != nil {
			fatal("Error opening library", err)
		}

		events := make(chan watch.Event, 64)
		source := watch.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Error starting event source", err)
		}
		lifecycle.Go(ctx, func(ctx context.Context) error {
			for e := range source.Events() {
				if we, ok := e.(watch.Event); ok {
					printEvent(we)
				}
			}
			return nil
		}, lifecycle.WithErrorHandler(func(err error) {
			slog.Error("event printer failed", "error", err)
		}))

		color.Green("Watching %s (ctrl+c to stop)", lib.Path())
		err = watch.Run(ctx, repo, lib.Path(), events,
			watch.WithLogger(slog.Default()),
			watch.WithErrorHandler(func(err error) {
				slog.Warn("watcher error", "error", err)
			}),
		)
		if err != nil {
			fatal("Error watching library", err)
		}
	},
}

func printEvent(e watch.Event) {
	if watchJSON {
		data, err := json.Marshal(e)
		if err != nil {
			slog.Error("failed to encode event", "error", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	op := string(e.Op)
	switch e.Op {
	case watch.Created:
		op = color.GreenString(op)
	case watch.Modified:
		op = color.YellowString(op)
	case watch.Removed:
		op = color.RedString(op)
	}
	fmt.Printf("%s %-8s %-7s %s\n", e.Timestamp.Format("15:04:05"), op, e.Subject, e.Node)
}

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print events as JSON lines")
	rootCmd.AddCommand(watchCmd)
}
