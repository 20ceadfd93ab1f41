package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"phototag/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Tag photos as they are added beneath a folder",
	Long: `Watch <path> and its sub-folders and tag every new or changed photo once it
stops changing. Photos already tagged by phototag are skipped. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return &internal.ArgumentError{Msg: fmt.Sprintf("not a directory: %s", root)}
		}

		conf, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logger.Close()

		codec, err := internal.NewExifToolCodec(conf.ExifToolPath)
		if err != nil {
			return err
		}
		defer codec.Close()

		tagger, err := internal.NewTagger(conf)
		if err != nil {
			return err
		}
		rewriter := internal.NewRewriter(afero.NewOsFs(), codec, tagger, internal.RewriterOptions{
			Mode:         internal.ModeUntouched,
			PathKeywords: conf.PathKeywords,
			Normalize:    conf.Normalize,
		})

		watcher, err := internal.NewWatcher(root, conf, rewriter, logger)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
		defer watcher.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("watching", "path", root, "settle", conf.WatchSettle)
		if err := watcher.Run(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\nTagged: %d\n", watcher.Tagged())
		if stats := watcher.Errors(); stats.Total > 0 {
			fmt.Fprint(out, stats.GenerateReport())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
