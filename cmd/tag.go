package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"phototag/internal"
)

var (
	noPathKeywordsFlag bool
	noNormalizeFlag    bool
	journalFlag        bool
)

var tagCmd = &cobra.Command{
	Use:   "tag <g|n|f> <path>",
	Short: "Populate photo keywords from the folder structure",
	Long: `Derive keywords from the path of every photo beneath <path>, normalize them
and merge them into the photo's embedded keywords. <path> may be a single photo.

Switches:
  'g' - Gather distinct EXIF keyword tags
  'n' - Normal processing - if a file was tagged by phototag it is skipped
  'f' - Forced processing - all the files are processed, whether they were
        processed earlier or not

Use '?' to print this help.`,
	Example: `  phototag tag g ~/Photos/2010
  phototag tag n ~/Photos/2010
  phototag tag f ~/Photos/2010/2010-07-15\ Family`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, path, err := parseToolArgs(cmd, args, internal.TagSwitches)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err != nil {
			return &internal.ArgumentError{Msg: fmt.Sprintf("path does not exist: %s", path)}
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

		var journal *internal.Journal
		if journalFlag || conf.JournalDir != "" {
			dir, err := conf.JournalDirectory()
			if err != nil {
				return err
			}
			if journal, err = internal.NewJournal(dir); err != nil {
				return err
			}
			defer journal.Close()
			logger.Info("journal", "path", journal.Path)
		}

		opts := internal.RewriterOptions{
			Mode:         mode,
			PathKeywords: conf.PathKeywords && !noPathKeywordsFlag,
			Normalize:    conf.Normalize && !noNormalizeFlag,
		}
		_, err = processTree(afero.NewOsFs(), codec, conf, opts, path, logger, journal, cmd.OutOrStdout())
		return err
	},
}

// processTree runs the tagger over root and prints the run summary to out.
func processTree(fsys afero.Fs, codec internal.Codec, conf *internal.Config, opts internal.RewriterOptions,
	root string, logger *internal.Logger, journal *internal.Journal, out io.Writer) (*internal.WalkResult, error) {

	tagger, err := internal.NewTagger(conf)
	if err != nil {
		return nil, err
	}

	rewriter := internal.NewRewriter(fsys, codec, tagger, opts)
	rewriter.SetJournal(journal)
	walker := internal.NewWalker(fsys, conf, rewriter, logger)
	walker.SetJournal(journal)
	walker.OnStart = func(total int) {
		journal.LogRunStart(root, opts.Mode, total)
	}

	fmt.Fprintf(out, "\n-- Exif processing beneath: '%s' (%s) ---\n\n", root, opts.Mode)

	start := time.Now()
	res, err := walker.Walk(root)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	journal.LogRunEnd(res)

	if stats := rewriter.Stats(); len(stats) > 0 {
		fmt.Fprintf(out, "\nDistinct keywords found beneath the '%s' folder:\n", root)
		fmt.Fprintln(out, "--------------------------------------------------------")
		for _, k := range stats.Keys() {
			fmt.Fprintf(out, "%s:%d\n", k, stats[k])
		}
	}

	printSummary(out, elapsed, res.Visited)
	fmt.Fprintf(out, "Tagged: %d  Not modified: %d  Errors: %d\n", res.Modified, res.Visited-res.Modified-res.Failed, len(res.Failures))

	if len(res.Failures) > 0 {
		errStats := internal.NewErrorStats()
		for _, f := range res.Failures {
			errStats.Add(f)
		}
		fmt.Fprint(out, errStats.GenerateReport())
	}
	return res, nil
}

func printSummary(out io.Writer, elapsed time.Duration, processed int) {
	var avg int64
	if processed > 0 {
		avg = elapsed.Milliseconds() / int64(processed)
	}
	fmt.Fprintf(out, "\n\nProcessing finished. Elapsed time: %s Processed items: %d (avg per item: %d ms)\n\n",
		elapsed.Round(time.Millisecond), processed, avg)
}

func init() {
	tagCmd.Flags().BoolVar(&noPathKeywordsFlag, "no-path-keywords", false, "Do not derive keywords from the photo path")
	tagCmd.Flags().BoolVar(&noNormalizeFlag, "no-normalize", false, "Do not normalize keywords")
	tagCmd.Flags().BoolVar(&journalFlag, "journal", false, "Write a JSON lines journal of the run")

	rootCmd.AddCommand(tagCmd)
}
