package internal

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// extStat accumulates the files of one extension found in main folders.
type extStat struct {
	Count int
	Size  int64
}

// Reporter walks the archive and prints one of the directory reports.
type Reporter struct {
	fs         afero.Fs
	classifier *Classifier
	filter     *MediaFilter
	mode       ReportMode
	out        io.Writer
	log        *Logger

	root       string
	extensions map[string]*extStat
	mismatches int
	undated    int
}

func NewReporter(fsys afero.Fs, cfg *Config, mode ReportMode, out io.Writer, log *Logger) *Reporter {
	return &Reporter{
		fs:         fsys,
		classifier: NewClassifier(cfg.BestWord),
		filter:     NewMediaFilter(cfg),
		mode:       mode,
		out:        out,
		log:        log,
	}
}

// Run prints the report for everything beneath root and returns the number of
// directories visited.
func (r *Reporter) Run(root string) (int, error) {
	if _, err := r.fs.Stat(root); err != nil {
		return 0, fmt.Errorf("cannot access %s: %w", root, err)
	}
	r.root = root
	r.extensions = make(map[string]*extStat)
	r.mismatches = 0
	r.undated = 0

	switch r.mode {
	case ReportMissingBest:
		fmt.Fprintf(r.out, "-- Folders without a best folder beneath: '%s' ---\n\n", root)
	case ReportFileTypes:
		fmt.Fprintf(r.out, "-- File types beneath: '%s' ---\n\n", root)
	case ReportDates:
		fmt.Fprintf(r.out, "-- Photos not taken on their folder date beneath: '%s' ---\n\n", root)
	}

	visited := r.processPath(root, nil)
	r.summary()
	return visited, nil
}

// processPath handles p if it is a directory. Anything else is skipped.
func (r *Reporter) processPath(p string, date *folderDate) int {
	isDir, err := afero.IsDir(r.fs, p)
	if err != nil {
		r.log.Error("error while processing path", "path", p, "err", err)
		return 0
	}
	if !isDir {
		return 0
	}
	return r.processFolder(p, date)
}

func (r *Reporter) processFolder(dir string, date *folderDate) int {
	result := 1
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		r.log.Error("error while processing path", "path", dir, "err", err)
		return result
	}

	var subdirs []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if e.IsDir() && !r.filter.Ignored(relSlash(r.root, p), true) {
			subdirs = append(subdirs, p)
		}
	}

	if d, ok := parseFolderDate(dir); ok {
		date = d

		if r.mode == ReportMissingBest {
			if !slices.ContainsFunc(subdirs, r.classifier.IsBestFolder) {
				fmt.Fprintln(r.out, dir)
			}
			return result
		}
		if r.mode == ReportFileTypes {
			r.countExtensions(dir, entries)
		}
	}

	if r.mode == ReportDates && date != nil {
		r.checkDates(dir, entries, date)
	}

	for _, sub := range subdirs {
		result += r.processPath(sub, date)
	}
	return result
}

func (r *Reporter) countExtensions(dir string, entries []os.FileInfo) {
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name())), ".")
		st, seen := r.extensions[ext]
		if !seen {
			st = &extStat{}
			r.extensions[ext] = st
			fmt.Fprintf(r.out, "%s :         found in '%s' directory\n", ext, dir)
		}
		st.Count++
		st.Size += e.Size()
	}
}

func (r *Reporter) checkDates(dir string, entries []os.FileInfo, date *folderDate) {
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if e.IsDir() || !r.filter.IsImage(p) {
			continue
		}
		taken, err := exifDateOriginal(r.fs, p)
		if err != nil {
			r.undated++
			r.log.Debug("no capture date", "path", p, "err", err)
			continue
		}
		if !date.matches(taken) {
			r.mismatches++
			fmt.Fprintf(r.out, "%s : taken %s, folder date %s\n", p, taken.Format("2006-01-02"), date)
		}
	}
}

func (r *Reporter) summary() {
	switch r.mode {
	case ReportFileTypes:
		if len(r.extensions) == 0 {
			return
		}
		fmt.Fprintln(r.out)
		for _, ext := range slices.Sorted(maps.Keys(r.extensions)) {
			st := r.extensions[ext]
			fmt.Fprintf(r.out, "%-8s %6d files %10s\n", ext, st.Count, humanize.Bytes(uint64(st.Size)))
		}
	case ReportDates:
		fmt.Fprintf(r.out, "\n%d photos off their folder date, %d without a capture date\n", r.mismatches, r.undated)
	}
}
