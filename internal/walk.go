package internal

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// FileProcessor processes one photo and reports whether it was modified.
type FileProcessor interface {
	RewriteFile(path string) (bool, error)
}

// WalkResult summarizes a walk. Visited counts every photo that was
// attempted, whatever the outcome; Failed counts the photos among them that
// raised an error.
type WalkResult struct {
	Visited     int
	Modified    int
	Failed      int
	MainFolders int
	BestFolders int
	Failures    []*ProcessError
}

func (r *WalkResult) merge(o *WalkResult) {
	r.Visited += o.Visited
	r.Modified += o.Modified
	r.Failed += o.Failed
	r.MainFolders += o.MainFolders
	r.BestFolders += o.BestFolders
	r.Failures = append(r.Failures, o.Failures...)
}

// Walker visits a photo tree depth first: the photos of a directory, then its
// sub-directories. Failures are captured per path and never stop the walk.
type Walker struct {
	fs         afero.Fs
	classifier *Classifier
	filter     *MediaFilter
	proc       FileProcessor
	log        *Logger
	journal    *Journal

	// OnStart, when set, is called with the photo count before processing.
	OnStart func(total int)

	root  string
	total int
	start time.Time
}

func NewWalker(fsys afero.Fs, cfg *Config, proc FileProcessor, log *Logger) *Walker {
	return &Walker{
		fs:         fsys,
		classifier: NewClassifier(cfg.BestWord),
		filter:     NewMediaFilter(cfg),
		proc:       proc,
		log:        log,
	}
}

// SetJournal records failures in j. j may be nil.
func (w *Walker) SetJournal(j *Journal) { w.journal = j }

// Total is the photo count computed by the last Walk's pre-pass.
func (w *Walker) Total() int { return w.total }

// Count returns the number of photos beneath root.
func (w *Walker) Count(root string) (int, error) {
	isDir, err := afero.IsDir(w.fs, root)
	if err != nil {
		return 0, err
	}
	if !isDir {
		return 1, nil
	}
	files, err := ScanImages(w.fs, root, w.filter)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// Walk processes root, which may be a directory or a single photo. Only a
// missing or unreadable root is returned as an error.
func (w *Walker) Walk(root string) (*WalkResult, error) {
	isDir, err := afero.IsDir(w.fs, root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}

	w.root = root
	w.start = time.Now()
	w.total, err = w.Count(root)
	if err != nil {
		w.log.Warn("failed to count photos", "path", root, "err", err)
	}
	if w.OnStart != nil {
		w.OnStart(w.total)
	}

	if !isDir {
		return w.visitFile(root), nil
	}
	return w.walkDir(root, 0), nil
}

func (w *Walker) walkDir(dir string, processed int) *WalkResult {
	res := &WalkResult{}
	dirStart := time.Now()

	switch {
	case w.classifier.IsMainFolder(dir):
		res.MainFolders++
		w.log.Debug("main folder", "path", dir)
	case w.classifier.IsBestFolder(dir):
		res.BestFolders++
		w.log.Debug("best folder", "path", dir)
	}

	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		res.Failures = append(res.Failures, w.fail(dir, err))
		return res
	}

	var subdirs []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		rel := relSlash(w.root, p)
		if e.IsDir() {
			if !w.filter.Ignored(rel, true) {
				subdirs = append(subdirs, p)
			}
			continue
		}
		if !w.filter.IsImage(p) || w.filter.Ignored(rel, false) {
			continue
		}
		res.merge(w.visitFile(p))
	}

	if res.Visited > 0 {
		w.progress(dir, processed+res.Visited, res.Visited, time.Since(dirStart))
	}

	for _, sub := range subdirs {
		res.merge(w.walkDir(sub, processed+res.Visited))
	}
	return res
}

func (w *Walker) visitFile(path string) *WalkResult {
	res := &WalkResult{Visited: 1}
	modified, err := w.proc.RewriteFile(path)
	if err != nil {
		res.Failed++
		res.Failures = append(res.Failures, w.fail(path, err))
		return res
	}
	if modified {
		res.Modified++
	} else {
		w.log.Debug("not modified", "path", path)
	}
	return res
}

func (w *Walker) fail(path string, err error) *ProcessError {
	procErr := CategorizeError(path, err)
	w.log.Error("error while processing path", "path", path, "err", err)
	w.journal.LogError(procErr)
	return procErr
}

func (w *Walker) progress(dir string, processed, inDir int, elapsed time.Duration) {
	pct := 0.0
	if w.total > 0 {
		pct = float64(processed) * 100 / float64(w.total)
	}
	w.log.Info("folder done",
		"path", dir,
		"files", inDir,
		"processed", fmt.Sprintf("%d/%d", processed, w.total),
		"percent", fmt.Sprintf("%.1f%%", pct),
		"elapsed", elapsed.Round(time.Millisecond),
		"total_elapsed", time.Since(w.start).Round(time.Second),
	)
}
