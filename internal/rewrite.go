package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// tempPrefix names the temporary copies written next to the original.
const tempPrefix = ".phototag-"

// RewriterOptions control how keywords are computed.
type RewriterOptions struct {
	Mode         Mode
	PathKeywords bool
	Normalize    bool
}

// Rewriter reads a photo, computes its new keywords and replaces it with a
// tagged copy.
type Rewriter struct {
	fs      afero.Fs
	codec   Codec
	tagger  *Tagger
	opts    RewriterOptions
	stats   KeywordStats
	journal *Journal
}

func NewRewriter(fsys afero.Fs, codec Codec, tagger *Tagger, opts RewriterOptions) *Rewriter {
	return &Rewriter{
		fs:     fsys,
		codec:  codec,
		tagger: tagger,
		opts:   opts,
		stats:  KeywordStats{},
	}
}

// SetJournal records tagged and skipped files in j. j may be nil.
func (r *Rewriter) SetJournal(j *Journal) { r.journal = j }

// Stats returns the keyword frequencies gathered in ModeGather.
func (r *Rewriter) Stats() KeywordStats { return r.stats }

// RewriteFile processes one photo and reports whether it was modified.
func (r *Rewriter) RewriteFile(path string) (bool, error) {
	img, err := r.codec.Decode(path)
	if err != nil {
		return false, err
	}
	keys := NewKeywordSet(slices.Concat(img.Keywords, img.Subject)...).Sorted()

	switch {
	case r.opts.Mode == ModeGather:
		r.stats.Extend(keys)
		return false, nil
	case r.opts.Mode == ModeUntouched && r.tagger.HasSignature(keys):
		r.journal.LogSkipped(path, "already tagged")
		return false, nil
	}

	kwPath := ""
	if r.opts.PathKeywords {
		kwPath = path
	}
	set := r.tagger.PopulateKeywords(img.Keywords, r.opts.Normalize, kwPath, img.Subject)
	r.tagger.Stamp(set)
	rating := r.tagger.Rating(set)
	keywords := set.Sorted()

	if err := r.replace(path, func(tmp string) error {
		return r.codec.Encode(img, keywords, rating, tmp)
	}); err != nil {
		return false, err
	}

	r.journal.LogTagged(path, keywords, rating)
	return true, nil
}

// replace writes a new version of path through write into a temporary file in
// the same directory. The original is removed only after write succeeded and
// the temporary file is moved into its place. A leftover temporary file is
// removed on every exit path, except when it is the only remaining copy.
func (r *Rewriter) replace(path string, write func(tmp string) error) error {
	f, err := afero.TempFile(r.fs, filepath.Dir(path), tempPrefix+"*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmp := f.Name()
	orphaned := false
	defer func() {
		if orphaned {
			return
		}
		if ok, _ := afero.Exists(r.fs, tmp); ok {
			_ = r.fs.Remove(tmp)
		}
	}()
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %s: %w", tmp, err)
	}

	if err := write(tmp); err != nil {
		return err
	}

	if err := r.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove original %s: %w", path, err)
	}
	if err := r.fs.Rename(tmp, path); err != nil {
		orphaned = true
		return fmt.Errorf("failed to move %s to %s, tagged copy kept: %w", tmp, path, err)
	}
	return nil
}
