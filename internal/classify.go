package internal

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// mainFolderPattern matches a date prefixed folder name such as
// "2010-07-15 Vacation" or "2010_07_15_Trip".
var mainFolderPattern = regexp.MustCompile(`^(\d{4})[-_](\d{2})(?:[-_]?(\d{2}))?[^/]*$`)

// Classifier recognizes main and best folders from a path string alone.
type Classifier struct {
	best *regexp.Regexp
}

func NewClassifier(bestWord string) *Classifier {
	return &Classifier{
		best: regexp.MustCompile(`^[^/]*` + regexp.QuoteMeta(bestWord) + `[^/]*$`),
	}
}

// lastSegment returns the final path segment, ignoring trailing separators.
func lastSegment(p string) string {
	p = strings.TrimRight(strings.ReplaceAll(p, `\`, "/"), "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// IsMainFolder reports whether the final segment of p starts with a date.
func (c *Classifier) IsMainFolder(p string) bool {
	return mainFolderPattern.MatchString(lastSegment(p))
}

// IsBestFolder reports whether the final segment of p contains the best word.
func (c *Classifier) IsBestFolder(p string) bool {
	seg := lastSegment(p)
	return seg != "" && c.best.MatchString(seg)
}

// FolderDate extracts the year, month and optional day of a main folder.
// Day is 0 when the folder name carries only a year and month.
func FolderDate(p string) (year, month, day int, ok bool) {
	m := mainFolderPattern.FindStringSubmatch(lastSegment(p))
	if m == nil {
		return 0, 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		day, _ = strconv.Atoi(m[3])
	}
	return year, month, day, true
}
