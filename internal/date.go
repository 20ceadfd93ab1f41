package internal

import (
	"fmt"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

// exifDateOriginal extracts the DateTimeOriginal from EXIF metadata
func exifDateOriginal(fsys afero.Fs, path string) (time.Time, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, err
	}

	dateStr, err := tag.StringVal()
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse("2006:01:02 15:04:05", dateStr)
}

// folderDate is the date prefix of a main folder. Day is 0 when unknown.
type folderDate struct {
	Year, Month, Day int
}

func parseFolderDate(p string) (*folderDate, bool) {
	y, m, d, ok := FolderDate(p)
	if !ok {
		return nil, false
	}
	return &folderDate{Year: y, Month: m, Day: d}, true
}

// matches reports whether t falls on the folder date.
func (d *folderDate) matches(t time.Time) bool {
	if t.Year() != d.Year || int(t.Month()) != d.Month {
		return false
	}
	return d.Day == 0 || t.Day() == d.Day
}

func (d *folderDate) String() string {
	if d.Day == 0 {
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
