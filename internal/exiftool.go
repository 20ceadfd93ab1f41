package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/barasher/go-exiftool"
	"github.com/gabriel-vasile/mimetype"
)

// ExifToolCodec is the production Codec. It keeps one exiftool process open
// for the whole run.
type ExifToolCodec struct {
	et *exiftool.Exiftool
}

// NewExifToolCodec starts exiftool. binPath may be empty to use PATH.
func NewExifToolCodec(binPath string) (*ExifToolCodec, error) {
	var opts []func(*exiftool.Exiftool) error
	if binPath != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binPath))
	}
	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &ExifToolCodec{et: et}, nil
}

func (c *ExifToolCodec) Close() error {
	return c.et.Close()
}

func (c *ExifToolCodec) Decode(path string) (*Image, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("unsupported format %s", mt.String())}
	}

	fis := c.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return nil, &DecodeError{Path: path, Err: errors.New("no metadata returned")}
	}
	fi := fis[0]
	if fi.Err != nil {
		return nil, &DecodeError{Path: path, Err: fi.Err}
	}

	img := &Image{Source: path}
	if img.Keywords, err = optionalStrings(fi, "Keywords"); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if img.Subject, err = optionalStrings(fi, "Subject"); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if r, err := fi.GetInt("Rating"); err == nil {
		rating := int(r)
		img.Rating = &rating
	}
	return img, nil
}

func optionalStrings(fi exiftool.FileMetadata, key string) ([]string, error) {
	v, err := fi.GetStrings(key)
	if errors.Is(err, exiftool.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

// Encode copies the original image to dst and writes the keywords and rating
// into the copy. The original is never modified.
func (c *ExifToolCodec) Encode(img *Image, keywords []string, rating *int, dst string) error {
	if err := copyFile(img.Source, dst); err != nil {
		return &EncodeError{Path: dst, Err: err}
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = dst
	// IPTC strings default to Latin-1, which would mangle keywords like "Esküvő".
	fm.SetString("IPTC:CodedCharacterSet", "UTF8")
	fm.SetStrings("IPTC:Keywords", keywords)
	fm.SetStrings("XMP:Subject", keywords)
	if rating != nil {
		fm.SetInt("XMP:Rating", int64(*rating))
	}

	mds := []exiftool.FileMetadata{fm}
	c.et.WriteMetadata(mds)
	if mds[0].Err != nil {
		return &EncodeError{Path: dst, Err: mds[0].Err}
	}
	return nil
}

// copyFile overwrites dest with the content of src.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
