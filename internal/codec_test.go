package internal

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// jsonPhoto is the on-disk form used by jsonCodec.
type jsonPhoto struct {
	Keywords []string `json:"keywords,omitempty"`
	Subject  []string `json:"subject,omitempty"`
	Rating   *int     `json:"rating,omitempty"`
}

// jsonCodec stores photo metadata as JSON files on an afero filesystem.
type jsonCodec struct {
	fs        afero.Fs
	encodeErr error
	encoded   []string
}

func (c *jsonCodec) Decode(path string) (*Image, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	var p jsonPhoto
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &Image{Source: path, Keywords: p.Keywords, Subject: p.Subject, Rating: p.Rating}, nil
}

func (c *jsonCodec) Encode(img *Image, keywords []string, rating *int, dst string) error {
	if c.encodeErr != nil {
		return &EncodeError{Path: dst, Err: c.encodeErr}
	}
	if rating == nil {
		rating = img.Rating
	}
	data, err := json.Marshal(jsonPhoto{Keywords: keywords, Rating: rating})
	if err != nil {
		return &EncodeError{Path: dst, Err: err}
	}
	c.encoded = append(c.encoded, img.Source)
	return afero.WriteFile(c.fs, dst, data, 0o644)
}

func writePhoto(t *testing.T, fsys afero.Fs, path string, keywords ...string) {
	t.Helper()
	data, err := json.Marshal(jsonPhoto{Keywords: keywords})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, path, data, 0o644))
}

func readPhoto(t *testing.T, fsys afero.Fs, path string) jsonPhoto {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	var p jsonPhoto
	require.NoError(t, json.Unmarshal(data, &p))
	return p
}

var errDiskFull = errors.New("no space left on device")
