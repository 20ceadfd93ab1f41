package internal

import "fmt"

// Image is a decoded photo: where it came from and the metadata the tagger
// cares about.
type Image struct {
	Source   string
	Keywords []string
	// Subject holds keywords stored elsewhere in the file (XMP dc:subject).
	Subject []string
	Rating  *int
}

// Codec reads and writes image metadata.
type Codec interface {
	// Decode reads the keywords of the image at path. It fails with a
	// *DecodeError when path is not a readable image.
	Decode(path string) (*Image, error)
	// Encode writes img plus the given keywords and rating to dst. A nil
	// rating leaves the stored rating untouched. It fails with an
	// *EncodeError.
	Encode(img *Image, keywords []string, rating *int, dst string) error
}

type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
