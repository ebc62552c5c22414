package rif

import (
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileType tags the declared content of a RIF file. The values below name the
// record kinds the ingestion pipeline knows; this package never interprets them.
type FileType string

const (
	FileTypeBeneficiary FileType = "BENEFICIARY"
	FileTypeCarrier     FileType = "CARRIER"
	FileTypeDME         FileType = "DME"
	FileTypeHHA         FileType = "HHA"
	FileTypeHospice     FileType = "HOSPICE"
	FileTypeInpatient   FileType = "INPATIENT"
	FileTypeOutpatient  FileType = "OUTPATIENT"
	FileTypePDE         FileType = "PDE"
	FileTypeSNF         FileType = "SNF"
)

// File is a named, typed source of bytes consumed by the ingestion pipeline.
// Implementations must allow concurrent calls to Open.
type File interface {
	// DisplayName returns a human-readable name for the source.
	DisplayName() string

	// FileType returns the declared content type.
	FileType() FileType

	// Encoding returns the declared text encoding of the content.
	Encoding() encoding.Encoding

	// Open returns a new stream positioned at the first byte. The caller
	// must close it.
	Open() (io.ReadCloser, error)
}

// ErrFileNotFound is returned by Open when the file is missing or unreadable.
var ErrFileNotFound = errors.New("rif file not found")

// NewTextReader opens f and decodes its content from the declared encoding to
// UTF-8. Content declared as UTF-8 is passed through unchanged, and reading
// fails with encoding.ErrInvalidUTF8 at the first byte that is not valid UTF-8.
func NewTextReader(f File) (io.ReadCloser, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	var t transform.Transformer = f.Encoding().NewDecoder()
	if f.Encoding() == unicode.UTF8 {
		t = encoding.UTF8Validator
	}
	return &decodedReader{Reader: transform.NewReader(rc, t), closer: rc}, nil
}

type decodedReader struct {
	io.Reader
	closer io.Closer
}

func (d *decodedReader) Close() error {
	return d.closer.Close()
}
