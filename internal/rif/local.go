package rif

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// LocalFile is a File backed by a path on the local filesystem.
type LocalFile struct {
	path     string
	fileType FileType
}

var _ File = (*LocalFile)(nil)

// NewLocalFile wraps path. No I/O happens until Open, so the file does not
// have to exist yet.
func NewLocalFile(path string, fileType FileType) *LocalFile {
	return &LocalFile{path: path, fileType: fileType}
}

// DisplayName returns the absolute form of the path.
func (f *LocalFile) DisplayName() string {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		return filepath.Clean(f.path)
	}
	return abs
}

// FileType returns the tag given to NewLocalFile.
func (f *LocalFile) FileType() FileType {
	return f.fileType
}

// Encoding always reports UTF-8.
func (f *LocalFile) Encoding() encoding.Encoding {
	return unicode.UTF8
}

// Open returns a buffered reader over a fresh file handle.
func (f *LocalFile) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, f.path)
	}
	return &bufferedFile{Reader: bufio.NewReader(file), file: file}, nil
}

type bufferedFile struct {
	*bufio.Reader
	file *os.File
}

func (b *bufferedFile) Close() error {
	return b.file.Close()
}
