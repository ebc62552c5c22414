package rif

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const sampleRIF = "DML_IND|BENE_ID|STATE_CODE\nINSERT|-201|06\nINSERT|-202|44\n"

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return string(b)
}

func TestLocalFileMetadata(t *testing.T) {
	path := writeSample(t, "beneficiaries.rif", sampleRIF)
	f := NewLocalFile(path, FileTypeBeneficiary)

	if got := f.DisplayName(); got != path {
		t.Errorf("DisplayName() = %q, want %q", got, path)
	}
	if got := f.FileType(); got != FileTypeBeneficiary {
		t.Errorf("FileType() = %q, want %q", got, FileTypeBeneficiary)
	}
	if got := f.Encoding(); got != unicode.UTF8 {
		t.Errorf("Encoding() = %v, want UTF-8", got)
	}
}

func TestLocalFileFileTypeIsOpaque(t *testing.T) {
	f := NewLocalFile("anything", FileType("CUSTOM_KIND"))
	if got := f.FileType(); got != FileType("CUSTOM_KIND") {
		t.Errorf("FileType() = %q, want CUSTOM_KIND", got)
	}
}

func TestLocalFileDisplayNameIsAbsolute(t *testing.T) {
	f := NewLocalFile(filepath.Join("relative", "dir", "carrier.rif"), FileTypeCarrier)

	name := f.DisplayName()
	if !filepath.IsAbs(name) {
		t.Fatalf("DisplayName() = %q, want absolute path", name)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if want := filepath.Join(wd, "relative", "dir", "carrier.rif"); name != want {
		t.Errorf("DisplayName() = %q, want %q", name, want)
	}
}

func TestLocalFileOpenTwiceIsIndependent(t *testing.T) {
	f := NewLocalFile(writeSample(t, "beneficiaries.rif", sampleRIF), FileTypeBeneficiary)

	first, err := f.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// Advance the first stream before opening the second.
	head := make([]byte, 8)
	if _, err := io.ReadFull(first, head); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}

	second, err := f.Open()
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	if got := readAll(t, second); got != sampleRIF {
		t.Errorf("second stream = %q, want %q", got, sampleRIF)
	}
	if got := string(head) + readAll(t, first); got != sampleRIF {
		t.Errorf("first stream = %q, want %q", got, sampleRIF)
	}
}

func TestLocalFileConcurrentOpen(t *testing.T) {
	f := NewLocalFile(writeSample(t, "beneficiaries.rif", sampleRIF), FileTypeBeneficiary)

	const readers = 16
	var wg sync.WaitGroup
	results := make([]string, readers)
	errs := make([]error, readers)
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			rc, err := f.Open()
			if err != nil {
				errs[i] = err
				return
			}
			defer rc.Close()
			b, err := io.ReadAll(rc)
			results[i], errs[i] = string(b), err
		}(i)
	}
	wg.Wait()

	for i := 0; i < readers; i++ {
		if errs[i] != nil {
			t.Fatalf("reader %d error = %v", i, errs[i])
		}
		if results[i] != sampleRIF {
			t.Errorf("reader %d = %q, want %q", i, results[i], sampleRIF)
		}
	}
}

func TestLocalFileOpenDeferredUntilFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.rif")
	f := NewLocalFile(path, FileTypePDE)

	_, err := f.Open()
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Open() error = %v, want ErrFileNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() error = %v, want wrapped os.ErrNotExist", err)
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open() after create error = %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestLocalFileOpenDirectory(t *testing.T) {
	f := NewLocalFile(t.TempDir(), FileTypeSNF)
	if _, err := f.Open(); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Open() error = %v, want ErrFileNotFound", err)
	}
}

func TestLocalFileOpenReturnsRawBytes(t *testing.T) {
	content := "INSERT|Jos\xe9|06\n"
	f := NewLocalFile(writeSample(t, "latin1.rif", content), FileTypeBeneficiary)

	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := readAll(t, rc); got != content {
		t.Errorf("Open() content = %q, want %q", got, content)
	}
}

func TestNewTextReader(t *testing.T) {
	path := writeSample(t, "utf8.rif", "héllo|wörld\n")

	rc, err := NewTextReader(NewLocalFile(path, FileTypeInpatient))
	if err != nil {
		t.Fatalf("NewTextReader() error = %v", err)
	}
	if got := readAll(t, rc); got != "héllo|wörld\n" {
		t.Errorf("NewTextReader() content = %q", got)
	}

	_, err = NewTextReader(NewLocalFile(filepath.Join(t.TempDir(), "missing"), FileTypeInpatient))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("NewTextReader() error = %v, want ErrFileNotFound", err)
	}
}

func TestNewTextReaderRejectsInvalidUTF8(t *testing.T) {
	path := writeSample(t, "latin1.rif", "INSERT|Jos\xe9|06\n")

	rc, err := NewTextReader(NewLocalFile(path, FileTypeBeneficiary))
	if err != nil {
		t.Fatalf("NewTextReader() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if !errors.Is(err, encoding.ErrInvalidUTF8) {
		t.Fatalf("ReadAll() error = %v, want ErrInvalidUTF8", err)
	}
	for _, r := range string(got) {
		if r == '\uFFFD' {
			t.Fatalf("decoded content %q contains a replacement character", got)
		}
	}
}
