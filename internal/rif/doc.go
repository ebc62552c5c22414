// Package rif exposes local files as typed data feeds for ingestion fixtures.
//
// A [File] carries a display name, a declared [FileType], a declared text
// encoding, and can be opened any number of times:
//
//	src := rif.NewLocalFile("fixtures/beneficiaries.rif", rif.FileTypeBeneficiary)
//	r, err := src.Open()
//	if errors.Is(err, rif.ErrFileNotFound) {
//		// the file is checked at open time, not at construction
//	}
//	defer r.Close()
//
// The file type is an opaque tag supplied by the caller. The encoding is a
// declaration, not a detection: every [LocalFile] reports UTF-8.
package rif
