// Package validator checks uploaded documents before they enter the
// session registry.
package validator

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	// ErrMissingFilename rejects uploads without a filename.
	ErrMissingFilename = errors.New("no file selected")
	// ErrUnsupportedType rejects extensions outside the allowed set.
	ErrUnsupportedType = errors.New("file type not supported, please upload PDF, TXT, JPG, or JPEG files")
)

// allowedExtensions is the closed set of accepted upload types.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
}

// AllowedExtension reports whether the filename's extension is accepted
// (case-insensitive).
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ValidateUpload checks the multipart header of an incoming upload.
func ValidateUpload(header *multipart.FileHeader) error {
	if header == nil || header.Filename == "" {
		return ErrMissingFilename
	}
	if !AllowedExtension(header.Filename) {
		return ErrUnsupportedType
	}
	return nil
}
