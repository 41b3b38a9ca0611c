package extractor

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/docuwise/legal-assistant/pkg/logger"
)

// UnsupportedMessage is the in-band text returned for extensions outside
// the supported set. Legacy clients match on this exact string.
const UnsupportedMessage = "Unsupported file type."

// ErrUnsupported marks an extraction attempt on an unsupported extension.
var ErrUnsupported = errors.New("unsupported file type")

// Result carries extracted text together with a typed degradation signal.
// Text is always usable: on a degraded extraction it holds the in-band
// error message the transport layer ships to clients, and Err tells
// internal callers what actually went wrong.
type Result struct {
	Text string
	Err  error
}

// Degraded reports whether the extraction produced an in-band error
// message instead of document text.
func (r Result) Degraded() bool {
	return r.Err != nil
}

// Extractor normalizes txt, pdf and jpg/jpeg inputs into plain text.
type Extractor struct {
	logger logger.Logger
}

func New(log logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

// Extract converts the document named filename, read from r, into plain
// text. The extension decides the extraction path (case-insensitive).
//
// A non-nil error is returned only for plain-text I/O or decoding
// failures; PDF and OCR failures are reported in-band via Result.
func (e *Extractor) Extract(filename string, r io.Reader) (Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt":
		data, err := io.ReadAll(r)
		if err != nil {
			return Result{}, fmt.Errorf("reading text file: %w", err)
		}
		if !utf8.Valid(data) {
			return Result{}, fmt.Errorf("text file %s is not valid UTF-8", filename)
		}
		return Result{Text: string(data)}, nil

	case ".pdf":
		text, err := extractPDF(r)
		if err != nil {
			e.logger.Error("PDF extraction failed",
				logger.String("filename", filename),
				logger.Error(err),
			)
			return Result{
				Text: fmt.Sprintf("Error processing PDF: %v", err),
				Err:  err,
			}, nil
		}
		return Result{Text: text}, nil

	case ".jpg", ".jpeg":
		text, err := extractImage(r)
		if err != nil {
			e.logger.Error("image extraction failed",
				logger.String("filename", filename),
				logger.Error(err),
			)
			return Result{
				Text: fmt.Sprintf("Error processing image: %v", err),
				Err:  err,
			}, nil
		}
		return Result{Text: text}, nil

	default:
		return Result{Text: UnsupportedMessage, Err: ErrUnsupported}, nil
	}
}
