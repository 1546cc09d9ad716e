package forms

import (
	"context"
	"io"
	"sync"

	"atsbuddy/internal/errors"
	"atsbuddy/internal/types"
	"atsbuddy/internal/validate"
)

// ExtractFunc uploads a document and returns the extracted text.
type ExtractFunc func(ctx context.Context, filename string, file io.Reader) (types.ExtractResponse, error)

// Uploader governs the optional file-based text extraction that can fill a
// form's resume field. Its idle/uploading state is independent of the form's
// submission phase; only one upload runs at a time.
type Uploader struct {
	extract ExtractFunc
	logger  *errors.Logger

	mu        sync.Mutex
	uploading bool
}

// NewUploader creates an idle uploader.
func NewUploader(extract ExtractFunc, logger *errors.Logger) *Uploader {
	return &Uploader{extract: extract, logger: logger}
}

// Uploading reports whether an extraction is in flight.
func (u *Uploader) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

// Run gates the filename, uploads the document, and returns the extraction.
// Unsupported extensions are rejected before any call is attempted. On
// failure the caller's resume field stays untouched; on success the caller
// overwrites it with the extracted text.
func (u *Uploader) Run(ctx context.Context, filename string, file io.Reader) (types.ExtractResponse, error) {
	var zero types.ExtractResponse

	if ferr := validate.UploadFilename(filename); ferr != nil {
		return zero, validate.FieldErrors{*ferr}
	}

	u.mu.Lock()
	if u.uploading {
		u.mu.Unlock()
		return zero, errors.NewInternalError(errors.ErrCodeUploadInFlight,
			"an upload is already in flight", nil)
	}
	u.uploading = true
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		u.uploading = false
		u.mu.Unlock()
	}()

	out, err := u.extract(ctx, filename, file)
	if err != nil {
		return zero, err
	}

	u.logger.Debug("Extraction upload completed",
		"file", out.FileName,
		"type", out.FileType,
		"characters", out.CharacterCount)
	return out, nil
}
