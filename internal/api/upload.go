package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"atsbuddy/internal/errors"
)

// Upload issues a multipart request with a single "file" field and decodes
// the envelope data into T. Upload endpoints are always protected, so the
// bearer header is attached unconditionally whenever a token exists. The
// 401 and error protocol is the same as for JSON calls.
func Upload[T any](ctx context.Context, c *Client, path, filename string, file io.Reader) (T, error) {
	var zero T

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return zero, errors.NewInternalError(errors.ErrCodeRequestFailed, "cannot build upload body", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return zero, errors.NewIOError(errors.ErrCodeFileNotReadable, "cannot read upload content", err)
	}
	if err := writer.Close(); err != nil {
		return zero, errors.NewInternalError(errors.ErrCodeRequestFailed, "cannot finalize upload body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return zero, errors.NewInternalError(errors.ErrCodeRequestFailed, "cannot build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if tok := c.store.Get(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	env, err := c.send(req)
	if err != nil {
		return zero, err
	}

	var data T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return zero, errors.NewAPIError("invalid response from server", http.StatusOK, err)
		}
	}
	return data, nil
}
