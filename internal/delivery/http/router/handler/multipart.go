package handler

import (
	"io"
	"mime/multipart"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// multipartUpload wraps a single form file and its metadata.
type multipartUpload struct {
	filename    string
	contentType string
	content     io.Reader
	file        multipart.File
}

func (u *multipartUpload) close() {
	if u.file != nil {
		_ = u.file.Close()
	}
}

// readMultipartFile extracts the named file from a multipart form request.
func readMultipartFile(c echo.Context, field string) (*multipartUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, errors.Wrapf(err, "missing form file %q", field)
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open form file")
	}

	return &multipartUpload{
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
		content:     file,
		file:        file,
	}, nil
}
