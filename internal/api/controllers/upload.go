package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"nwptourism/internal/services"
	"nwptourism/pkg/utils"
)

// MaxUploadBytes caps a single uploaded file.
const MaxUploadBytes = 10 << 20

var errFileTooLarge = fmt.Errorf("%w: file exceeds %d bytes", utils.ErrValidation, MaxUploadBytes)

func noop() {}

// optionalUpload opens the multipart file in field, if the request carries
// one. The returned closer must always be called.
func optionalUpload(c *gin.Context, field string) (*services.Upload, func(), error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, noop, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, fmt.Errorf("%w: %v", utils.ErrValidation, err)
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*services.Upload, func(), error) {
	if fh.Size > MaxUploadBytes {
		return nil, noop, errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("%w: %v", utils.ErrValidation, err)
	}
	return &services.Upload{Filename: fh.Filename, Reader: f}, func() { _ = f.Close() }, nil
}
