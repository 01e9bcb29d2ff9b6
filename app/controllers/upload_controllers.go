package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
	"github.com/sheshine/backoffice/pkg/errs"
)

// multipartSlack covers form boundaries and the categoryName field.
const multipartSlack = 64 << 10

type UploadController struct {
	service *services.UploadService
}

func NewUploadController(service *services.UploadService) *UploadController {
	return &UploadController{service: service}
}

// Handler returns the upload endpoint for kind.
func (c *UploadController) Handler(kind services.UploadKind) ctx.ErrorHandlerFunc {
	return func(cx *ctx.Context) error {
		max := c.service.MaxBytes()
		cx.R.Body = http.MaxBytesReader(cx.W, cx.R.Body, max+multipartSlack)

		if err := cx.R.ParseMultipartForm(max); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return errs.Validation(fmt.Sprintf("File too large: the limit is %d MB", max>>20), nil)
			}
			return errs.Validation("Please upload a file.", nil)
		}
		defer cx.R.MultipartForm.RemoveAll() //nolint:errcheck

		file, _, err := cx.R.FormFile(kind.Field)
		if err != nil {
			return errs.Validation("Please upload a file.", nil)
		}
		defer file.Close()

		result, err := c.service.Upload(cx.Context(), kind, cx.R.FormValue("categoryName"), file)
		if err != nil {
			return err
		}
		return cx.Message(result.Message, result)
	}
}
