package v1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/magtapp/image-service/internal/controller/restapi/v1/response"
	"github.com/magtapp/image-service/internal/dto"
	"github.com/magtapp/image-service/internal/usecase"
	"github.com/magtapp/image-service/pkg/types/errs"
)

// caller-supplied metadata values are small; anything bigger is truncated
const _maxFieldValueSize = 8 * 1024

// @Summary  	Upload original image
// @Description Uploads image as-is to the originals bucket under a timestamp-prefixed key
// @Tags 		uploads
// @Accept 		mpfd
// @Produce 	json
// @Param 		image formData file true "Image file (jpg, png)"
// @Success 	200 {object} response.UploadImage
// @Failure 	500 {object} response.Error
// @Router 		/uploadOriginalImage [post]
func (r *V1) uploadOriginalImage(ctx *fiber.Ctx) error {
	return r.handleUpload(ctx, r.uploadOriginal, nil)
}

// @Summary  	Upload compressed image
// @Description Uploads image through the resize/re-encode stage into the compressed bucket, namespaced by reference
// @Tags 		uploads
// @Accept 		mpfd
// @Produce 	json
// @Param 		refType path string true "Reference type"
// @Param 		refId 	path string true "Reference id"
// @Param 		image 	formData file true "Image file (jpg, png)"
// @Success 	200 {object} response.UploadImage
// @Failure 	500 {object} response.Error
// @Router 		/uploadCompressedImage/{refType}/{refId} [post]
func (r *V1) uploadCompressedImage(ctx *fiber.Ctx) error {
	ref := &dto.RefContext{
		Type: ctx.Params("refType"),
		ID:   ctx.Params("refId"),
	}

	return r.handleUpload(ctx, r.uploadCompressed, ref)
}

func (r *V1) handleUpload(ctx *fiber.Ctx, uc usecase.UploadUseCase, ref *dto.RefContext) error {
	if length := int64(ctx.Request().Header.ContentLength()); r.maxFileSize > 0 && length > r.maxFileSize {
		return errorResponse(ctx, http.StatusInternalServerError,
			fmt.Sprintf("file size cant be more than %d bytes", r.maxFileSize))
	}

	_, params, err := mime.ParseMediaType(ctx.Get(fiber.HeaderContentType))
	if err != nil || params["boundary"] == "" {
		return errorResponse(ctx, http.StatusInternalServerError, "multipart form is required")
	}

	// the body is walked part by part, so the store write pulls the file
	// bytes straight off the inbound connection
	parts := multipart.NewReader(bodyReader(ctx), params["boundary"])

	fields := make(map[string]string)

	for {
		part, err := parts.NextPart()
		if errors.Is(err, io.EOF) {
			return errorResponse(ctx, http.StatusInternalServerError, "image file is required")
		}

		if err != nil {
			r.logger.Error(err, "restapi - v1 - handleUpload")

			return errorResponse(ctx, http.StatusInternalServerError, "malformed multipart body")
		}

		if part.FormName() != "image" {
			// caller metadata; only fields preceding the file part are seen
			value, err := io.ReadAll(io.LimitReader(part, _maxFieldValueSize))
			if err == nil && part.FormName() != "" {
				fields[part.FormName()] = string(value)
			}

			continue
		}

		req := dto.UploadRequest{
			Filename:    part.FileName(),
			ContentType: part.Header.Get(fiber.HeaderContentType),
			Size:        -1,
			Body:        newMaxSizeReader(part, r.maxFileSize),
			Fields:      fields,
			Ref:         ref,
		}

		// ctx.Context() is cancelled when the client connection closes,
		// which aborts an in-flight store write
		obj, err := uc.Upload(ctx.Context(), req)
		if err != nil {
			// validation reasons are user-correctable and surfaced verbatim;
			// transform/storage detail stays opaque
			if errors.Is(err, errs.ErrUnsupportedFileType) {
				return errorResponse(ctx, http.StatusInternalServerError, errs.ErrUnsupportedFileType.Error())
			}

			if errors.Is(err, errs.ErrFileTooLarge) {
				return errorResponse(ctx, http.StatusInternalServerError,
					fmt.Sprintf("file size cant be more than %d bytes", r.maxFileSize))
			}

			r.logger.Error(err, "restapi - v1 - handleUpload")

			return errorResponse(ctx, http.StatusInternalServerError, "upload failed")
		}

		ctx.Set("X-Upload-Id", obj.ID.String())

		return ctx.JSON(response.UploadImage{ImageURL: obj.Location})
	}
}

// bodyReader prefers the request body stream; a buffered body is the
// fallback when streaming is off.
func bodyReader(ctx *fiber.Ctx) io.Reader {
	if stream := ctx.Request().BodyStream(); stream != nil {
		return stream
	}

	return bytes.NewReader(ctx.Body())
}

// maxSizeReader fails the upload once the file stream exceeds the configured
// cap; a cap of zero disables the guard.
type maxSizeReader struct {
	r         io.Reader
	remaining int64
	unlimited bool
}

func newMaxSizeReader(r io.Reader, limit int64) *maxSizeReader {
	return &maxSizeReader{r: r, remaining: limit, unlimited: limit <= 0}
}

func (m *maxSizeReader) Read(p []byte) (int, error) {
	n, err := m.r.Read(p)

	if !m.unlimited {
		m.remaining -= int64(n)
		if m.remaining < 0 {
			return n, errs.ErrFileTooLarge
		}
	}

	return n, err
}
