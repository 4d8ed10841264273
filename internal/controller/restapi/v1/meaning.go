package v1

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/magtapp/image-service/internal/dto"
	"github.com/magtapp/image-service/internal/usecase"
)

const recordConfirmation = "Record Entered Successfuly"

// @Summary  	Record image meaning
// @Description Writes a word/meaning/image record to the originals table
// @Tags 		meanings
// @Accept 		json
// @Produce 	plain
// @Param 		body body dto.Meaning true "Meaning record"
// @Success 	201 {string} string
// @Failure 	500 {object} response.Error
// @Router 		/image-meaning [post]
func (r *V1) imageMeaning(ctx *fiber.Ctx) error {
	return r.handleMeaning(ctx, r.meaningWord)
}

// @Summary  	Record compressed image meaning
// @Description Writes a word/meaning/image record to the compressed table
// @Tags 		meanings
// @Accept 		json
// @Produce 	plain
// @Param 		body body dto.Meaning true "Meaning record"
// @Success 	201 {string} string
// @Failure 	500 {object} response.Error
// @Router 		/compressed-image-meaning [post]
func (r *V1) compressedImageMeaning(ctx *fiber.Ctx) error {
	return r.handleMeaning(ctx, r.meaningCompressed)
}

func (r *V1) handleMeaning(ctx *fiber.Ctx, uc usecase.MeaningUseCase) error {
	var body dto.Meaning

	if err := ctx.BodyParser(&body); err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "invalid request body")
	}

	if _, err := uc.Record(ctx.Context(), body); err != nil {
		r.logger.Error(err, "restapi - v1 - handleMeaning")

		return errorResponse(ctx, http.StatusInternalServerError, "record write failed")
	}

	return ctx.Status(http.StatusCreated).SendString(recordConfirmation)
}

// @Summary  	Liveness
// @Produce 	plain
// @Success 	200 {string} string
// @Router 		/ [get]
func (r *V1) health(ctx *fiber.Ctx) error {
	return ctx.SendString("App working fine!")
}
