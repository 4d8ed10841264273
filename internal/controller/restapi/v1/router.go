package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/magtapp/image-service/internal/usecase"
	"github.com/magtapp/image-service/pkg/logger"
)

func NewUploadRoutes(
	app fiber.Router,
	uploadOriginal usecase.UploadUseCase,
	uploadCompressed usecase.UploadUseCase,
	meaningWord usecase.MeaningUseCase,
	meaningCompressed usecase.MeaningUseCase,
	maxFileSize int64,
	l logger.Interface,
) {
	r := &V1{
		uploadOriginal:    uploadOriginal,
		uploadCompressed:  uploadCompressed,
		meaningWord:       meaningWord,
		meaningCompressed: meaningCompressed,
		maxFileSize:       maxFileSize,
		logger:            l,
	}

	{
		// API
		app.Post("/uploadOriginalImage", r.uploadOriginalImage)
		app.Post("/uploadCompressedImage/:refType/:refId", r.uploadCompressedImage)
		app.Post("/image-meaning", r.imageMeaning)
		app.Post("/compressed-image-meaning", r.compressedImageMeaning)

		// Liveness
		app.Get("/", r.health)
	}
}
