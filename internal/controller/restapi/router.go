package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/magtapp/image-service/config"
	v1 "github.com/magtapp/image-service/internal/controller/restapi/v1"
	"github.com/magtapp/image-service/internal/usecase"
	"github.com/magtapp/image-service/pkg/logger"
)

// @title Image upload service
// @version 1.0.0
// @host localhost:8080
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	uploadOriginal usecase.UploadUseCase,
	uploadCompressed usecase.UploadUseCase,
	meaningWord usecase.MeaningUseCase,
	meaningCompressed usecase.MeaningUseCase,
	l logger.Interface,
) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	v1.NewUploadRoutes(app, uploadOriginal, uploadCompressed, meaningWord, meaningCompressed, cfg.Upload.MaxFileSize, l)
}
