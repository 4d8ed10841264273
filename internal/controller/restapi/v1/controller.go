package v1

import (
	"github.com/magtapp/image-service/internal/usecase"
	"github.com/magtapp/image-service/pkg/logger"
)

type V1 struct {
	uploadOriginal    usecase.UploadUseCase
	uploadCompressed  usecase.UploadUseCase
	meaningWord       usecase.MeaningUseCase
	meaningCompressed usecase.MeaningUseCase

	maxFileSize int64

	logger logger.Interface
}
