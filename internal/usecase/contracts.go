package usecase

import (
	"context"

	"github.com/magtapp/image-service/internal/dto"
	"github.com/magtapp/image-service/internal/entity"
)

type (
	// UploadUseCase runs one upload through validate -> (transform) -> store.
	UploadUseCase interface {
		Upload(ctx context.Context, req dto.UploadRequest) (*entity.StoredObject, error)
	}

	// MeaningUseCase writes one word/meaning record, stamping it at call time.
	MeaningUseCase interface {
		Record(ctx context.Context, m dto.Meaning) (*entity.MeaningRecord, error)
	}
)
