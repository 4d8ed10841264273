package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/magtapp/image-service/internal/dto"
	"github.com/magtapp/image-service/internal/entity"
	"github.com/magtapp/image-service/internal/infrastructure"
	"github.com/magtapp/image-service/internal/keys"
	"github.com/magtapp/image-service/internal/repo"
	"github.com/magtapp/image-service/pkg/logger"
)

// Validator is the file type predicate applied before any byte is stored.
type Validator func(filename, contentType string) error

// UseCase is the per-request upload pipeline. The two endpoint variants are
// two instances of this type differing only in configuration: the original
// variant has no transformer and flat keys, the compressed variant has a
// transformer and reference-scoped keys.
type UseCase struct {
	objectRepo  repo.ObjectRepo
	keyStrategy keys.Strategy
	validator   Validator
	transformer infrastructure.Transformer // nil disables the transform stage

	logger logger.Interface
}

func New(
	objectRepo repo.ObjectRepo,
	keyStrategy keys.Strategy,
	validator Validator,
	transformer infrastructure.Transformer,
	l logger.Interface,
) *UseCase {
	return &UseCase{
		objectRepo:  objectRepo,
		keyStrategy: keyStrategy,
		validator:   validator,
		transformer: transformer,
		logger:      l,
	}
}

func (uc *UseCase) Upload(ctx context.Context, req dto.UploadRequest) (*entity.StoredObject, error) {
	// the upload id identifies this stored object for clients and logs
	uploadID := uuid.New()

	// 1. validate before touching the store
	if err := uc.validator(req.Filename, req.ContentType); err != nil {
		return nil, fmt.Errorf("UploadUseCase - Upload - uc.validator: %w", err)
	}

	body := req.Body
	size := req.Size

	// 2. transform stage, gated by content type; the store never sees
	// pre-transform bytes on this path
	if uc.transformer != nil && uc.transformer.ShouldTransform(req.ContentType) {
		transformed, transformedSize, err := uc.transformer.Transform(ctx, req.ContentType, body)
		if err != nil {
			return nil, fmt.Errorf("UploadUseCase - Upload - uc.transformer.Transform: %w", err)
		}

		body = transformed
		size = transformedSize
	}

	// 3. destination key
	key := uc.keyStrategy.Make(req.Filename, req.Ref)

	// 4. store
	metadata := mergeMetadata(req.Fields, req.ContentType, req.Filename)

	location, err := uc.objectRepo.Upload(ctx, key, body, req.ContentType, size, metadata)
	if err != nil {
		return nil, fmt.Errorf("UploadUseCase - Upload - uc.objectRepo.Upload: %w", err)
	}

	uc.logger.Info("upload %s stored as %s", uploadID.String(), key)

	return &entity.StoredObject{
		ID:          uploadID,
		Key:         key,
		Bucket:      uc.objectRepo.Bucket(),
		Location:    location,
		ContentType: req.ContentType,
		Metadata:    metadata,
	}, nil
}

// mergeMetadata applies caller fields first, then overwrites the derived
// fields, so untrusted body content can never spoof content_type or filename.
func mergeMetadata(fields map[string]string, contentType, filename string) map[string]string {
	metadata := make(map[string]string, len(fields)+2)

	for k, v := range fields {
		metadata[k] = v
	}

	metadata["content_type"] = contentType
	metadata["filename"] = filename

	return metadata
}
