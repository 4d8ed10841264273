package repo

import (
	"context"
	"io"

	"github.com/magtapp/image-service/internal/entity"
)

type (
	// ObjectRepo streams upload bytes into a bucket and returns the public
	// location of the stored object.
	ObjectRepo interface {
		Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64, metadata map[string]string) (string, error)
		Bucket() string
	}

	// MeaningRepo writes one meaning record to the named table.
	MeaningRepo interface {
		Put(ctx context.Context, table string, record *entity.MeaningRecord) error
	}
)
