package infrastructure

import (
	"context"
	"io"
)

type (
	// Transformer is the optional, content-type-gated stage between upload
	// receipt and the store write. Transform returns the replacement byte
	// stream and its length.
	Transformer interface {
		ShouldTransform(contentType string) bool
		Transform(ctx context.Context, contentType string, data io.Reader) (io.Reader, int64, error)
	}
)
