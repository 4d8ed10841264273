package persistent

import (
	"context"
	"fmt"

	"github.com/magtapp/image-service/internal/entity"
	"github.com/magtapp/image-service/pkg/postgres"
	"github.com/magtapp/image-service/pkg/types/errs"
)

const (
	wordColumn      = "word"
	timestampColumn = "timestamp"
	meaningColumn   = "meaning"
	imglocColumn    = "imgloc"
)

// MeaningPostgresRepo keeps the same put(table, item) contract as the Dynamo
// repo for deployments without AWS; the table name maps to a SQL table.
type MeaningPostgresRepo struct {
	*postgres.Postgres
}

func NewMeaningPostgresRepo(pg *postgres.Postgres) *MeaningPostgresRepo {
	return &MeaningPostgresRepo{pg}
}

func (r *MeaningPostgresRepo) Put(ctx context.Context, table string, record *entity.MeaningRecord) error {
	sql, args, err := r.Builder.
		Insert(fmt.Sprintf("%q", table)).
		Columns(
			wordColumn,
			fmt.Sprintf("%q", timestampColumn),
			meaningColumn,
			imglocColumn,
		).
		Values(
			record.Word,
			record.Timestamp,
			record.Meaning,
			record.ImageLocation,
		).ToSql()
	if err != nil {
		return fmt.Errorf("MeaningPostgresRepo - Put - r.Builder.ToSql: %w: %w", errs.ErrRecord, err)
	}

	_, err = r.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("MeaningPostgresRepo - Put - r.Pool.Exec: %w: %w", errs.ErrRecord, err)
	}

	return nil
}
