package meaning

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/magtapp/image-service/internal/dto"
	"github.com/magtapp/image-service/internal/entity"
	"github.com/magtapp/image-service/internal/repo"
	"github.com/magtapp/image-service/pkg/logger"
)

// UseCase records word/meaning/image triples into one fixed table. The two
// endpoint variants are two instances bound to different tables.
type UseCase struct {
	meaningRepo repo.MeaningRepo
	table       string

	logger logger.Interface

	now func() time.Time
}

func New(meaningRepo repo.MeaningRepo, table string, l logger.Interface) *UseCase {
	return &UseCase{
		meaningRepo: meaningRepo,
		table:       table,
		logger:      l,
		now:         time.Now,
	}
}

// Record stamps the record at call time, independent of any timestamp
// embedded in the image location.
func (uc *UseCase) Record(ctx context.Context, m dto.Meaning) (*entity.MeaningRecord, error) {
	record := &entity.MeaningRecord{
		Word:          m.Word,
		Timestamp:     strconv.FormatInt(uc.now().UnixMilli(), 10),
		Meaning:       m.Meaning,
		ImageLocation: m.ImageLocation,
	}

	err := uc.meaningRepo.Put(ctx, uc.table, record)
	if err != nil {
		return nil, fmt.Errorf("MeaningUseCase - Record - uc.meaningRepo.Put: %w", err)
	}

	uc.logger.Info("meaning recorded: word=%s table=%s", record.Word, uc.table)

	return record, nil
}
