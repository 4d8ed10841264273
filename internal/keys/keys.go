package keys

import (
	"fmt"
	"strconv"
	"time"

	"github.com/magtapp/image-service/internal/dto"
)

// Strategy derives the bucket-relative storage key for one upload.
type Strategy interface {
	Make(filename string, ref *dto.RefContext) string
}

// Flat prefixes the original filename with epoch millis.
// Two uploads of the same name within one millisecond on one process can
// collide; this risk is accepted at the current scale.
type Flat struct {
	now func() time.Time
}

func NewFlat() *Flat {
	return &Flat{now: time.Now}
}

func (s *Flat) Make(filename string, _ *dto.RefContext) string {
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + filename
}

// RefScoped namespaces keys under uploads/{refType}/{refId}/, keeping the
// epoch-millis prefix on the filename itself.
type RefScoped struct {
	now func() time.Time
}

func NewRefScoped() *RefScoped {
	return &RefScoped{now: time.Now}
}

func (s *RefScoped) Make(filename string, ref *dto.RefContext) string {
	stamped := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + filename
	if ref == nil {
		return stamped
	}

	return fmt.Sprintf("uploads/%s/%s/%s", ref.Type, ref.ID, stamped)
}
