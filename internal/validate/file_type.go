package validate

import (
	"path/filepath"
	"strings"

	"github.com/magtapp/image-service/pkg/types/errs"
)

var (
	AllowedContentTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
	}

	AllowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
)

// CheckFileType accepts a file only when the name extension AND the declared
// content type both match the raster-image allow list. A mismatched pair
// (.png with text/plain) is rejected even though either signal alone passes.
func CheckFileType(filename, contentType string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedExtensions[ext] {
		return errs.ErrUnsupportedFileType
	}

	if !AllowedContentTypes[strings.ToLower(contentType)] {
		return errs.ErrUnsupportedFileType
	}

	return nil
}
