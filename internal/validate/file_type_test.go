package validate

import (
	"testing"

	"github.com/magtapp/image-service/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFileType(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		wantErr     bool
	}{
		{"png accepted", "cat.png", "image/png", false},
		{"jpg accepted", "dog.jpg", "image/jpeg", false},
		{"jpeg accepted", "dog.jpeg", "image/jpeg", false},
		{"uppercase extension accepted", "CAT.PNG", "image/png", false},
		{"uppercase content type accepted", "cat.png", "IMAGE/PNG", false},
		{"text file rejected", "notes.txt", "text/plain", true},
		{"gif rejected", "anim.gif", "image/gif", true},
		{"png extension with text mime rejected", "cat.png", "text/plain", true},
		{"txt extension with image mime rejected", "cat.txt", "image/png", true},
		{"no extension rejected", "cat", "image/png", true},
		{"empty content type rejected", "cat.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFileType(tt.filename, tt.contentType)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrUnsupportedFileType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
