package errs

import "errors"

var (
	// ErrUnsupportedFileType is user-correctable; its message is surfaced verbatim.
	ErrUnsupportedFileType = errors.New("Images only!")

	// ErrFileTooLarge is raised once an upload stream exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file too large")

	ErrTransform = errors.New("image transform failed")
	ErrStorage   = errors.New("object storage failed")
	ErrRecord    = errors.New("record write failed")
)
