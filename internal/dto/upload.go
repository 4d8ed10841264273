package dto

import "io"

// RefContext namespaces an upload under a reference entity.
type RefContext struct {
	Type string
	ID   string
}

// UploadRequest carries one inbound file for the lifetime of a single request.
// Fields holds caller-supplied metadata key/values passed through verbatim;
// derived fields overwrite them on merge.
type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Fields      map[string]string
	Ref         *RefContext
}
