package filestorage

import (
	"context"
	"io"
)

// Provider stores resumes and chat attachments.
// The returned ref is the object key; URL turns it into a public link.
type Provider interface {
	Upload(ctx context.Context, folder, fileName string, data []byte, contentType string) (ref string, err error)
	Get(ctx context.Context, ref string) (body io.ReadCloser, contentType string, err error)
	URL(ref string) string
}

var Instance Provider

const (
	FolderResume = "resume"
	FolderChat   = "chat"
)
