package memstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"hire-backend/lib/errs"
	filestorage "hire-backend/lib/file-storage"
)

// Files is an in-memory file storage keyed by object ref.
type Files struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewFiles() *Files {
	return &Files{Objects: map[string][]byte{}}
}

var _ filestorage.Provider = (*Files)(nil)

func (f *Files) Upload(_ context.Context, folder, fileName string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ref := filestorage.ObjectKey(folder, fileName)
	f.Objects[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (f *Files) Get(_ context.Context, ref string) (io.ReadCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Objects[ref]
	if !ok {
		return nil, "", errs.NotFound("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "application/octet-stream", nil
}

func (f *Files) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/files/" + ref
}
