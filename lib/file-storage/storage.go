package filestorage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hire-backend/lib/errs"
)

func NewHandler(s3client *minio.Client, bucketName, publicUrl string) {
	Instance = NewInstance(s3client, bucketName, publicUrl)
}

func NewInstance(s3client *minio.Client, bucketName, publicUrl string) Provider {
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
		publicUrl:  strings.TrimRight(publicUrl, "/"),
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
	publicUrl  string
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (i impl) Upload(ctx context.Context, folder, fileName string, data []byte, contentType string) (string, error) {
	if i.s3client == nil {
		return "", errors.New("file storage is not configured")
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	ref := ObjectKey(folder, fileName)
	_, err := i.s3client.PutObject(ctx, i.bucketName, ref, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "file upload failed")
	}
	log.WithField("ref", ref).WithField("size", len(data)).Info("file uploaded")
	return ref, nil
}

func (i impl) Get(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	if i.s3client == nil {
		return nil, "", errors.New("file storage is not configured")
	}
	obj, err := i.s3client.GetObject(ctx, i.bucketName, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", errors.Wrap(err, "file read failed")
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", errs.NotFound("file not found")
		}
		return nil, "", errors.Wrap(err, "file read failed")
	}
	return obj, info.ContentType, nil
}

func (i impl) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return i.publicUrl + "/" + ref
}

// ObjectKey builds "<folder>/<uuid>-<sanitized name>".
func ObjectKey(folder, fileName string) string {
	name := unsafeChars.ReplaceAllString(path.Base(fileName), "_")
	if name == "" || name == "." || name == "_" {
		name = "file"
	}
	return folder + "/" + uuid.NewString() + "-" + name
}
