package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"
	"hire-backend/config"
	s3client "hire-backend/s3"
)

// InitS3 returns nil when the storage is unreachable, uploads then fail with an error.
func InitS3(ctx context.Context) *minio.Client {
	minioClient, err := s3client.NewClient(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("s3 client initialization failed")
		return nil
	}
	if err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).WithField("bucket", config.Conf.S3.BucketName).Error("s3 bucket check failed")
	}
	log.Info("s3 client initialized")
	return minioClient
}
