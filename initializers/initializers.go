package initializers

import (
	"context"
	"time"

	"hire-backend/config"
	"hire-backend/fiberlog"
	applicationhandler "hire-backend/lib/application"
	chathandler "hire-backend/lib/chat"
	employerhandler "hire-backend/lib/employer"
	filestorage "hire-backend/lib/file-storage"
	freelancerhandler "hire-backend/lib/freelancer"
	jobhandler "hire-backend/lib/job"
	expiryworker "hire-backend/lib/job/expiry-worker"
	moderationhandler "hire-backend/lib/moderation"
	notificationhandler "hire-backend/lib/notification"
	"hire-backend/lib/rbac"
	"hire-backend/lib/ws/broker"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	s3 := InitS3(ctx)
	InitSmtp()
	connectionhub.Init(config.Conf.Chat.SessionBuffer)
	broker.NewHandler(ctx, InitRedis(ctx), connectionhub.Instance)
	rbac.NewHandler()

	// order matters, handlers capture the instances they depend on
	filestorage.NewHandler(s3, config.Conf.S3.BucketName, config.Conf.S3.PublicUrl)
	notificationhandler.NewHandler()
	chathandler.NewHandler(config.Conf.Chat.MaxUploadMb)
	applicationhandler.NewHandler(config.Conf.Jobs.MaxResumeMb)
	jobhandler.NewHandler(jobhandler.Policy{
		AutoApproveFreeListings: *config.Conf.Jobs.AutoApproveFreeListings,
		RequireVerifiedEmployer: *config.Conf.Jobs.RequireVerifiedEmployer,
	})
	moderationhandler.NewHandler()
	employerhandler.NewHandler()
	freelancerhandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	interval := time.Duration(config.Conf.Jobs.ExpiryCheckIntervalMin) * time.Minute
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	expiryworker.StartWorker(ctx, interval)
}
