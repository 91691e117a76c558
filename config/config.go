package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr     string `default:"" env:"APP_HOST"`
		Port           int    `default:"8080"  env:"APP_PORT"`
		BodyLimitMb    int    `default:"20" env:"APP_BODY_LIMIT_MB"`
		SwaggerEnabled *bool  `default:"false" env:"APP_SWAGGER_ENABLED"`
		SwaggerFile    string `default:"./docs/swagger.json" env:"APP_SWAGGER_FILE"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hire" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"secret" env:"JWT_SECRET"`
		JWTExpireInSec int64  `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"minioadmin" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"minioadmin" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"hire" env:"S3_BUCKET_NAME"`
		PublicUrl       string `default:"/api/v1/files" env:"S3_PUBLIC_URL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Redis struct {
		Addr     string `default:"" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	Jobs struct {
		AutoApproveFreeListings *bool `default:"false" env:"JOBS_AUTO_APPROVE_FREE"`
		RequireVerifiedEmployer *bool `default:"true" env:"JOBS_REQUIRE_VERIFIED_EMPLOYER"`
		ExpiryCheckIntervalMin  int   `default:"10" env:"JOBS_EXPIRY_CHECK_INTERVAL_MIN"`
		MaxResumeMb             int   `default:"10" env:"JOBS_MAX_RESUME_MB"`
	}
	Chat struct {
		MaxUploadMb   int `default:"10" env:"CHAT_MAX_UPLOAD_MB"`
		SessionBuffer int `default:"16" env:"CHAT_SESSION_BUFFER"`
	}
	ErrNotify struct {
		Addr string `default:"" env:"ERR_NOTIFY_ADDR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
