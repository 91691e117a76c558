package initializers

import (
	log "github.com/sirupsen/logrus"
	"hire-backend/fiberlog"
)

func jsonFormatter() log.Formatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger sets up the application logger and returns the request log config.
// Request lines go through a separate logger so they stay visible at debug level.
func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(log.InfoLevel)

	requestLogger := log.New()
	requestLogger.SetFormatter(jsonFormatter())
	requestLogger.SetLevel(log.DebugLevel)

	cfg := fiberlog.ConfigDefault
	cfg.Logger = requestLogger
	return &cfg
}
