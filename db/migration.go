package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "hire-backend/models/db"
)

func AutoMigrateDB() error {
	return Migrate(DB)
}

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	models := []struct {
		name string
		rec  interface{}
	}{
		{"EmployerProfile", &dbmodels.EmployerProfile{}},
		{"Job", &dbmodels.Job{}},
		{"Application", &dbmodels.Application{}},
		{"Chat", &dbmodels.Chat{}},
		{"Message", &dbmodels.Message{}},
		{"Report", &dbmodels.Report{}},
		{"Notification", &dbmodels.Notification{}},
		{"SavedJob", &dbmodels.SavedJob{}},
		{"FreelancerProfile", &dbmodels.FreelancerProfile{}},
		{"ContactRequest", &dbmodels.ContactRequest{}},
	}
	for _, item := range models {
		if err := db.AutoMigrate(item.rec); err != nil {
			return errors.Wrapf(err, "migration of %s failed", item.name)
		}
	}
	log.Info("migrations done")
	return nil
}
