package employerhandler

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"hire-backend/db"
	employerstore "hire-backend/lib/employer/store"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	"hire-backend/lib/rbac"
	"hire-backend/models"
	employerapimodels "hire-backend/models/api/employer"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	CreateProfile(who identity.Identity, data employerapimodels.ProfileData) (employerapimodels.ProfileView, error)
	GetProfile(who identity.Identity) (employerapimodels.ProfileView, error)
	UpdateProfile(who identity.Identity, data employerapimodels.ProfileData) (employerapimodels.ProfileView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(employerstore.NewInstance(db.DB))
}

func NewInstance(store employerstore.Provider) Provider {
	return impl{store: store}
}

type impl struct {
	store employerstore.Provider
}

func (i impl) CreateProfile(who identity.Identity, data employerapimodels.ProfileData) (employerapimodels.ProfileView, error) {
	if err := rbac.RequireRole(who, "create an employer profile", models.EmployerRole); err != nil {
		return employerapimodels.ProfileView{}, err
	}
	if err := data.Validate(); err != nil {
		return employerapimodels.ProfileView{}, err
	}
	rec := dbmodels.EmployerProfile{
		UserID:             who.UserID,
		CompanyName:        strings.TrimSpace(data.CompanyName),
		ContactEmail:       strings.TrimSpace(data.ContactEmail),
		VerificationStatus: models.VerificationPending,
	}
	if rec.ContactEmail == "" {
		rec.ContactEmail = who.Email
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return employerapimodels.ProfileView{}, err
	}
	log.WithField("user_id", who.UserID).WithField("employer_id", id).Info("employer profile created")
	return i.GetProfile(who)
}

func (i impl) GetProfile(who identity.Identity) (employerapimodels.ProfileView, error) {
	rec, err := i.own(who)
	if err != nil {
		return employerapimodels.ProfileView{}, err
	}
	return employerapimodels.ProfileConvert(*rec), nil
}

func (i impl) UpdateProfile(who identity.Identity, data employerapimodels.ProfileData) (employerapimodels.ProfileView, error) {
	if err := data.Validate(); err != nil {
		return employerapimodels.ProfileView{}, err
	}
	rec, err := i.own(who)
	if err != nil {
		return employerapimodels.ProfileView{}, err
	}
	updMap := map[string]interface{}{
		"company_name": strings.TrimSpace(data.CompanyName),
	}
	if data.ContactEmail != "" {
		updMap["contact_email"] = strings.TrimSpace(data.ContactEmail)
	}
	if err = i.store.Update(rec.ID, updMap); err != nil {
		return employerapimodels.ProfileView{}, err
	}
	return i.GetProfile(who)
}

func (i impl) own(who identity.Identity) (*dbmodels.EmployerProfile, error) {
	if err := rbac.RequireRole(who, "manage the employer profile", models.EmployerRole); err != nil {
		return nil, err
	}
	rec, err := i.store.GetByUserID(who.UserID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("employer profile not found")
	}
	return rec, nil
}
