package freelancerhandler

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hire-backend/db"
	"hire-backend/lib/errs"
	contactstore "hire-backend/lib/freelancer/contact-store"
	freelancerstore "hire-backend/lib/freelancer/store"
	"hire-backend/lib/identity"
	"hire-backend/lib/rbac"
	"hire-backend/models"
	freelancerapimodels "hire-backend/models/api/freelancer"
	dbmodels "hire-backend/models/db"
)

const anonymousSender = "A potential client"

// Provider is the freelancer directory. Contact requests are created pending and
// reach the freelancer only after an admin approves them.
type Provider interface {
	CreateProfile(who identity.Identity, data freelancerapimodels.ProfileData) (freelancerapimodels.ProfileView, error)
	GetMine(who identity.Identity) (freelancerapimodels.ProfileView, error)
	UpdateMine(who identity.Identity, data freelancerapimodels.ProfileUpdateData) (freelancerapimodels.ProfileView, error)
	DeleteMine(who identity.Identity) error

	List(filter freelancerapimodels.FreelancerFilter) (list []freelancerapimodels.ProfileView, rowCount int64, err error)
	// Get hides unverified profiles from everyone but the owner and admins.
	Get(who identity.Identity, id string) (freelancerapimodels.ProfileView, error)

	Contact(who identity.Identity, freelancerID string, data freelancerapimodels.ContactData) (freelancerapimodels.ContactRequestView, error)
	// ListContactRequests gives admins every request. A freelancer sees only approved requests for their own profile.
	ListContactRequests(who identity.Identity, filter freelancerapimodels.ContactRequestFilter) (list []freelancerapimodels.ContactRequestView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		freelancerstore.NewInstance(db.DB),
		contactstore.NewInstance(db.DB),
	)
}

func NewInstance(store freelancerstore.Provider, contactStore contactstore.Provider) Provider {
	return impl{
		store:        store,
		contactStore: contactStore,
	}
}

type impl struct {
	store        freelancerstore.Provider
	contactStore contactstore.Provider
}

func (i impl) CreateProfile(who identity.Identity, data freelancerapimodels.ProfileData) (freelancerapimodels.ProfileView, error) {
	if err := rbac.RequireRole(who, "create a freelancer profile", models.JobSeekerRole); err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	data.Normalize()
	if err := data.Validate(); err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	rec := data.Record(who.UserID)
	if rec.ContactEmail == "" {
		rec.ContactEmail = who.Email
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	i.getLogger(who.UserID).WithField("freelancer_id", id).Info("freelancer profile created")
	return i.GetMine(who)
}

func (i impl) GetMine(who identity.Identity) (freelancerapimodels.ProfileView, error) {
	rec, err := i.own(who)
	if err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	return freelancerapimodels.ProfileConvert(*rec), nil
}

func (i impl) UpdateMine(who identity.Identity, data freelancerapimodels.ProfileUpdateData) (freelancerapimodels.ProfileView, error) {
	rec, err := i.own(who)
	if err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	updMap, err := data.UpdMap()
	if err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	if err = i.store.Update(rec.ID, updMap); err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	i.getLogger(who.UserID).WithField("freelancer_id", rec.ID).Info("freelancer profile updated")
	return i.GetMine(who)
}

func (i impl) DeleteMine(who identity.Identity) error {
	rec, err := i.own(who)
	if err != nil {
		return err
	}
	if err = i.store.Delete(rec.ID); err != nil {
		return err
	}
	i.getLogger(who.UserID).WithField("freelancer_id", rec.ID).Info("freelancer profile deleted")
	return nil
}

func (i impl) own(who identity.Identity) (*dbmodels.FreelancerProfile, error) {
	if err := rbac.RequireRole(who, "manage a freelancer profile", models.JobSeekerRole); err != nil {
		return nil, err
	}
	rec, err := i.store.GetByUserID(who.UserID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("freelancer profile not found")
	}
	return rec, nil
}

func (i impl) List(filter freelancerapimodels.FreelancerFilter) ([]freelancerapimodels.ProfileView, int64, error) {
	if filter.Availability != "" {
		if err := filter.Availability.Validate(); err != nil {
			return nil, 0, errs.Validation(err.Error())
		}
	}
	if filter.MinRate > 0 && filter.MaxRate > 0 && filter.MinRate > filter.MaxRate {
		return nil, 0, errs.Validation("min_rate must not exceed max_rate")
	}
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []freelancerapimodels.ProfileView{}, rowCount, nil
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]freelancerapimodels.ProfileView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, freelancerapimodels.ProfileConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Get(who identity.Identity, id string) (freelancerapimodels.ProfileView, error) {
	rec, err := i.visible(who, id)
	if err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	return freelancerapimodels.ProfileConvert(*rec), nil
}

func (i impl) visible(who identity.Identity, id string) (*dbmodels.FreelancerProfile, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil || (!rec.IsVerified && !who.IsAdmin() && rec.UserID != who.UserID) {
		return nil, errs.NotFound("freelancer not found")
	}
	return rec, nil
}

func (i impl) Contact(who identity.Identity, freelancerID string, data freelancerapimodels.ContactData) (freelancerapimodels.ContactRequestView, error) {
	if err := rbac.Check(who, "contact freelancers", nil, nil); err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	if err := data.Validate(); err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	profile, err := i.visible(who, freelancerID)
	if err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	senderName := strings.TrimSpace(data.Name)
	if senderName == "" {
		senderName = anonymousSender
	}
	rec := dbmodels.ContactRequest{
		FreelancerID: profile.ID,
		SenderID:     who.UserID,
		SenderName:   senderName,
		SenderEmail:  strings.TrimSpace(data.Email),
		Message:      strings.TrimSpace(data.Message),
		Status:       models.ContactRequestPending,
	}
	id, err := i.contactStore.Create(rec)
	if err != nil {
		return freelancerapimodels.ContactRequestView{}, errors.Wrap(err, "contact request saving failed")
	}
	i.getLogger(who.UserID).
		WithField("freelancer_id", profile.ID).
		WithField("contact_request_id", id).
		Info("contact request created")
	saved, err := i.contactStore.GetByID(id)
	if err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	if saved == nil {
		return freelancerapimodels.ContactRequestView{}, errs.NotFound("contact request not found")
	}
	return freelancerapimodels.ContactRequestConvert(*saved), nil
}

func (i impl) ListContactRequests(who identity.Identity, filter freelancerapimodels.ContactRequestFilter) ([]freelancerapimodels.ContactRequestView, int64, error) {
	if err := rbac.Check(who, "view contact requests", rbac.ContactReviewRoleSet, nil); err != nil {
		return nil, 0, err
	}
	if !who.IsAdmin() {
		profile, err := i.own(who)
		if err != nil {
			return nil, 0, err
		}
		filter.FreelancerID = profile.ID
		filter.Status = models.ContactRequestApproved
	}
	rowCount, err := i.contactStore.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []freelancerapimodels.ContactRequestView{}, rowCount, nil
	}
	recList, err := i.contactStore.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]freelancerapimodels.ContactRequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, freelancerapimodels.ContactRequestConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) getLogger(userID string) *log.Entry {
	return log.WithField("user_id", userID)
}
